package refreshtoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/services/logging"
	"github.com/google/uuid"
	"github.com/mileusna/useragent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	config *config.Config
	logger *logging.Service
}

func NewService(db *gorm.DB, cfg *config.Config, logger *logging.Service) *Service {
	return &Service{
		db:     db,
		config: cfg,
		logger: logger,
	}
}

// Metadata captures where a token was issued from.
type Metadata struct {
	UserAgent string
	IP        string
}

func describeClient(rawUA string) *string {
	if rawUA == "" {
		return nil
	}
	ua := useragent.Parse(rawUA)
	if ua.Name == "" {
		return &rawUA
	}
	desc := ua.Name
	if ua.OS != "" {
		desc = fmt.Sprintf("%s on %s", ua.Name, ua.OS)
	}
	return &desc
}

func (s *Service) newToken(userID string, meta Metadata) *models.RefreshToken {
	var ip *string
	if meta.IP != "" {
		ip = &meta.IP
	}
	return &models.RefreshToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.config.RefreshToken.Expiry.Duration()),
		UserAgent: describeClient(meta.UserAgent),
		IP:        ip,
	}
}

// Issue creates a fresh refresh token for a successful login.
func (s *Service) Issue(userID string, meta Metadata) (*models.RefreshToken, error) {
	token := s.newToken(userID, meta)
	if err := s.db.Create(token).Error; err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	s.logger.Debug("refresh token issued", zap.String("user_id", userID))
	return token, nil
}

// Rotate exchanges a presented token for a new one. The old row is revoked
// and linked to its replacement in the same transaction. Revoked and expired
// tokens are rejected without touching the rest of the chain.
func (s *Service) Rotate(tokenValue string, meta Metadata) (*models.RefreshToken, error) {
	var next *models.RefreshToken

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var current models.RefreshToken
		if err := tx.Where("token = ?", tokenValue).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("refresh token not found")
			}
			return fmt.Errorf("failed to load refresh token: %w", err)
		}

		if current.Revoked {
			s.logger.Warn("revoked refresh token presented",
				zap.String("user_id", current.UserID),
				zap.String("token_id", current.ID),
			)
			return apperr.Unauthorized("refresh token revoked")
		}

		if time.Now().After(current.ExpiresAt) {
			return apperr.Unauthorized("refresh token expired")
		}

		replacement := s.newToken(current.UserID, meta)
		if err := tx.Create(replacement).Error; err != nil {
			return fmt.Errorf("failed to store rotated refresh token: %w", err)
		}

		updates := map[string]any{
			"revoked":           true,
			"replaced_by_token": replacement.Token,
		}
		if err := tx.Model(&current).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to revoke rotated refresh token: %w", err)
		}

		next = replacement
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("refresh token rotated", zap.String("user_id", next.UserID))
	return next, nil
}

// Revoke removes the presented token outright, ending the chain. Used by
// logout.
func (s *Service) Revoke(tokenValue string) error {
	result := s.db.Where("token = ?", tokenValue).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete refresh token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("refresh token not found")
	}
	return nil
}

// RevokeAllForUser deletes every token a user holds, active or not.
func (s *Service) RevokeAllForUser(userID string) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
		return fmt.Errorf("failed to delete user refresh tokens: %w", err)
	}
	return nil
}

// CleanupExpired removes rows past their expiry. Revoked rows are kept until
// they expire so reuse of a rotated token stays detectable.
func (s *Service) CleanupExpired() (int64, error) {
	result := s.db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clean up refresh tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// StartCleanupWorker runs CleanupExpired on the configured interval until the
// context is cancelled.
func (s *Service) StartCleanupWorker(ctx context.Context) {
	interval := s.config.RefreshToken.CleanupInterval
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := s.CleanupExpired()
				if err != nil {
					s.logger.Error("refresh token cleanup failed", zap.Error(err))
					continue
				}
				if removed > 0 {
					s.logger.Info("expired refresh tokens removed", zap.Int64("count", removed))
				}
			}
		}
	}()
}
