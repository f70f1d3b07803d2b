package auth

import (
	"errors"
	"fmt"

	"github.com/ak-shop/api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureSuperAdmin creates the configured super admin account on startup.
// The account is created verified; nothing happens when it already exists or
// when seeding is not configured.
func (s *Service) EnsureSuperAdmin() error {
	seed := s.config.SuperAdmin
	if seed.Email == "" || seed.Password == "" {
		s.logger.Debug("super admin seeding not configured")
		return nil
	}

	var existing models.User
	err := s.db.Where("email = ?", seed.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check super admin: %w", err)
	}

	hash, err := s.HashPassword(seed.Password)
	if err != nil {
		return fmt.Errorf("failed to hash super admin password: %w", err)
	}

	name := seed.Name
	if name == "" {
		name = "Super Admin"
	}
	firstName, lastName := SplitName(name)

	return s.db.Transaction(func(tx *gorm.DB) error {
		user := &models.User{
			Name:          name,
			Email:         seed.Email,
			Password:      &hash,
			Role:          models.RoleSuperAdmin,
			EmailVerified: true,
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create super admin: %w", err)
		}

		profile := &models.Profile{
			FirstName: firstName,
			LastName:  lastName,
			UserID:    user.ID,
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create super admin profile: %w", err)
		}

		s.logger.Info("super admin seeded", zap.String("user_id", user.ID))
		return nil
	})
}
