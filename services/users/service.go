package users

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service covers the admin side of account management.
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

type ListParams struct {
	Page   int
	Limit  int
	Search string
	Role   string
}

type UserPage struct {
	Items []models.User
	Total int64
	Page  int
	Limit int
}

func (s *Service) List(params ListParams) (*UserPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}

	query := s.db.Model(&models.User{})
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}
	if params.Role != "" {
		query = query.Where("role = ?", params.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var items []models.User
	err := query.Preload("Profile").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserPage{Items: items, Total: total, Page: params.Page, Limit: params.Limit}, nil
}

func (s *Service) Get(id string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Profile").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

var assignableRoles = map[models.Role]bool{
	models.RoleCustomer: true,
	models.RoleStaff:    true,
	models.RoleAdmin:    true,
}

// SetRole changes an account's role. The super admin role can neither be
// granted nor taken away here.
func (s *Service) SetRole(id string, role models.Role) (*models.User, error) {
	if !assignableRoles[role] {
		return nil, apperr.BadRequest(fmt.Sprintf("role %q cannot be assigned", role))
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleSuperAdmin {
		return nil, apperr.Forbidden("the super admin role cannot be changed")
	}

	if err := s.db.Model(user).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	user.Role = role

	s.logger.Info("user role changed",
		zap.String("user_id", id),
		zap.String("role", string(role)))
	return user, nil
}

// Delete removes an account with its profile, addresses and refresh tokens.
// Super admin accounts are protected.
func (s *Service) Delete(id string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleSuperAdmin {
		return apperr.Forbidden("the super admin account cannot be deleted")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return fmt.Errorf("failed to delete refresh tokens: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Address{}).Error; err != nil {
			return fmt.Errorf("failed to delete addresses: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		if err := tx.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
