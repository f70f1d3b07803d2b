package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/services/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MailService interface {
	SendTemplate(templateName string, to []string, subject string, data map[string]any) error
}

type Service struct {
	config      *config.Config
	db          *gorm.DB
	mailService MailService
	logger      *logging.Service
}

func NewService(cfg *config.Config, db *gorm.DB, logger *logging.Service) *Service {
	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		cfg.Auth.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		config: cfg,
		db:     db,
		logger: logger,
	}
}

func (s *Service) SetMailService(mailService MailService) {
	s.mailService = mailService
}

// SplitName derives profile first and last names from a display name.
// A single word fills both fields.
func SplitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], parts[0]
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

func (s *Service) HashPassword(password string) (string, error) {
	if len(password) < s.config.Auth.MinPasswordLength {
		return "", apperr.BadRequest(fmt.Sprintf("password must be at least %d characters", s.config.Auth.MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.Auth.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a user with a profile and a pending verification token.
// The verification email is sent after commit; a delivery failure never
// undoes the registration.
func (s *Service) Register(name, email, password string) (*models.User, error) {
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	verificationToken := uuid.NewString()
	expires := time.Now().Add(s.config.Auth.VerificationTokenExpiry.Duration())
	firstName, lastName := SplitName(name)

	user := &models.User{
		Name:                     name,
		Email:                    strings.ToLower(email),
		Password:                 &hash,
		Role:                     models.RoleCustomer,
		VerificationToken:        &verificationToken,
		VerificationTokenExpires: &expires,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing user: %w", err)
		}
		if count > 0 {
			return apperr.Conflict("user with this email already exists")
		}

		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		profile := &models.Profile{
			FirstName: firstName,
			LastName:  lastName,
			UserID:    user.ID,
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	s.sendVerificationEmail(user, verificationToken)

	return user, nil
}

// Login checks credentials and returns the account. Token issuance is the
// caller's concern.
func (s *Service) Login(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Profile").Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.EmailVerified {
		return nil, apperr.Unauthorized("email not verified")
	}

	if user.Password == nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		s.logger.Warn("login failed: wrong password", zap.String("user_id", user.ID))
		return nil, apperr.Unauthorized("invalid credentials")
	}

	return &user, nil
}

// VerifyEmail consumes a verification token and marks the account verified.
// The token must belong to the named account.
func (s *Service) VerifyEmail(email, token string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? AND verification_token = ?", strings.ToLower(email), token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("invalid verification token")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.VerificationTokenExpires == nil || time.Now().After(*user.VerificationTokenExpires) {
		return nil, apperr.Unauthorized("verification token has expired")
	}

	updates := map[string]any{
		"email_verified":             true,
		"verification_token":         nil,
		"verification_token_expires": nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}
	user.EmailVerified = true
	user.VerificationToken = nil
	user.VerificationTokenExpires = nil

	s.logger.Info("email verified", zap.String("user_id", user.ID))
	s.sendWelcomeEmail(&user)

	return &user, nil
}

// ResendVerification refreshes the token expiry, reusing the outstanding
// token value when one exists, and sends the email again.
func (s *Service) ResendVerification(email string) error {
	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if user.EmailVerified {
		return apperr.BadRequest("email is already verified")
	}

	token := uuid.NewString()
	if user.VerificationToken != nil {
		token = *user.VerificationToken
	}
	expires := time.Now().Add(s.config.Auth.VerificationTokenExpiry.Duration())

	updates := map[string]any{
		"verification_token":         token,
		"verification_token_expires": expires,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to refresh verification token: %w", err)
	}

	s.sendVerificationEmail(&user, token)
	return nil
}

// ForgotPassword issues a reset token for a verified account.
func (s *Service) ForgotPassword(email string) error {
	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if !user.EmailVerified {
		return apperr.BadRequest("email not verified")
	}

	token := uuid.NewString()
	expires := time.Now().Add(s.config.Auth.PasswordResetExpiry.Duration())

	updates := map[string]any{
		"reset_password_token":   token,
		"reset_password_expires": expires,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	s.sendPasswordResetEmail(&user, token)
	return nil
}

// ResetPassword consumes a reset token. Nothing is mutated when the token is
// unknown or stale.
func (s *Service) ResetPassword(email, token, newPassword string) error {
	var user models.User
	err := s.db.Where("email = ? AND reset_password_token = ?", strings.ToLower(email), token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Unauthorized("invalid or expired reset token")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if user.ResetPasswordExpires == nil || time.Now().After(*user.ResetPasswordExpires) {
		return apperr.Unauthorized("invalid or expired reset token")
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"password":               hash,
		"reset_password_token":   nil,
		"reset_password_expires": nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password reset", zap.String("user_id", user.ID))
	return nil
}

// GetUser loads an account with its profile.
func (s *Service) GetUser(userID string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Profile").First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *Service) sendVerificationEmail(user *models.User, token string) {
	if s.mailService == nil {
		return
	}
	link := fmt.Sprintf("%s/verify-email?token=%s", s.config.App.URL, token)
	data := map[string]any{
		"Name":    user.Name,
		"Link":    link,
		"AppName": s.config.App.Name,
	}
	if err := s.mailService.SendTemplate("verify_email", []string{user.Email}, "Verify your email address", data); err != nil {
		s.logger.Error("failed to send verification email",
			zap.Error(err),
			zap.String("user_id", user.ID))
	}
}

func (s *Service) sendPasswordResetEmail(user *models.User, token string) {
	if s.mailService == nil {
		return
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", s.config.App.URL, token)
	data := map[string]any{
		"Name":    user.Name,
		"Link":    link,
		"AppName": s.config.App.Name,
	}
	if err := s.mailService.SendTemplate("password_reset", []string{user.Email}, "Reset your password", data); err != nil {
		s.logger.Error("failed to send password reset email",
			zap.Error(err),
			zap.String("user_id", user.ID))
	}
}

func (s *Service) sendWelcomeEmail(user *models.User) {
	if s.mailService == nil {
		return
	}
	data := map[string]any{
		"Name":    user.Name,
		"AppName": s.config.App.Name,
		"Link":    s.config.App.URL,
	}
	if err := s.mailService.SendTemplate("welcome", []string{user.Email}, fmt.Sprintf("Welcome to %s", s.config.App.Name), data); err != nil {
		s.logger.Error("failed to send welcome email",
			zap.Error(err),
			zap.String("user_id", user.ID))
	}
}
