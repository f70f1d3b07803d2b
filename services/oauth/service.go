package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/services/logging"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleUser is the identity extracted from a verified Google ID token.
type GoogleUser struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Audience      string `json:"aud"`
}

type Service struct {
	config       *config.Config
	db           *gorm.DB
	logger       *logging.Service
	oauthConfig  *oauth2.Config
	httpClient   *http.Client
	tokenInfoURL string
}

func NewService(cfg *config.Config, db *gorm.DB, logger *logging.Service) *Service {
	return &Service{
		config: cfg,
		db:     db,
		logger: logger,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		tokenInfoURL: googleTokenInfoURL,
	}
}

// VerifyIDToken validates an ID token against Google's tokeninfo endpoint
// and checks the audience matches our client ID.
func (s *Service) VerifyIDToken(ctx context.Context, idToken string) (*GoogleUser, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", s.tokenInfoURL, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, apperr.BadGateway("failed to verify Google token", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Unauthorized("invalid Google token")
	}

	var info GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, apperr.BadGateway("failed to decode Google token info", err)
	}

	if info.Audience != s.config.Google.ClientID {
		s.logger.Warn("Google token audience mismatch", zap.String("aud", info.Audience))
		return nil, apperr.Unauthorized("invalid Google token")
	}

	if info.Email == "" || info.Sub == "" {
		return nil, apperr.Unauthorized("invalid Google token")
	}

	return &info, nil
}

// ExchangeCode swaps an authorization code for tokens and verifies the ID
// token that comes back.
func (s *Service) ExchangeCode(ctx context.Context, code string) (*GoogleUser, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, apperr.Unauthorized("invalid authorization code")
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, apperr.BadGateway("Google response missing id_token", nil)
	}

	return s.VerifyIDToken(ctx, rawIDToken)
}

// LoginWithGoogle resolves a verified Google identity to a local account:
// match on Google ID first, then link by email, then create a new verified
// account without a password.
func (s *Service) LoginWithGoogle(ctx context.Context, googleUser *GoogleUser) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Profile").Where("google_id = ?", googleUser.Sub).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up Google account: %w", err)
	}

	email := strings.ToLower(googleUser.Email)
	err = s.db.Preload("Profile").Where("email = ?", email).First(&user).Error
	if err == nil {
		updates := map[string]any{
			"google_id":      googleUser.Sub,
			"email_verified": true,
		}
		if user.AvatarURL == nil && googleUser.Picture != "" {
			updates["avatar_url"] = googleUser.Picture
		}
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to link Google account: %w", err)
		}
		user.GoogleID = &googleUser.Sub
		user.EmailVerified = true

		s.logger.Info("Google account linked", zap.String("user_id", user.ID))
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	name := googleUser.Name
	if name == "" {
		name = email
	}
	firstName := name
	lastName := name
	if parts := strings.Fields(name); len(parts) > 1 {
		firstName = parts[0]
		lastName = strings.Join(parts[1:], " ")
	}

	newUser := &models.User{
		Name:          name,
		Email:         email,
		EmailVerified: true,
		Role:          models.RoleCustomer,
		GoogleID:      &googleUser.Sub,
	}
	if googleUser.Picture != "" {
		newUser.AvatarURL = &googleUser.Picture
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(newUser).Error; err != nil {
			return fmt.Errorf("failed to create Google user: %w", err)
		}
		profile := &models.Profile{
			FirstName: firstName,
			LastName:  lastName,
			UserID:    newUser.ID,
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create Google user profile: %w", err)
		}
		newUser.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Google user created", zap.String("user_id", newUser.ID))
	return newUser, nil
}
