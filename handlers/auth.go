package handlers

import (
	"net/http"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/config"
	"github.com/ak-shop/api/middleware/jwtauth"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/server"
	"github.com/ak-shop/api/services/auth"
	"github.com/ak-shop/api/services/jwt"
	"github.com/ak-shop/api/services/logging"
	"github.com/ak-shop/api/services/oauth"
	"github.com/ak-shop/api/services/refreshtoken"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	config  *config.Config
	auth    *auth.Service
	oauth   *oauth.Service
	jwt     *jwt.Service
	refresh *refreshtoken.Service
	logger  *logging.Service
}

func NewAuthHandler(cfg *config.Config, authSvc *auth.Service, oauthSvc *oauth.Service, jwtSvc *jwt.Service, refreshSvc *refreshtoken.Service, logger *logging.Service) *AuthHandler {
	return &AuthHandler{
		config:  cfg,
		auth:    authSvc,
		oauth:   oauthSvc,
		jwt:     jwtSvc,
		refresh: refreshSvc,
		logger:  logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required_without=Code"`
	Code    string `json:"code" validate:"required_without=IDToken"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

type resetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// tokenResult is the login payload: a short lived bearer token plus the
// authenticated user. The refresh token travels in an HttpOnly cookie only.
type tokenResult struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresIn   int          `json:"expiresIn"`
	User        *models.User `json:"user"`
}

func (h *AuthHandler) issueSession(c echo.Context, user *models.User) (*tokenResult, error) {
	accessToken, err := h.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	token, err := h.refresh.Issue(user.ID, refreshtoken.Metadata{
		UserAgent: c.Request().UserAgent(),
		IP:        c.RealIP(),
	})
	if err != nil {
		return nil, err
	}
	setRefreshCookie(c, h.config, token.Token)

	return &tokenResult{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   h.jwt.AccessExpirySeconds(),
		User:        user,
	}, nil
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return server.Respond(c, http.StatusOK, "registration successful, please verify your email", user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		return err
	}

	result, err := h.issueSession(c, user)
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "login successful", result)
}

func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	var googleUser *oauth.GoogleUser
	var err error
	if req.IDToken != "" {
		googleUser, err = h.oauth.VerifyIDToken(ctx, req.IDToken)
	} else {
		googleUser, err = h.oauth.ExchangeCode(ctx, req.Code)
	}
	if err != nil {
		return err
	}

	user, err := h.oauth.LoginWithGoogle(ctx, googleUser)
	if err != nil {
		return err
	}

	result, err := h.issueSession(c, user)
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "login successful", result)
}

func (h *AuthHandler) RefreshToken(c echo.Context) error {
	cookie, err := c.Cookie(h.config.Cookie.Name)
	if err != nil || cookie.Value == "" {
		return apperr.Unauthorized("refresh token required")
	}

	rotated, err := h.refresh.Rotate(cookie.Value, refreshtoken.Metadata{
		UserAgent: c.Request().UserAgent(),
		IP:        c.RealIP(),
	})
	if err != nil {
		clearRefreshCookie(c, h.config)
		return err
	}

	user, err := h.auth.GetUser(rotated.UserID)
	if err != nil {
		return err
	}

	accessToken, err := h.jwt.GenerateToken(user)
	if err != nil {
		return err
	}
	setRefreshCookie(c, h.config, rotated.Token)

	return server.Respond(c, http.StatusOK, "token refreshed", &tokenResult{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   h.jwt.AccessExpirySeconds(),
		User:        user,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(h.config.Cookie.Name)
	if err != nil || cookie.Value == "" {
		return apperr.Unauthorized("refresh token required")
	}

	// The cookie is cleared even when the token is unknown so the client
	// does not keep retrying with a dead credential.
	clearRefreshCookie(c, h.config)
	if err := h.refresh.Revoke(cookie.Value); err != nil {
		h.logger.Debug("logout with unknown refresh token", zap.Error(err))
		return err
	}

	return server.Respond(c, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.auth.GetUser(jwtauth.GetUserID(c))
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "user retrieved", user)
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.auth.VerifyEmail(req.Email, req.Token)
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "email verified", user)
}

func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req emailRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.auth.ResendVerification(req.Email); err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "verification email sent", nil)
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req emailRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.auth.ForgotPassword(req.Email); err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "password reset email sent", nil)
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.auth.ResetPassword(req.Email, req.Token, req.Password); err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "password reset successful", nil)
}
