package jwtauth

import (
	"strings"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/services/jwt"
	"github.com/labstack/echo/v4"
)

const (
	UserIDKey = "_jwt_user_id"
	ClaimsKey = "_jwt_claims"
)

// RequireJWT guards a route with bearer token auth and stashes the verified
// claims on the request context.
func RequireJWT(jwtService *jwt.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperr.Unauthorized("authorization header required")
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				return apperr.Unauthorized("invalid authorization header format")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" {
				return apperr.Unauthorized("access token required")
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				switch err {
				case jwt.ErrExpiredToken:
					return apperr.Unauthorized("access token has expired")
				case jwt.ErrMalformedToken:
					return apperr.Unauthorized("malformed access token")
				case jwt.ErrInvalidSignature:
					return apperr.Unauthorized("invalid access token signature")
				default:
					return apperr.Unauthorized("invalid access token")
				}
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(ClaimsKey, claims)

			return next(c)
		}
	}
}

func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

func GetClaims(c echo.Context) *jwt.Claims {
	if claims, ok := c.Get(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}

func GetRole(c echo.Context) models.Role {
	if claims := GetClaims(c); claims != nil {
		return claims.Role
	}
	return ""
}
