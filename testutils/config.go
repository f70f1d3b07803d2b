package testutils

import (
	"time"

	"github.com/ak-shop/api/config"
	"golang.org/x/crypto/bcrypt"
)

func GetTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "ak-shop-test",
			URL:         "http://localhost:3000",
			Environment: "development",
		},
		Auth: config.AuthConfig{
			BcryptCost:              bcrypt.MinCost,
			MinPasswordLength:       8,
			VerificationTokenExpiry: config.Lifetime(24 * time.Hour),
			PasswordResetExpiry:     config.Lifetime(time.Hour),
		},
		JWT: config.JWTConfig{
			Secret:       "test-secret-key-32-chars-long!!!",
			Issuer:       "ak-shop-test",
			AccessExpiry: config.Lifetime(15 * time.Minute),
		},
		RefreshToken: config.RefreshConfig{
			Expiry:          config.Lifetime(7 * 24 * time.Hour),
			CleanupInterval: time.Hour,
		},
		Cookie: config.CookieConfig{
			Name:   "ak_refresh_token",
			Secret: "test-cookie-secret",
		},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    ":memory:",
		},
		Upload: config.UploadConfig{
			MaxFileSize:  10 * 1024 * 1024,
			AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		},
	}
}
