package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Lifetime is a duration configured as "<number><m|h|d>", the format the
// token lifetime variables use (e.g. "15m", "12h", "7d").
type Lifetime time.Duration

func (l *Lifetime) UnmarshalText(text []byte) error {
	d, err := ParseLifetime(string(text))
	if err != nil {
		return err
	}
	*l = Lifetime(d)
	return nil
}

func (l Lifetime) Duration() time.Duration {
	return time.Duration(l)
}

func (l Lifetime) Seconds() int {
	return int(time.Duration(l).Seconds())
}

func ParseLifetime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid lifetime %q: expected <number><m|h|d>", s)
	}

	unit := s[len(s)-1]
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid lifetime %q: expected <number><m|h|d>", s)
	}

	switch unit {
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("invalid lifetime unit %q: expected m, h or d", string(unit))
	}
}

type Config struct {
	App          AppConfig      `envPrefix:"APP_"`
	Server       ServerConfig   `envPrefix:"SERVER_"`
	Log          LogConfig      `envPrefix:"LOG_"`
	Database     DatabaseConfig `envPrefix:"DB_"`
	Auth         AuthConfig     `envPrefix:"AUTH_"`
	JWT          JWTConfig      `envPrefix:"JWT_"`
	RefreshToken RefreshConfig  `envPrefix:"REFRESH_TOKEN_"`
	Cookie       CookieConfig   `envPrefix:"COOKIE_"`
	Mail         MailConfig     `envPrefix:"MAIL_"`
	Google       GoogleConfig   `envPrefix:"GOOGLE_"`
	ImageKit     ImageKitConfig `envPrefix:"IMAGE_KIT_"`
	Upload       UploadConfig   `envPrefix:"UPLOAD_"`
	SuperAdmin   SeedConfig     `envPrefix:"SUPER_ADMIN_"`
}

type AppConfig struct {
	Name        string `env:"NAME" envDefault:"ak-shop"`
	URL         string `env:"URL" envDefault:"http://localhost:8080"`
	Environment string `env:"ENV" envDefault:"development"`
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type ServerConfig struct {
	Host string `env:"HOST" envDefault:"localhost"`
	Port string `env:"PORT" envDefault:"8080"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
	Output string `env:"OUTPUT" envDefault:"stdout"`
}

type DatabaseConfig struct {
	Driver      string `env:"DRIVER" envDefault:"sqlite"`
	DSN         string `env:"DSN" envDefault:"akshop.db"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

type AuthConfig struct {
	BcryptCost              int      `env:"BCRYPT_COST" envDefault:"10"`
	MinPasswordLength       int      `env:"MIN_PASSWORD_LENGTH" envDefault:"8"`
	VerificationTokenExpiry Lifetime `env:"VERIFICATION_TOKEN_LIFE" envDefault:"24h"`
	PasswordResetExpiry     Lifetime `env:"PASSWORD_RESET_LIFE" envDefault:"1h"`
}

type JWTConfig struct {
	Secret       string   `env:"SECRET"`
	Issuer       string   `env:"ISSUER" envDefault:"ak-shop"`
	AccessExpiry Lifetime `env:"ACCESS_TOKEN_LIFE" envDefault:"15m"`
}

type RefreshConfig struct {
	Expiry          Lifetime      `env:"LIFE" envDefault:"7d"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1h"`
}

type CookieConfig struct {
	Name   string `env:"NAME" envDefault:"ak_refresh_token"`
	Secret string `env:"SECRET"`
}

type MailConfig struct {
	Host         string `env:"HOST"`
	Port         int    `env:"PORT" envDefault:"587"`
	Username     string `env:"USERNAME"`
	Password     string `env:"PASSWORD"`
	Encryption   string `env:"ENCRYPTION" envDefault:"starttls"`
	FromAddress  string `env:"FROM_ADDRESS"`
	FromName     string `env:"FROM_NAME"`
	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"templates/emails"`
}

type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"`
}

type ImageKitConfig struct {
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
	URLEndpoint string `env:"URL_ENDPOINT"`
	Folder      string `env:"FOLDER" envDefault:"media-ak-shop"`
}

type UploadConfig struct {
	MaxFileSize  int64    `env:"MAX_FILE_SIZE" envDefault:"10485760"`
	AllowedTypes []string `env:"ALLOWED_TYPES" envSeparator:"," envDefault:"image/jpeg,image/png,image/gif,image/webp"`
}

type SeedConfig struct {
	Email    string `env:"EMAIL"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME"`
}

func LoadConfig(cfg *Config) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	if err := env.Parse(cfg); err != nil {
		return err
	}

	return cfg.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("AUTH_BCRYPT_COST must be between 4 and 31, got %d", c.Auth.BcryptCost)
	}
	return nil
}
