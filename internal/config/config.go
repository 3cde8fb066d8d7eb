package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

const (
	AuthFirebase = "firebase"
	AuthJWT      = "jwt"

	StorageGCS   = "gcs"
	StorageLocal = "local"
)

type Config struct {
	Env              string
	Debug            bool
	Port             string
	DatabaseURL      string
	CORSOrigins      []string
	AdminEmail       string
	AppURL           string
	DefaultLocale    string
	ReminderInterval time.Duration
	RollbarToken     string

	Auth     AuthConfig
	Storage  StorageConfig
	Razorpay RazorpayConfig
	Mail     MailConfig
	Discord  DiscordConfig
}

type AuthConfig struct {
	Mode              string
	JWTSecret         string
	FirebaseProjectID string
	CredentialsFile   string
}

type StorageConfig struct {
	Backend   string
	Bucket    string
	LocalDir  string
	PublicURL string
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

type MailConfig struct {
	SendgridKey string
	From        mail.Address
}

type DiscordConfig struct {
	Token     string
	ChannelID string
}

func defaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("DEBUG", false)
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "postgres://localhost:5432/revamp?sslmode=disable")
	v.SetDefault("APP_URL", "http://localhost:3000")
	v.SetDefault("DEFAULT_LOCALE", "en")
	v.SetDefault("REMINDER_INTERVAL", "10m")
	v.SetDefault("AUTH_MODE", AuthFirebase)
	v.SetDefault("STORAGE_BACKEND", StorageLocal)
	v.SetDefault("STORAGE_LOCAL_DIR", "./uploads")
	v.SetDefault("MAIL_FROM", "REvamp <noreply@revamp.in>")
}

// Load reads the configuration from the environment, after loading an
// optional .env file, and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	interval, err := time.ParseDuration(v.GetString("REMINDER_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("config: REMINDER_INTERVAL invalid (%q): %w", v.GetString("REMINDER_INTERVAL"), err)
	}
	from, err := mail.ParseAddress(v.GetString("MAIL_FROM"))
	if err != nil {
		return nil, fmt.Errorf("config: MAIL_FROM is not a valid address (%q): %w", v.GetString("MAIL_FROM"), err)
	}

	cfg := &Config{
		Env:              v.GetString("ENV"),
		Debug:            v.GetBool("DEBUG"),
		Port:             v.GetString("PORT"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		CORSOrigins:      splitList(v.GetString("CORS_ORIGINS")),
		AdminEmail:       strings.TrimSpace(v.GetString("ADMIN_EMAIL")),
		AppURL:           v.GetString("APP_URL"),
		DefaultLocale:    v.GetString("DEFAULT_LOCALE"),
		ReminderInterval: interval,
		RollbarToken:     v.GetString("ROLLBAR_TOKEN"),
		Auth: AuthConfig{
			Mode:              strings.ToLower(v.GetString("AUTH_MODE")),
			JWTSecret:         v.GetString("AUTH_JWT_SECRET"),
			FirebaseProjectID: v.GetString("FIREBASE_PROJECT_ID"),
			CredentialsFile:   v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
		},
		Storage: StorageConfig{
			Backend:   strings.ToLower(v.GetString("STORAGE_BACKEND")),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			LocalDir:  v.GetString("STORAGE_LOCAL_DIR"),
			PublicURL: v.GetString("STORAGE_PUBLIC_URL"),
		},
		Razorpay: RazorpayConfig{
			KeyID:     v.GetString("RAZORPAY_KEY_ID"),
			KeySecret: v.GetString("RAZORPAY_KEY_SECRET"),
		},
		Mail: MailConfig{
			SendgridKey: v.GetString("SENDGRID_API_KEY"),
			From:        *from,
		},
		Discord: DiscordConfig{
			Token:     v.GetString("DISCORD_TOKEN"),
			ChannelID: v.GetString("DISCORD_CHANNEL_ID"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// validate checks what every command needs.
func (c *Config) validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("config: DATABASE_URL is required")
	}
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): missing scheme or host", c.DatabaseURL)
	}
	if _, err := language.Parse(c.DefaultLocale); err != nil {
		return fmt.Errorf("config: DEFAULT_LOCALE invalid (%q): %w", c.DefaultLocale, err)
	}
	if c.ReminderInterval <= 0 {
		return fmt.Errorf("config: REMINDER_INTERVAL must be positive")
	}
	return nil
}

// ValidateServe checks the settings the HTTP server and its workers need.
func (c *Config) ValidateServe() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("config: PORT is required")
	}

	switch c.Auth.Mode {
	case AuthFirebase:
		if c.Auth.FirebaseProjectID == "" {
			return fmt.Errorf("config: FIREBASE_PROJECT_ID is required when AUTH_MODE=firebase")
		}
	case AuthJWT:
		if len(c.Auth.JWTSecret) < 16 {
			return fmt.Errorf("config: AUTH_JWT_SECRET must be at least 16 characters when AUTH_MODE=jwt")
		}
		if c.IsProduction() {
			return fmt.Errorf("config: AUTH_MODE=jwt is not allowed in production")
		}
	default:
		return fmt.Errorf("config: AUTH_MODE must be %s or %s, got %q", AuthFirebase, AuthJWT, c.Auth.Mode)
	}

	switch c.Storage.Backend {
	case StorageGCS:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("config: STORAGE_BUCKET is required when STORAGE_BACKEND=gcs")
		}
	case StorageLocal:
		if c.Storage.LocalDir == "" {
			return fmt.Errorf("config: STORAGE_LOCAL_DIR is required when STORAGE_BACKEND=local")
		}
	default:
		return fmt.Errorf("config: STORAGE_BACKEND must be %s or %s, got %q", StorageGCS, StorageLocal, c.Storage.Backend)
	}
	if c.Storage.PublicURL != "" {
		if u, err := url.Parse(c.Storage.PublicURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: STORAGE_PUBLIC_URL invalid (%q)", c.Storage.PublicURL)
		}
	}

	if c.Razorpay.KeyID == "" || c.Razorpay.KeySecret == "" {
		return fmt.Errorf("config: RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required")
	}

	if c.Discord.Token != "" {
		if strings.TrimSpace(c.Discord.ChannelID) == "" {
			return fmt.Errorf("config: DISCORD_CHANNEL_ID is required when DISCORD_TOKEN is set")
		}
		for _, r := range c.Discord.ChannelID {
			if r < '0' || r > '9' {
				return fmt.Errorf("config: DISCORD_CHANNEL_ID must be a Discord channel ID (digits only)")
			}
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
