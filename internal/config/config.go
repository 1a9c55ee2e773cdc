package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Mail     MailConfig
	Rate     RateConfig
	LogLevel string
}

type ServerConfig struct {
	Port    string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Path        string
	SeedCatalog bool
}

type AuthConfig struct {
	SecretKey  string
	SessionTTL time.Duration
	// ResetTokenTTL bounds the age of password-reset links.
	ResetTokenTTL time.Duration
}

type MailConfig struct {
	// ServiceURL is the base URL of the external email microservice.
	ServiceURL string
	// PublicBaseURL is the host prefix used when composing links in emails.
	PublicBaseURL string
	Timeout       time.Duration
	Workers       int
	QueueSize     int
}

type RateConfig struct {
	// Per-IP request budgets per minute.
	RegisterPerMinute int
	LoginPerMinute    int
}

func Load() (*Config, error) {
	// .env is a local development convenience; real environment wins and
	// a missing file is not an error.
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_TIMEOUT", "30s")
	viper.SetDefault("DB_PATH", "ponteonce.db")
	viper.SetDefault("SEED_CATALOG", true)
	viper.SetDefault("SECRET_KEY", "dev_key_change_in_production")
	viper.SetDefault("SESSION_TTL", "168h")
	viper.SetDefault("RESET_TOKEN_TTL", "1h")
	viper.SetDefault("EMAIL_SERVICE_URL", "http://localhost:3000")
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	viper.SetDefault("MAIL_TIMEOUT", "10s")
	viper.SetDefault("MAIL_WORKERS", 2)
	viper.SetDefault("MAIL_QUEUE_SIZE", 64)
	viper.SetDefault("RATE_REGISTER_PER_MINUTE", 5)
	viper.SetDefault("RATE_LOGIN_PER_MINUTE", 10)
	viper.SetDefault("LOG_LEVEL", "info")

	var cfg Config

	cfg.AppEnv = viper.GetString("APP_ENV")
	cfg.Server.Port = viper.GetString("SERVER_PORT")
	cfg.Server.Timeout = viper.GetDuration("SERVER_TIMEOUT")

	cfg.Database.Path = viper.GetString("DB_PATH")
	cfg.Database.SeedCatalog = viper.GetBool("SEED_CATALOG")

	cfg.Auth.SecretKey = viper.GetString("SECRET_KEY")
	cfg.Auth.SessionTTL = viper.GetDuration("SESSION_TTL")
	cfg.Auth.ResetTokenTTL = viper.GetDuration("RESET_TOKEN_TTL")

	cfg.Mail.ServiceURL = viper.GetString("EMAIL_SERVICE_URL")
	cfg.Mail.PublicBaseURL = viper.GetString("PUBLIC_BASE_URL")
	cfg.Mail.Timeout = viper.GetDuration("MAIL_TIMEOUT")
	cfg.Mail.Workers = viper.GetInt("MAIL_WORKERS")
	cfg.Mail.QueueSize = viper.GetInt("MAIL_QUEUE_SIZE")

	cfg.Rate.RegisterPerMinute = viper.GetInt("RATE_REGISTER_PER_MINUTE")
	cfg.Rate.LoginPerMinute = viper.GetInt("RATE_LOGIN_PER_MINUTE")

	cfg.LogLevel = viper.GetString("LOG_LEVEL")

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
