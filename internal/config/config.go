package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Auth     AuthConfig
	Google   GoogleConfig
	Otel     OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection  string
	AutoMigrate bool
}

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	SenderName string
}

type AuthConfig struct {
	JWTSecret string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type OtelConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection:  getEnv("DB_CONNECTION_STRING", ""),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", "sandbox.smtp.mailtrap.io"),
			Port:       getEnvAsInt("SMTP_PORT", 2525),
			Username:   getEnv("SMTP_USERNAME", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			From:       getEnv("EMAIL_FROM", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Sticky Notes App"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},
		Otel: OtelConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// Validate reports the inputs the process cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.Connection == "" {
		errs = append(errs, errors.New("DB_CONNECTION_STRING is not set"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := strings.TrimSpace(getEnv(key, ""))
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
