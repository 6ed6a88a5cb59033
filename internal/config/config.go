package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hudoor/hudoor-backend-go/internal/pkg/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Device   DeviceConfig
	Sync     SyncConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AdminConfig is the single dashboard credential. The hash is a bcrypt
// digest; the plaintext never appears in configuration.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// DeviceConfig describes the biometric terminal source. When ProxyURL is
// set, data comes from the local read-only proxy; otherwise the built-in
// mock reader is used.
type DeviceConfig struct {
	Address       string
	Username      string
	Password      string
	ProxyURL      string
	FetchTimeout  time.Duration
	HealthTimeout time.Duration
}

// SyncConfig tunes the aggregation and persistence sync.
type SyncConfig struct {
	Interval      time.Duration
	StartYear     int
	LateThreshold string // HH:MM, shared by dashboard queries and sync
	TieBreak      string
}

func Load() (*Config, error) {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hudoor"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	accessExp, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExp,
	}

	config.Admin = AdminConfig{
		Email:        getEnv("ADMIN_EMAIL", ""),
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	fetchTimeout, err := time.ParseDuration(getEnv("DEVICE_FETCH_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_FETCH_TIMEOUT: %w", err)
	}

	healthTimeout, err := time.ParseDuration(getEnv("DEVICE_HEALTH_TIMEOUT", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_HEALTH_TIMEOUT: %w", err)
	}

	config.Device = DeviceConfig{
		Address:       getEnv("DEVICE_IP", "10.10.1.127"),
		Username:      getEnv("DEVICE_USERNAME", "admin"),
		Password:      getEnv("DEVICE_PASSWORD", ""),
		ProxyURL:      getEnv("DEVICE_PROXY_URL", ""),
		FetchTimeout:  fetchTimeout,
		HealthTimeout: healthTimeout,
	}

	syncIntervalMinutes, err := strconv.Atoi(getEnv("SYNC_INTERVAL_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_INTERVAL_MINUTES: %w", err)
	}

	startYear, err := strconv.Atoi(getEnv("SYNC_START_YEAR", "2026"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_START_YEAR: %w", err)
	}

	config.Sync = SyncConfig{
		Interval:      time.Duration(syncIntervalMinutes) * time.Minute,
		StartYear:     startYear,
		LateThreshold: getEnv("LATE_THRESHOLD", "08:00"),
		TieBreak:      getEnv("TIE_BREAK_POLICY", "last-processed"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration. Failures here are fatal before any
// network call is attempted.
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Admin.Email == "" {
		return fmt.Errorf("ADMIN_EMAIL is required")
	}
	if c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	if !validator.IsValidDeviceAddress(c.Device.Address) {
		return fmt.Errorf("DEVICE_IP is missing or invalid")
	}
	if c.Sync.Interval < time.Minute {
		return fmt.Errorf("SYNC_INTERVAL_MINUTES must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
