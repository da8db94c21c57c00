package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
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
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the calculation engine knobs
type PayrollConfig struct {
	// CycleStartDay of 1 means the pay cycle is the calendar month.
	CycleStartDay int
	BatchWorkers  int
	CacheTTL      time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine; the process environment still applies.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "li-hrms"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Payroll configuration
	cycleStartDay, err := strconv.Atoi(getEnv("PAY_CYCLE_START_DAY", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAY_CYCLE_START_DAY: %w", err)
	}
	batchWorkers, err := strconv.Atoi(getEnv("BATCH_WORKERS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid BATCH_WORKERS: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("MASTER_CACHE_TTL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid MASTER_CACHE_TTL: %w", err)
	}

	config.Payroll = PayrollConfig{
		CycleStartDay: cycleStartDay,
		BatchWorkers:  batchWorkers,
		CacheTTL:      cacheTTL,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.CycleStartDay < 1 || c.Payroll.CycleStartDay > 28 {
		return fmt.Errorf("PAY_CYCLE_START_DAY must be between 1 and 28")
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
