package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string
	SalesPort     string
	Environment   string
	Database      DatabaseConfig
	SalesDatabase DatabaseConfig
	Tax           TaxConfig
	Redis         RedisConfig
	Auth          AuthConfig
	LogLevel      string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// DSN returns the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type TaxConfig struct {
	APIURL       string
	RateUnit     string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	CacheTTL     time.Duration
}

const (
	RateUnitFraction = "fraction"
	RateUnitPercent  = "percent"
)

// DefaultTaxAPIURL answers in percent, so its default unit is RateUnitPercent.
const DefaultTaxAPIURL = "https://teapi.netlify.app/api/statetax"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

const defaultJWTSecret = "change-me-in-production"

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("SALES_PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		SalesPort:   getEnvOrViper("SALES_PORT", "8081"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:         getEnvOrViper("DB_HOST", "localhost"),
			Port:         getEnvOrViper("DB_PORT", "5432"),
			User:         getEnvOrViper("DB_USER", "postgres"),
			Password:     getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:       getEnvOrViper("DB_NAME", "order_management"),
			SSLMode:      getEnvOrViper("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntOrViper("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntOrViper("DB_MAX_IDLE_CONNS", 10),
		},
		SalesDatabase: DatabaseConfig{
			Host:         getEnvOrViper("SALES_DB_HOST", getEnvOrViper("DB_HOST", "localhost")),
			Port:         getEnvOrViper("SALES_DB_PORT", getEnvOrViper("DB_PORT", "5432")),
			User:         getEnvOrViper("SALES_DB_USER", getEnvOrViper("DB_USER", "postgres")),
			Password:     getEnvOrViper("SALES_DB_PASSWORD", getEnvOrViper("DB_PASSWORD", "postgres")),
			DBName:       getEnvOrViper("SALES_DB_NAME", "ssgeek"),
			SSLMode:      getEnvOrViper("SALES_DB_SSLMODE", getEnvOrViper("DB_SSLMODE", "disable")),
			MaxOpenConns: getIntOrViper("SALES_DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getIntOrViper("SALES_DB_MAX_IDLE_CONNS", 5),
		},
		Tax: TaxConfig{
			APIURL:       getEnvOrViper("TAX_API_URL", DefaultTaxAPIURL),
			RateUnit:     getEnvOrViper("TAX_RATE_UNIT", RateUnitPercent),
			Timeout:      getDurationOrViper("TAX_TIMEOUT", 5*time.Second),
			MaxRetries:   getIntOrViper("TAX_MAX_RETRIES", 2),
			RetryBackoff: getDurationOrViper("TAX_RETRY_BACKOFF", 200*time.Millisecond),
			CacheTTL:     getDurationOrViper("TAX_CACHE_TTL", 10*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", ""),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       getIntOrViper("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret: getEnvOrViper("JWT_SECRET", defaultJWTSecret),
			TokenTTL:  getDurationOrViper("JWT_TTL", 24*time.Hour),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Tax.RateUnit != RateUnitFraction && cfg.Tax.RateUnit != RateUnitPercent {
		return nil, fmt.Errorf("TAX_RATE_UNIT must be %q or %q, got %q", RateUnitFraction, RateUnitPercent, cfg.Tax.RateUnit)
	}
	if cfg.Tax.MaxRetries < 0 {
		return nil, fmt.Errorf("TAX_MAX_RETRIES must not be negative")
	}
	if cfg.Environment == "production" && cfg.Auth.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getIntOrViper(key string, defaultValue int) int {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}

func getDurationOrViper(key string, defaultValue time.Duration) time.Duration {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return d
}
