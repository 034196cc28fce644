package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Dataset   DatasetConfig
	Matching  MatchingConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatasetConfig points at the tabular medicines dataset
type DatasetConfig struct {
	Path  string `mapstructure:"path"`
	Table string `mapstructure:"table"` // only used for SQLite sources
}

// MatchingConfig holds similarity matcher settings
type MatchingConfig struct {
	TopN   int     `mapstructure:"top_n"`
	Cutoff float64 `mapstructure:"cutoff"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error (default: per environment)
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/medalt/")

	// MEDALT_SERVER_PORT -> server.port
	v.SetEnvPrefix("MEDALT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env into the process environment if present.
// Variables already set in the environment win.
func loadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", "10s")

	// Dataset defaults
	v.SetDefault("dataset.path", "../lib/dataset/Pakistan Medicines Dataset.csv")
	v.SetDefault("dataset.table", "medicines")

	// Matching defaults
	v.SetDefault("matching.top_n", 5)
	v.SetDefault("matching.cutoff", 0.6)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("logging.level", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set MEDALT_SERVER_PORT)")
	}

	switch config.Server.Environment {
	case "development", "test", "production":
	default:
		return fmt.Errorf("environment must be 'development', 'test' or 'production', got: %s", config.Server.Environment)
	}

	if config.Dataset.Path == "" {
		return fmt.Errorf("dataset path is required (set MEDALT_DATASET_PATH)")
	}

	if config.Matching.TopN < 1 {
		return fmt.Errorf("matching top_n must be at least 1, got: %d", config.Matching.TopN)
	}

	if config.Matching.Cutoff <= 0 || config.Matching.Cutoff > 1 {
		return fmt.Errorf("matching cutoff must be in (0, 1], got: %v", config.Matching.Cutoff)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
