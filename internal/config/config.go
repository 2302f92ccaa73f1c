package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Market   MarketConfig   `json:"market"`
	Security SecurityConfig `json:"security"`
	Logging  LoggingConfig  `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
}

// MarketConfig holds the catalog defaults for a fresh wallet session
type MarketConfig struct {
	InitialBalance int64         `json:"initial_balance"`
	StatsInterval  time.Duration `json:"stats_interval"`
}

// SecurityConfig holds the session-token signing secret
type SecurityConfig struct {
	JWTSecret  string        `json:"jwt_secret"`
	SessionTTL time.Duration `json:"session_ttl"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from .env, an optional JSON file, and
// environment variable overrides, in that order.
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional; environment wins over file values either way.
	godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Market: MarketConfig{
			InitialBalance: 1000,
			StatsInterval:  time.Minute,
		},
		Security: SecurityConfig{
			JWTSecret:  "dev-only-secret",
			SessionTTL: 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Security.JWTSecret = secret
	}
	if balance := os.Getenv("MARKET_INITIAL_BALANCE"); balance != "" {
		if b, err := strconv.ParseInt(balance, 10, 64); err == nil {
			config.Market.InitialBalance = b
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
