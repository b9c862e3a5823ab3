// Package common provides shared utilities for Vitae
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultJWTSecret = "dev-jwt-secret-change-in-production"

// Config holds all configuration for Vitae
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Auth        AuthConfig    `toml:"auth"`
	Logging     LoggingConfig `toml:"logging"`
	CORS        CORSConfig    `toml:"cors"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// GetShutdownTimeout parses and returns the graceful shutdown timeout
func (c *ServerConfig) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// StorageConfig selects and configures the persistence backend.
// Backend "surrealdb" (default) or "memory" for local runs without a database.
type StorageConfig struct {
	Backend   string `toml:"backend"`
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Gemini GeminiConfig `toml:"gemini"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	RateLimit int    `toml:"rate_limit"` // requests per minute
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the per-request timeout
func (c *GeminiConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// AuthConfig holds JWT and password hashing settings.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
	Issuer      string `toml:"issuer"`
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
	MaxAge         int      `toml:"max_age"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ShutdownTimeout: "10s",
		},
		Storage: StorageConfig{
			Backend:   "surrealdb",
			Address:   "ws://localhost:8000/rpc",
			Namespace: "vitae",
			Database:  "vitae",
			Username:  "root",
			Password:  "root",
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model:     "gemini-2.0-flash",
				RateLimit: 30,
				Timeout:   "60s",
			},
		},
		Auth: AuthConfig{
			JWTSecret:   defaultJWTSecret,
			TokenExpiry: "24h",
			Issuer:      "vitae-server",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			MaxAge:         300,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("VITAE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("VITAE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("VITAE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("VITAE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// Storage overrides
	if v := os.Getenv("VITAE_STORAGE_BACKEND"); v != "" {
		config.Storage.Backend = v
	}
	if v := os.Getenv("VITAE_STORAGE_ADDRESS"); v != "" {
		config.Storage.Address = v
	}
	if v := os.Getenv("VITAE_STORAGE_NAMESPACE"); v != "" {
		config.Storage.Namespace = v
	}
	if v := os.Getenv("VITAE_STORAGE_DATABASE"); v != "" {
		config.Storage.Database = v
	}
	if v := os.Getenv("VITAE_STORAGE_USERNAME"); v != "" {
		config.Storage.Username = v
	}
	if v := os.Getenv("VITAE_STORAGE_PASSWORD"); v != "" {
		config.Storage.Password = v
	}

	// Auth overrides
	if v := os.Getenv("VITAE_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("VITAE_AUTH_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}

	if v := os.Getenv("VITAE_GEMINI_MODEL"); v != "" {
		config.Clients.Gemini.Model = v
	}
	if v, err := ResolveAPIKey("gemini_api_key", ""); err == nil {
		config.Clients.Gemini.APIKey = v
	}

	if v := os.Getenv("VITAE_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.CORS.AllowedOrigins = origins
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ValidateRequired returns the names of settings that must be changed or
// provided before the server can run in production.
func (c *Config) ValidateRequired() []string {
	var missing []string
	if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == defaultJWTSecret {
		missing = append(missing, "auth.jwt_secret")
	}
	if c.Clients.Gemini.APIKey == "" {
		missing = append(missing, "clients.gemini.api_key")
	}
	if c.Storage.Backend != "memory" && c.Storage.Address == "" {
		missing = append(missing, "storage.address")
	}
	return missing
}

// ResolveAPIKey resolves an API key from the environment, or the fallback
func ResolveAPIKey(name string, fallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"gemini_api_key": {"GEMINI_API_KEY", "VITAE_GEMINI_API_KEY", "GOOGLE_API_KEY"},
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	if fallback != "" {
		return fallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment", name)
}
