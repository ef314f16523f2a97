package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// CORS configuration
	CORSAllowedOrigins []string

	// Live shopping session configuration
	SessionChannelPrefix string

	// Rate limiting for shopping-list generation
	GenerateRateLimit  int
	GenerateRateWindow time.Duration
}

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to Docker secrets files and then to development
// defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:           lookup("SERVER_PORT", "server_port", "8080"),
		ServerHost:           lookup("SERVER_HOST", "server_host", "0.0.0.0"),
		DBHost:               lookup("DB_HOST", "db_host", "localhost"),
		DBPort:               lookup("DB_PORT", "db_port", "5432"),
		DBUser:               lookup("DB_USER", "db_user", "postgres"),
		DBPassword:           lookup("DB_PASSWORD", "db_password", "postgres"),
		DBName:               lookup("DB_NAME", "db_name", "pantryline"),
		DBSSLMode:            lookup("DB_SSL_MODE", "db_ssl_mode", "disable"),
		RedisHost:            lookup("REDIS_HOST", "redis_host", "localhost"),
		RedisPort:            lookup("REDIS_PORT", "redis_port", "6379"),
		RedisPassword:        lookup("REDIS_PASSWORD", "redis_password", ""),
		RedisURL:             lookup("REDIS_URL", "redis_url", "redis://localhost:6379"),
		JWTSecret:            lookup("JWT_SECRET", "jwt_secret", "your-secret-key"),
		SessionChannelPrefix: lookup("SESSION_CHANNEL_PREFIX", "", "shopping"),
	}
	cfg.RedisDB = 0 // This is a constant, not a secret

	origins := lookup("CORS_ALLOWED_ORIGINS", "", "http://localhost:5173")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	limit, err := strconv.Atoi(lookup("GENERATE_RATE_LIMIT", "", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid GENERATE_RATE_LIMIT: %w", err)
	}
	cfg.GenerateRateLimit = limit

	window, err := time.ParseDuration(lookup("GENERATE_RATE_WINDOW", "", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid GENERATE_RATE_WINDOW: %w", err)
	}
	cfg.GenerateRateWindow = window

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// lookup resolves a configuration value: environment variable first, then
// the Docker secret of the given name, then the default.
func lookup(envName, secretName, def string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	if secretName != "" {
		if v := readSecret(secretName); v != "" {
			return v
		}
	}
	return def
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
