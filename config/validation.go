package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that every field a running server depends on is
// populated and structurally sane.
func ValidateConfig(cfg *Config) error {
	var errs []string

	required := map[string]string{
		"ServerPort":           cfg.ServerPort,
		"DBHost":               cfg.DBHost,
		"DBPort":               cfg.DBPort,
		"DBUser":               cfg.DBUser,
		"DBName":               cfg.DBName,
		"JWTSecret":            cfg.JWTSecret,
		"SessionChannelPrefix": cfg.SessionChannelPrefix,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "must not be empty"}.Error())
		}
	}

	if IsProduction() && cfg.JWTSecret == "your-secret-key" {
		errs = append(errs, ValidationError{Field: "JWTSecret", Message: "default secret not allowed in production"}.Error())
	}

	if cfg.GenerateRateLimit <= 0 {
		errs = append(errs, ValidationError{Field: "GenerateRateLimit", Message: "must be positive"}.Error())
	}
	if cfg.GenerateRateWindow <= 0 {
		errs = append(errs, ValidationError{Field: "GenerateRateWindow", Message: "must be positive"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
