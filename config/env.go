package config

import "os"

// Environment names the runtime mode the process was started in.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// GetEnvironment resolves the mode from the ENV variable. Anything but
// "production" counts as development.
func GetEnvironment() Environment {
	if os.Getenv("ENV") == "production" {
		return Production
	}
	return Development
}

// IsProduction reports whether the process runs with production settings.
func IsProduction() bool {
	return GetEnvironment() == Production
}
