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

// ValidateConfig checks that every value the server cannot run without is
// present. Redis settings are intentionally not required.
func ValidateConfig(cfg *Config) error {
	var missing []string

	required := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
	}
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return ValidationError{
			Field:   strings.Join(missing, ", "),
			Message: "required configuration is missing",
		}
	}

	return nil
}
