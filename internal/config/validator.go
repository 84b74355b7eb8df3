package config

import (
	"fmt"
	"os"
	"strings"
)

// RequiredEnvVars lists environment variables that must be set in production
var RequiredEnvVars = []string{
	"DATA_DIR",
	"API_KEY",
}

// ValidateEnv checks that all required environment variables are set.
// Only enforced for non-dev environments; local development runs on defaults.
func ValidateEnv(environment string) error {
	if environment == "dev" || environment == "development" {
		return nil
	}

	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
