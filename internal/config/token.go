package config

import (
	"os"

	"github.com/chris-milsted/lkeup/internal/model"
)

// TokenEnvVar names the environment variable carrying the Linode API token.
// The token is never read from the config file and never logged.
const TokenEnvVar = "LINODE_TOKEN"

// TokenFromEnv returns the Linode API token or a ValidationError when unset.
func TokenFromEnv() (string, error) {
	token := os.Getenv(TokenEnvVar)
	if token == "" {
		return "", &model.ValidationError{Field: TokenEnvVar, Reason: "environment variable is not set"}
	}
	return token, nil
}
