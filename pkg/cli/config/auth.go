package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/charter-lab/charterforge/pkg/usecase"
)

// Auth holds configuration for API authentication
type Auth struct {
	apiKey      string
	tokenSecret string
}

// Flags returns CLI flags for authentication configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "Static API key exchanged for session tokens. Empty disables authentication.",
			Category:    "Authentication",
			Sources:     cli.EnvVars("CHARTERFORGE_API_KEY"),
			Destination: &a.apiKey,
		},
		&cli.StringFlag{
			Name:        "token-secret",
			Usage:       "HMAC secret for signing session tokens (min 32 bytes)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("CHARTERFORGE_TOKEN_SECRET"),
			Destination: &a.tokenSecret,
		},
	}
}

// IsConfigured returns true when authentication is enabled
func (a *Auth) IsConfigured() bool {
	return a.apiKey != ""
}

// Configure creates the auth use case. Returns nil when authentication
// is disabled.
func (a *Auth) Configure() (*usecase.AuthUseCase, error) {
	if a.apiKey == "" {
		return nil, nil
	}
	if a.tokenSecret == "" {
		return nil, goerr.New("token-secret is required when api-key is set")
	}
	return usecase.NewAuthUseCase(a.apiKey, a.tokenSecret)
}
