package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/MrEthical07/authflow/jwt"
	"github.com/MrEthical07/authflow/password"
)

// Config controls the identity provider.
type Config struct {
	// Prefix namespaces every Redis key written by the provider.
	Prefix string
	// SessionTTL bounds both the session record and the ID token.
	SessionTTL time.Duration
	// MinPasswordLength is the provider-side password floor, in characters.
	MinPasswordLength int
	// SignOutTimeout bounds the background session delete after sign-out.
	SignOutTimeout time.Duration

	Password password.Config
	JWT      jwt.Config
}

// DefaultConfig returns a provider configuration signing HS256 tokens with key.
func DefaultConfig(key []byte) Config {
	return Config{
		Prefix:            "authflow",
		SessionTTL:        time.Hour,
		MinPasswordLength: 6,
		SignOutTimeout:    5 * time.Second,
		Password:          password.DefaultConfig(),
		JWT: jwt.Config{
			SigningMethod: jwt.MethodHS256,
			PrivateKey:    key,
			Issuer:        "authflow",
		},
	}
}

// Validate reports the first invalid setting in c.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Prefix) == "" {
		return errors.New("identity Prefix must not be empty")
	}
	if strings.Contains(c.Prefix, "{") || strings.Contains(c.Prefix, "}") {
		return errors.New("identity Prefix must not contain hash tags")
	}
	if c.SessionTTL <= 0 {
		return errors.New("identity SessionTTL must be > 0")
	}
	if c.MinPasswordLength < 0 {
		return errors.New("identity MinPasswordLength must be >= 0")
	}
	if c.SignOutTimeout <= 0 {
		return errors.New("identity SignOutTimeout must be > 0")
	}
	return nil
}
