package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultJWTIssuer is the iss claim stamped on tokens minted by the token command.
const DefaultJWTIssuer = "resume-scorer"

// JWTConfig holds configuration for the bearer-token gate on the scoring endpoints.
type JWTConfig struct {
	Secret          string
	Issuer          string
	ExpirationHours int
}

// NewJWTConfig creates a JWT configuration from environment variables.
// It reads JWT_SECRET (required), JWT_ISSUER and JWT_EXPIRATION_HOURS (default: 24).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	expirationStr := os.Getenv("JWT_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "24"
	}
	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
	}

	cfg := &JWTConfig{
		Secret:          secret,
		Issuer:          os.Getenv("JWT_ISSUER"),
		ExpirationHours: expirationHours,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OptionalJWTConfig is NewJWTConfig for the server: with no JWT_SECRET set it returns
// nil and the scoring endpoints stay open.
func OptionalJWTConfig() (*JWTConfig, error) {
	if os.Getenv("JWT_SECRET") == "" {
		return nil, nil
	}
	return NewJWTConfig()
}

// Expiration returns the token lifetime.
func (c *JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	if c.Issuer == "" {
		c.Issuer = DefaultJWTIssuer
	}
	return nil
}
