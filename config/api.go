package config

import "strings"

// APIConfig contains backend API endpoint configuration.
type APIConfig struct {
	// Base is the backend origin, e.g. http://localhost:8000.
	Base string `env:"BASE" envDefault:"http://localhost:8000"`

	// Prefix is the API route prefix appended to Base.
	Prefix string `env:"PREFIX" envDefault:"/api"`
}

// Sanitize applies guardrails to API endpoint values.
func (c *APIConfig) Sanitize() {
	c.Base = strings.TrimRight(strings.TrimSpace(c.Base), "/")
	if c.Base == "" {
		c.Base = "http://localhost:8000"
	}

	c.Prefix = strings.TrimSpace(c.Prefix)
	if c.Prefix != "" && !strings.HasPrefix(c.Prefix, "/") {
		c.Prefix = "/" + c.Prefix
	}
	c.Prefix = strings.TrimRight(c.Prefix, "/")
}
