package config

import (
	"fmt"
	"strings"
)

// StateBackend selects where session state (tokens, onboarding flags)
// is persisted.
type StateBackend string

const (
	// StateBackendFile persists state to a JSON file under the state dir.
	StateBackendFile StateBackend = "file"
	// StateBackendRedis persists state to a shared Redis instance.
	StateBackendRedis StateBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StateBackend.
func (s *StateBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "redis":
		*s = StateBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StateBackend: %q (valid options: file, redis)", v)
	}
}

// StateConfig contains local state storage configuration.
type StateConfig struct {
	// Backend selects the state store implementation.
	Backend StateBackend `env:"BACKEND" envDefault:"file"`

	// Dir is the directory holding the state file. Empty means the
	// platform default under the user config dir.
	Dir string `env:"DIR"`
}

// Sanitize applies guardrails to state storage values.
func (c *StateConfig) Sanitize() {
	if c.Backend == "" {
		c.Backend = StateBackendFile
	}
	c.Dir = strings.TrimSpace(c.Dir)
}

// RedisConfig contains Redis configuration for the shared state backend.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
	// KeyPrefix namespaces every state key in the shared instance.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"suprss:"`
}
