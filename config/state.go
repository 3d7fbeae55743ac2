package config

import (
	"fmt"
	"strings"
)

// StateStore selects the credential store backing the persisted identity
// markers.
type StateStore string

const (
	// StateStoreRedis keeps the markers in Redis so they survive restarts.
	StateStoreRedis StateStore = "redis"
	// StateStoreMemory keeps the markers in process memory (tests, dev).
	StateStoreMemory StateStore = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for StateStore.
func (s *StateStore) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "redis", "memory":
		*s = StateStore(v)
		return nil
	default:
		return fmt.Errorf("invalid StateStore: %q (valid options: redis, memory)", v)
	}
}

// RedisConfig contains Redis connection configuration.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// StateConfig groups persisted-state configuration.
type StateConfig struct {
	// Store determines which credential store implementation to use.
	Store StateStore `env:"STORE" envDefault:"redis"`

	// Key is the Redis key holding the identity markers.
	Key string `env:"KEY" envDefault:"shopfront:identity"`

	// Redis connection settings (used when Store=redis).
	Redis RedisConfig `envPrefix:"REDIS_"`
}

// Sanitize applies guardrails to state configuration values.
func (c *StateConfig) Sanitize() {
	if c.Store == "" {
		c.Store = StateStoreRedis
	}
	c.Key = strings.TrimSpace(c.Key)
	if c.Key == "" {
		c.Key = "shopfront:identity"
	}
}
