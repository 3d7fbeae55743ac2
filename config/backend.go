package config

import (
	"strings"
	"time"
)

// BackendConfig describes how to reach the remote e-commerce API.
type BackendConfig struct {
	// URL is the backend root, including any path prefix.
	URL string `env:"URL" envDefault:"http://localhost:8080/api"`

	// Timeout bounds each request. There are no retries; a failed call is
	// reported once to the operation that issued it.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to backend configuration values.
func (c *BackendConfig) Sanitize() {
	c.URL = strings.TrimRight(strings.TrimSpace(c.URL), "/")
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}
