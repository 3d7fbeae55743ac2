package config

import "strings"

// StatsDConfig controls the optional StatsD metrics sink.
type StatsDConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	Address string `env:"ADDRESS" envDefault:"localhost:8125"`
	Prefix  string `env:"PREFIX"  envDefault:"shopfront"`
}

// ObservabilityConfig groups observability configuration.
type ObservabilityConfig struct {
	StatsD StatsDConfig `envPrefix:"STATSD_"`
}

// Sanitize applies guardrails to observability configuration values.
func (c *ObservabilityConfig) Sanitize() {
	c.StatsD.Address = strings.TrimSpace(c.StatsD.Address)
	if c.StatsD.Address == "" {
		c.StatsD.Enabled = false
	}
	c.StatsD.Prefix = strings.Trim(strings.TrimSpace(c.StatsD.Prefix), ".")
}
