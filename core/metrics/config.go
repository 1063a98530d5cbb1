package metrics

import (
	"fmt"

	"github.com/kilianp07/ridesim/auth"
	"github.com/kilianp07/ridesim/core/factory"
)

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// Listen exposes /metrics on this address while datasets run.
	Listen string `json:"listen"`
	// PushGateway receives the Prometheus registry after each run.
	PushGateway string `json:"push_gateway"`
	PushJob     string `json:"push_job"`
	// PushAuth authenticates pushes with OAuth2 client credentials.
	PushAuth auth.Conf `json:"push_auth"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.PushJob == "" {
		c.PushJob = "ridesim"
	}
}

// Validate checks that every sink names a type.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics.sinks[%d]: type is required", i)
		}
	}
	if c.PushAuth.Enabled() && c.PushAuth.TokenURL == "" {
		return fmt.Errorf("metrics.push_auth: token_url is required")
	}
	return nil
}
