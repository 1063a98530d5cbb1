package config

import "fmt"

// ExportConfig writes per-job outcome reports next to each solution.
type ExportConfig struct {
	// Format is "csv" or "json".
	Format string `json:"format"`
	// Dir receives <dataset>.outcomes.<format>. Empty disables the export.
	Dir string `json:"dir"`
}

// SetDefaults applies sane defaults.
func (c *ExportConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "csv"
	}
}

// Validate checks the format name.
func (c ExportConfig) Validate() error {
	if c.Format != "csv" && c.Format != "json" {
		return fmt.Errorf("unknown format %s", c.Format)
	}
	return nil
}
