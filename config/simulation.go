package config

import "fmt"

// SimulationConfig locates datasets and tunes the engine's event output.
type SimulationConfig struct {
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`
	InputExt  string `json:"input_ext"`
	OutputExt string `json:"output_ext"`
	// Datasets lists input files to run. Relative names resolve against
	// InputDir. Empty means every file with InputExt in InputDir.
	Datasets []string `json:"datasets"`
	// TickInterval publishes tick samples every n ticks; zero disables them.
	TickInterval int `json:"tick_interval"`
	// BusBuffer is the per-subscriber event buffer.
	BusBuffer int `json:"bus_buffer"`
}

// SetDefaults applies sane defaults.
func (c *SimulationConfig) SetDefaults() {
	if c.InputDir == "" {
		c.InputDir = "data"
	}
	if c.OutputDir == "" {
		c.OutputDir = c.InputDir
	}
	if c.InputExt == "" {
		c.InputExt = ".in"
	}
	if c.OutputExt == "" {
		c.OutputExt = ".out"
	}
	if c.BusBuffer == 0 {
		c.BusBuffer = 4096
	}
}

// Validate checks the extension and counters.
func (c SimulationConfig) Validate() error {
	if c.InputExt == c.OutputExt && c.InputDir == c.OutputDir {
		return fmt.Errorf("output would overwrite input: both use %q in %s", c.InputExt, c.InputDir)
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("tick_interval must not be negative")
	}
	if c.BusBuffer < 0 {
		return fmt.Errorf("bus_buffer must not be negative")
	}
	return nil
}
