package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hepworks/trijet.report/internal/trijet"
)

// Config represents the tunable analysis parameters. Fields are
// pointers so a partial JSON file overrides only what it names; the
// Get* methods supply defaults for the rest.
type Config struct {
	TargetMass *float64 `json:"target_mass,omitempty"`
	Workers    *int     `json:"workers,omitempty"`
	PlotDir    *string  `json:"plot_dir,omitempty"`

	// Histogram binning overrides
	PtBins   *int     `json:"pt_bins,omitempty"`
	PtMax    *float64 `json:"pt_max,omitempty"`
	MassBins *int     `json:"mass_bins,omitempty"`
	MassMax  *float64 `json:"mass_max,omitempty"`
}

// LoadConfig loads a Config from a JSON file. Fields omitted from the
// file retain their defaults, so partial configs are safe.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate rejects values that would make a run meaningless.
func (c *Config) Validate() error {
	if c.TargetMass != nil && *c.TargetMass <= 0 {
		return fmt.Errorf("target_mass must be positive, got %v", *c.TargetMass)
	}
	if c.PtBins != nil && *c.PtBins < 1 {
		return fmt.Errorf("pt_bins must be at least 1, got %d", *c.PtBins)
	}
	if c.MassBins != nil && *c.MassBins < 1 {
		return fmt.Errorf("mass_bins must be at least 1, got %d", *c.MassBins)
	}
	if c.PtMax != nil && *c.PtMax <= 0 {
		return fmt.Errorf("pt_max must be positive, got %v", *c.PtMax)
	}
	if c.MassMax != nil && *c.MassMax <= 0 {
		return fmt.Errorf("mass_max must be positive, got %v", *c.MassMax)
	}
	return nil
}

// GetTargetMass returns the configured reference mass or the default.
func (c *Config) GetTargetMass() float64 {
	if c != nil && c.TargetMass != nil {
		return *c.TargetMass
	}
	return trijet.DefaultTargetMass
}

// GetWorkers returns the configured worker count or 0 (sequential).
func (c *Config) GetWorkers() int {
	if c != nil && c.Workers != nil {
		return *c.Workers
	}
	return 0
}

// GetPlotDir returns the configured plot base directory or "plots".
func (c *Config) GetPlotDir() string {
	if c != nil && c.PlotDir != nil {
		return *c.PlotDir
	}
	return "plots"
}
