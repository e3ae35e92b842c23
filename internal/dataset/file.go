package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hepworks/trijet.report/internal/units"
)

// maxDatasetFileSize bounds dataset files read from disk (64MB).
const maxDatasetFileSize = 64 * 1024 * 1024

// fileEnvelope is the on-disk dataset format. The optional momentum_unit
// field lets raw exports (MeV) be normalized on load; omitted means GeV.
type fileEnvelope struct {
	Name         string  `json:"name"`
	MomentumUnit string  `json:"momentum_unit,omitempty"`
	MinJetPt     float64 `json:"min_jet_pt,omitempty"`
	Events       []Event `json:"events"`
}

// FileSource reads a validated batch from a JSON dataset file.
type FileSource struct {
	Path string
}

// NewFileSource creates a source for the given dataset file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name returns the dataset file basename.
func (s *FileSource) Name() string {
	return filepath.Base(s.Path)
}

// Batch loads, normalizes, and validates the dataset file. A batch that
// fails validation is rejected outright; the caller decides whether to
// fix the file or skip the run.
func (s *FileSource) Batch() (*Batch, error) {
	cleanPath := filepath.Clean(s.Path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("dataset file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat dataset file: %w", err)
	}
	if info.Size() > maxDatasetFileSize {
		return nil, fmt.Errorf("dataset file too large: %d bytes (max %d)", info.Size(), maxDatasetFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse dataset JSON: %w", err)
	}

	name := env.Name
	if name == "" {
		name = s.Name()
	}
	batch := &Batch{Name: name, MinJetPt: env.MinJetPt, Events: env.Events}

	unit := env.MomentumUnit
	if unit == "" {
		unit = units.GeV
	}
	if !units.IsValidMomentumUnit(unit) {
		return nil, fmt.Errorf("unknown momentum unit %q (valid: %v)", unit, units.ValidMomentumUnits)
	}
	batch.Normalize(unit)

	if err := batch.Validate(); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", name, err)
	}
	return batch, nil
}

// WriteFile writes a batch to a JSON dataset file in GeV.
func WriteFile(path string, b *Batch) error {
	env := fileEnvelope{
		Name:         b.Name,
		MomentumUnit: units.GeV,
		MinJetPt:     b.MinJetPt,
		Events:       b.Events,
	}
	data, err := json.MarshalIndent(&env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}
	return nil
}
