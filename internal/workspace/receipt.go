package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ReceiptName is the file recording the outcome of the most recent run.
const ReceiptName = "run.yml"

// Receipt summarizes one flow run for the output directory it was run in.
type Receipt struct {
	ID        string    `yaml:"id"`
	Timestamp time.Time `yaml:"timestamp"`
	Stage     string    `yaml:"stage"`
	Part      string    `yaml:"part,omitempty"`
	Top       string    `yaml:"top,omitempty"`
	Artifacts []string  `yaml:"artifacts,omitempty"`
}

// NewReceipt starts a receipt for a run beginning now.
func NewReceipt(stage, part, top string) *Receipt {
	return &Receipt{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Stage:     stage,
		Part:      part,
		Top:       top,
	}
}

// AddArtifact records an artifact path relative to the output directory.
func (r *Receipt) AddArtifact(path string) {
	r.Artifacts = append(r.Artifacts, path)
}

// Write saves the receipt into the output directory, replacing the receipt
// of any previous run.
func (r *Receipt) Write(dir string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode run receipt: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ReceiptName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write run receipt: %w", err)
	}
	return nil
}

// ReadReceipt loads the receipt of the previous run, if one exists.
func ReadReceipt(dir string) (*Receipt, error) {
	data, err := os.ReadFile(filepath.Join(dir, ReceiptName))
	if err != nil {
		return nil, fmt.Errorf("failed to read run receipt: %w", err)
	}
	var r Receipt
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse run receipt: %w", err)
	}
	return &r, nil
}
