// Package workspace manages the per-package output directory that holds
// flow artifacts across runs.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir returns the output directory for a package under the build root.
func Dir(buildDir, ipName string) string {
	return filepath.Join(buildDir, ipName)
}

// Ensure creates the output directory when it does not exist yet.
func Ensure(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Clean removes every prior artifact from the output directory, leaving the
// directory itself in place for the run about to start.
func Clean(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read output directory: %w", err)
	}

	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to clean output directory: %w", err)
		}
	}
	return nil
}
