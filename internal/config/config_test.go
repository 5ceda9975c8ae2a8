package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)

	assert.Equal(t, DefaultCommand, cfg.Command)
	assert.Equal(t, DefaultRoutingDirective, cfg.RoutingDirective)
	assert.Equal(t, "python3", cfg.Generator)
	assert.Empty(t, cfg.DefaultPart)
}

func TestLoadReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := "command: vivado.bat\ndefault_part: xc7a35ticsg324-1L\nrouting_directive: AggressiveExplore\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "vivado.bat", cfg.Command)
	assert.Equal(t, "xc7a35ticsg324-1L", cfg.DefaultPart)
	assert.Equal(t, "AggressiveExplore", cfg.RoutingDirective)
	// unset fields still fall back to defaults
	assert.Equal(t, "python3", cfg.Generator)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("command: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}
