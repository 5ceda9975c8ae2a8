package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	assert.Equal(t, filepath.Join("build", "gate"), Dir("build", "gate"))
}

func TestCleanRemovesPriorArtifacts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post_synth.dcp"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "reports"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reports", "timing.rpt"), []byte("x"), 0o644))

	require.NoError(t, Clean(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// the directory itself survives for the next run
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCleanMissingDirIsNoOp(t *testing.T) {
	assert.NoError(t, Clean(filepath.Join(t.TempDir(), "never-created")))
}

func TestReceiptRoundTrip(t *testing.T) {
	dir := t.TempDir()

	receipt := NewReceipt("bitstream", "xc7a35t", "cpu")
	receipt.AddArtifact("post_synth.dcp")
	receipt.AddArtifact("cpu.bit")
	require.NoError(t, receipt.Write(dir))

	got, err := ReadReceipt(dir)
	require.NoError(t, err)

	assert.Equal(t, receipt.ID, got.ID)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "bitstream", got.Stage)
	assert.Equal(t, "xc7a35t", got.Part)
	assert.Equal(t, "cpu", got.Top)
	assert.Equal(t, []string{"post_synth.dcp", "cpu.bit"}, got.Artifacts)
}

func TestReceiptIDsAreUnique(t *testing.T) {
	a := NewReceipt("route", "", "")
	b := NewReceipt("route", "", "")
	assert.NotEqual(t, a.ID, b.ID)
}
