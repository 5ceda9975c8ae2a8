package program_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperspace-labs/vivo/internal/program"
	"github.com/hyperspace-labs/vivo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramSequence(t *testing.T) {
	fake := testutil.NewFakeTool()
	fake.HardwareDevices = []string{"xc7a35t_0", "xc7a100t_1"}

	err := program.New(fake, "").Program(context.Background(), "cpu.bit")
	require.NoError(t, err)

	// the session is assembled in order, against the first detected device
	assert.Equal(t, []string{
		"OpenHardwareManager",
		"ConnectServer",
		"OpenTarget",
		"Devices",
		"SelectDevice",
		"RefreshDeviceNoProbes",
		"ClearProbes",
		"SetProgramFile",
		"Program",
		"RefreshDevice",
	}, fake.Ops())
	assert.Contains(t, fake.Calls, "Devices "+program.DevicePattern)
	assert.Contains(t, fake.Calls, "SelectDevice xc7a35t_0")
	assert.Contains(t, fake.Calls, "SetProgramFile xc7a35t_0 cpu.bit")
	assert.NotContains(t, fake.Calls, "Program xc7a100t_1")
}

func TestProgramNoDeviceFound(t *testing.T) {
	fake := testutil.NewFakeTool()

	err := program.New(fake, "").Program(context.Background(), "cpu.bit")
	assert.ErrorIs(t, err, program.ErrNoDevice)

	// discovery happened but nothing was programmed
	assert.Equal(t, 1, fake.Count("Devices"))
	assert.Equal(t, 0, fake.Count("Program"))
}

func TestProgramChecksArtifactExists(t *testing.T) {
	dir := t.TempDir()
	fake := testutil.NewFakeTool()
	fake.HardwareDevices = []string{"xc7a35t_0"}

	err := program.New(fake, dir).Program(context.Background(), "cpu.bit")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	// no hardware session is opened for a missing artifact
	assert.Empty(t, fake.Calls)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cpu.bit"), []byte("bits"), 0o644))
	err = program.New(fake, dir).Program(context.Background(), "cpu.bit")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.Count("Program"))
}
