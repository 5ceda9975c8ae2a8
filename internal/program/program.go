// Package program implements the terminal device-programming action: hand
// a bitstream artifact to the first detected hardware device.
package program

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperspace-labs/vivo/internal/printer"
)

// DevicePattern matches the vendor's device identifier prefix during
// hardware discovery.
const DevicePattern = "xc*"

// ErrNoDevice is returned when hardware discovery finds nothing to program.
var ErrNoDevice = errors.New("no hardware device detected")

// Hardware is the slice of the toolchain's hardware-manager surface the
// programmer drives.
type Hardware interface {
	OpenHardwareManager() error
	ConnectServer() error
	OpenTarget() error
	Devices(pattern string) ([]string, error)
	SelectDevice(device string) error
	RefreshDeviceNoProbes(device string) error
	ClearProbes(device string) error
	SetProgramFile(device, path string) error
	Program(device string) error
	RefreshDevice(device string) error
}

// Programmer programs exactly one device per call and performs no retries.
type Programmer struct {
	hw Hardware

	// dir, when set, is the output directory checked for the artifact
	// before any hardware session is opened.
	dir string
}

// New returns a programmer over the given hardware surface. dir may be
// empty to skip the artifact existence check (recording mode).
func New(hw Hardware, dir string) *Programmer {
	return &Programmer{hw: hw, dir: dir}
}

// Program opens a hardware session, selects the first detected device
// matching DevicePattern, and programs the bitstream onto it.
func (p *Programmer) Program(ctx context.Context, bitstream string) error {
	if p.dir != "" {
		if _, err := os.Stat(filepath.Join(p.dir, bitstream)); err != nil {
			return fmt.Errorf("bitstream %q not found: %w", bitstream, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.hw.OpenHardwareManager(); err != nil {
		return err
	}
	if err := p.hw.ConnectServer(); err != nil {
		return err
	}
	if err := p.hw.OpenTarget(); err != nil {
		return err
	}

	devices, err := p.hw.Devices(DevicePattern)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return ErrNoDevice
	}
	device := devices[0]
	printer.Info("info: detected device %s ...\n", device)

	if err := p.hw.SelectDevice(device); err != nil {
		return err
	}
	if err := p.hw.RefreshDeviceNoProbes(device); err != nil {
		return err
	}
	if err := p.hw.ClearProbes(device); err != nil {
		return err
	}
	if err := p.hw.SetProgramFile(device, bitstream); err != nil {
		return err
	}
	if err := p.hw.Program(device); err != nil {
		return err
	}
	return p.hw.RefreshDevice(device)
}
