// Package testutil provides a recording fake of the toolchain adapter for
// unit tests across the flow, program, and project packages.
package testutil

import (
	"strings"

	"github.com/hyperspace-labs/vivo/internal/toolchain"
)

// FakeTool records every adapter call in order. Individual operations can
// be made to fail, and the measured setup slack is configurable.
type FakeTool struct {
	// Calls holds one entry per adapter call: the operation name followed
	// by its arguments, space separated.
	Calls []string

	// Slack is returned by WorstSetupSlack.
	Slack float64

	// HardwareDevices is returned by Devices.
	HardwareDevices []string

	// FailOn maps an operation name to the error it should return.
	FailOn map[string]error
}

// NewFakeTool returns a fake with no failures and zero slack.
func NewFakeTool() *FakeTool {
	return &FakeTool{FailOn: make(map[string]error)}
}

func (f *FakeTool) record(op string, args ...string) error {
	call := op
	if len(args) > 0 {
		call += " " + strings.Join(args, " ")
	}
	f.Calls = append(f.Calls, call)
	return f.FailOn[op]
}

// Ops returns just the operation names, in call order.
func (f *FakeTool) Ops() []string {
	ops := make([]string, 0, len(f.Calls))
	for _, call := range f.Calls {
		op, _, _ := strings.Cut(call, " ")
		ops = append(ops, op)
	}
	return ops
}

// Count returns how many times an operation was called.
func (f *FakeTool) Count(op string) int {
	n := 0
	for _, o := range f.Ops() {
		if o == op {
			n++
		}
	}
	return n
}

// Index returns the position of the first call of an operation, or -1.
func (f *FakeTool) Index(op string) int {
	for i, o := range f.Ops() {
		if o == op {
			return i
		}
	}
	return -1
}

// Source reads (non-project variant).

func (f *FakeTool) ReadVHDL(library, path string) error {
	return f.record("ReadVHDL", library, path)
}

func (f *FakeTool) ReadVerilog(library, path string) error {
	return f.record("ReadVerilog", library, path)
}

func (f *FakeTool) ReadSystemVerilog(library, path string) error {
	return f.record("ReadSystemVerilog", library, path)
}

func (f *FakeTool) ReadConstraints(path string) error {
	return f.record("ReadConstraints", path)
}

// Flow stages.

func (f *FakeTool) RunSynthesis(top, part string, generics []toolchain.Generic) error {
	args := []string{top, part}
	for _, g := range generics {
		args = append(args, "-generic", g.String())
	}
	return f.record("RunSynthesis", args...)
}

func (f *FakeTool) RunOptimization() error {
	return f.record("RunOptimization")
}

func (f *FakeTool) RunPlacement() error {
	return f.record("RunPlacement")
}

func (f *FakeTool) WorstSetupSlack() (float64, error) {
	if err := f.record("WorstSetupSlack"); err != nil {
		return 0, err
	}
	return f.Slack, nil
}

func (f *FakeTool) RunPhysicalOptimization() error {
	return f.record("RunPhysicalOptimization")
}

func (f *FakeTool) RunRouting(directive string) error {
	return f.record("RunRouting", directive)
}

func (f *FakeTool) WriteCheckpoint(path string) error {
	return f.record("WriteCheckpoint", path)
}

func (f *FakeTool) ReportTimingSummary(path string) error {
	return f.record("ReportTimingSummary", path)
}

func (f *FakeTool) ReportUtilization(path string) error {
	return f.record("ReportUtilization", path)
}

func (f *FakeTool) ReportClockUtilization(path string) error {
	return f.record("ReportClockUtilization", path)
}

func (f *FakeTool) ReportRouteStatus(path string) error {
	return f.record("ReportRouteStatus", path)
}

func (f *FakeTool) ReportPower(path string) error {
	return f.record("ReportPower", path)
}

func (f *FakeTool) ReportDRC(path string) error {
	return f.record("ReportDRC", path)
}

func (f *FakeTool) WriteNetlist(path string) error {
	return f.record("WriteNetlist", path)
}

func (f *FakeTool) WriteBitstream(path string) error {
	return f.record("WriteBitstream", path)
}

// Hardware manager.

func (f *FakeTool) OpenHardwareManager() error {
	return f.record("OpenHardwareManager")
}

func (f *FakeTool) ConnectServer() error {
	return f.record("ConnectServer")
}

func (f *FakeTool) OpenTarget() error {
	return f.record("OpenTarget")
}

func (f *FakeTool) Devices(pattern string) ([]string, error) {
	if err := f.record("Devices", pattern); err != nil {
		return nil, err
	}
	return f.HardwareDevices, nil
}

func (f *FakeTool) SelectDevice(device string) error {
	return f.record("SelectDevice", device)
}

func (f *FakeTool) RefreshDeviceNoProbes(device string) error {
	return f.record("RefreshDeviceNoProbes", device)
}

func (f *FakeTool) ClearProbes(device string) error {
	return f.record("ClearProbes", device)
}

func (f *FakeTool) SetProgramFile(device, path string) error {
	return f.record("SetProgramFile", device, path)
}

func (f *FakeTool) Program(device string) error {
	return f.record("Program", device)
}

func (f *FakeTool) RefreshDevice(device string) error {
	return f.record("RefreshDevice", device)
}

// Project container.

func (f *FakeTool) OpenProject(path string) error {
	return f.record("OpenProject", path)
}

func (f *FakeTool) CreateProject(path, part string) error {
	return f.record("CreateProject", path, part)
}

func (f *FakeTool) SetProjectProperty(name, value string) error {
	return f.record("SetProjectProperty", name, value)
}

func (f *FakeTool) AddSourceFile(fileset, library, path string) error {
	return f.record("AddSourceFile", fileset, library, path)
}

func (f *FakeTool) AddConstraintsFile(fileset, path string) error {
	return f.record("AddConstraintsFile", fileset, path)
}

func (f *FakeTool) ImportFiles(fileset string, paths []string) error {
	return f.record("ImportFiles", append([]string{fileset}, paths...)...)
}

func (f *FakeTool) SetTop(fileset, top string) error {
	return f.record("SetTop", fileset, top)
}

func (f *FakeTool) UpdateCompileOrder(fileset string) error {
	return f.record("UpdateCompileOrder", fileset)
}

func (f *FakeTool) AppendGenerics(generics []toolchain.Generic) error {
	args := make([]string, 0, len(generics))
	for _, g := range generics {
		args = append(args, g.String())
	}
	return f.record("AppendGenerics", args...)
}
