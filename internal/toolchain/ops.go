package toolchain

import (
	"fmt"
	"strconv"
	"strings"
)

// DisableUsageReporting turns off the tool's phone-home reporting for the
// session. Older tool versions reject the command, so failures are ignored.
func (t *Tool) DisableUsageReporting() {
	t.run(tcl("config_webtalk", "-user", "off"))
}

// ReadVHDL streams a VHDL source into the in-memory design under a library.
func (t *Tool) ReadVHDL(library, path string) error {
	return t.run(tcl("read_vhdl", "-library", library, path))
}

// ReadVerilog streams a Verilog source into the in-memory design.
func (t *Tool) ReadVerilog(library, path string) error {
	return t.run(tcl("read_verilog", "-library", library, path))
}

// ReadSystemVerilog streams a SystemVerilog source into the in-memory design.
func (t *Tool) ReadSystemVerilog(library, path string) error {
	return t.run(tcl("read_verilog", "-sv", "-library", library, path))
}

// ReadConstraints streams a constraints file into the in-memory design.
func (t *Tool) ReadConstraints(path string) error {
	return t.run(tcl("read_xdc", path))
}

// RunSynthesis synthesizes the design for a part, forwarding each generic
// verbatim as its own -generic pair.
func (t *Tool) RunSynthesis(top, part string, generics []Generic) error {
	words := []any{"synth_design", "-top", top, "-part", part}
	for _, g := range generics {
		words = append(words, "-generic", g)
	}
	return t.run(tcl(words...))
}

// RunOptimization runs logic optimization on the synthesized design.
func (t *Tool) RunOptimization() error {
	return t.run(tcl("opt_design"))
}

// RunPlacement places the optimized design.
func (t *Tool) RunPlacement() error {
	return t.run(tcl("place_design"))
}

const slackQuery = `get_property SLACK [get_timing_paths -max_paths 1 -nworst 1 -setup]`

// WorstSetupSlack returns the worst setup slack across all timing paths of
// the placed design. In recording mode the measurement can only happen
// inside the tool, so the slack-conditional optimization pass is embedded
// in the script and a non-negative slack is reported back.
func (t *Tool) WorstSetupSlack() (float64, error) {
	if t.sess == nil {
		t.lines = append(t.lines,
			"if {["+slackQuery+"] < 0} {",
			"  "+tcl("puts", "info: found setup timing violations: running physical optimization ..."),
			"  "+tcl("phys_opt_design"),
			"}",
		)
		return 0, nil
	}

	out, err := t.sess.eval(slackQuery)
	if err != nil {
		return 0, err
	}
	slack, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse setup slack %q: %w", out, err)
	}
	return slack, nil
}

// RunPhysicalOptimization runs the post-placement physical optimization pass.
func (t *Tool) RunPhysicalOptimization() error {
	return t.run(tcl("phys_opt_design"))
}

// RunRouting routes the placed design with the given directive.
func (t *Tool) RunRouting(directive string) error {
	return t.run(tcl("route_design", "-directive", directive))
}

// WriteCheckpoint saves a design checkpoint, replacing any previous one.
func (t *Tool) WriteCheckpoint(path string) error {
	return t.run(tcl("write_checkpoint", "-force", path))
}

// ReportTimingSummary writes a timing summary report.
func (t *Tool) ReportTimingSummary(path string) error {
	return t.run(tcl("report_timing_summary", "-file", path))
}

// ReportUtilization writes a resource utilization report.
func (t *Tool) ReportUtilization(path string) error {
	return t.run(tcl("report_utilization", "-file", path))
}

// ReportClockUtilization writes a clock utilization report.
func (t *Tool) ReportClockUtilization(path string) error {
	return t.run(tcl("report_clock_utilization", "-file", path))
}

// ReportRouteStatus writes a routing status report.
func (t *Tool) ReportRouteStatus(path string) error {
	return t.run(tcl("report_route_status", "-file", path))
}

// ReportPower writes a power estimation report.
func (t *Tool) ReportPower(path string) error {
	return t.run(tcl("report_power", "-file", path))
}

// ReportDRC writes a design rule check report.
func (t *Tool) ReportDRC(path string) error {
	return t.run(tcl("report_drc", "-file", path))
}

// WriteNetlist writes the timing-annotated post-implementation netlist.
func (t *Tool) WriteNetlist(path string) error {
	return t.run(tcl("write_verilog", "-force", path, "-mode", "timesim", "-sdf_anno", "true"))
}

// WriteBitstream writes the final bitstream artifact.
func (t *Tool) WriteBitstream(path string) error {
	return t.run(tcl("write_bitstream", "-force", path))
}

// OpenHardwareManager opens the tool's hardware manager.
func (t *Tool) OpenHardwareManager() error {
	return t.run(tcl("open_hw_manager"))
}

// ConnectServer connects to the local hardware server.
func (t *Tool) ConnectServer() error {
	return t.run(tcl("connect_hw_server", "-allow_non_jtag"))
}

// OpenTarget opens the connected hardware target.
func (t *Tool) OpenTarget() error {
	return t.run(tcl("open_hw_target"))
}

// Devices lists detected hardware devices whose names match the pattern.
// In recording mode the lookup happens inside the script, so a single
// placeholder reference is returned for subsequent commands to use.
func (t *Tool) Devices(pattern string) ([]string, error) {
	if t.sess == nil {
		t.lines = append(t.lines, `set device [lindex [get_hw_devices "`+pattern+`"] 0]`)
		return []string{"$device"}, nil
	}

	out, err := t.sess.eval(tcl("get_hw_devices", pattern))
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// SelectDevice makes a device current for subsequent hardware commands.
func (t *Tool) SelectDevice(device string) error {
	return t.run(tcl("current_hw_device", device))
}

// RefreshDeviceNoProbes refreshes a device's state without reloading probes.
func (t *Tool) RefreshDeviceNoProbes(device string) error {
	return t.run(tcl("refresh_hw_device", "-update_hw_probes", "false", device))
}

// ClearProbes removes any probe configuration assigned to a device.
func (t *Tool) ClearProbes(device string) error {
	if err := t.run(tcl("set_property", "PROBES.FILE", raw("{}"), device)); err != nil {
		return err
	}
	return t.run(tcl("set_property", "FULL_PROBES.FILE", raw("{}"), device))
}

// SetProgramFile assigns the bitstream artifact to program onto a device.
func (t *Tool) SetProgramFile(device, path string) error {
	return t.run(tcl("set_property", "PROGRAM.FILE", path, device))
}

// Program programs the assigned bitstream onto a device.
func (t *Tool) Program(device string) error {
	return t.run(tcl("program_hw_devices", device))
}

// RefreshDevice refreshes a device's status after programming.
func (t *Tool) RefreshDevice(device string) error {
	return t.run(tcl("refresh_hw_device", device))
}
