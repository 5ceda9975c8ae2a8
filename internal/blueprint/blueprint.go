// Package blueprint parses the flat manifest produced by the upstream
// package manager and dispatches each rule to a toolchain action by its
// fileset kind.
package blueprint

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Kind is the manifest's category tag for a rule. The vocabulary is fixed
// per deployment variant; kinds outside it are valid but produce no action.
type Kind string

// Kinds recognized by the non-project (batch) variant.
const (
	KindVHDL          Kind = "VHDL"
	KindVerilog       Kind = "VLOG"
	KindSystemVerilog Kind = "SYSV"
	KindConstraints   Kind = "XDCF"
)

// Kinds recognized by the project-mode variant.
const (
	KindRTLSource   Kind = "VHDL-RTL"
	KindSimSource   Kind = "VHDL-SIM"
	KindXilinxXDC   Kind = "XIL-XDC"
	KindPythonModel Kind = "PY-MODEL"
)

// Rule is one line of the manifest: a fileset kind, a logical library, and
// a file path, in manifest order.
type Rule struct {
	Kind    Kind
	Library string
	Path    string
}

const fieldCount = 3

// Parse reads manifest rules from r, one tab-separated rule per line.
// Lines that do not split into exactly three fields are skipped and
// reported back as warnings; rule order is preserved.
func Parse(r io.Reader) ([]Rule, []string, error) {
	var rules []Rule
	var warnings []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != fieldCount {
			warnings = append(warnings, fmt.Sprintf("blueprint line %d: expected %d tab-separated fields, found %d; skipping", lineNo, fieldCount, len(fields)))
			continue
		}
		rules = append(rules, Rule{
			Kind:    Kind(fields[0]),
			Library: fields[1],
			Path:    fields[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("failed to read blueprint: %w", err)
	}

	return rules, warnings, nil
}

// ParseFile reads manifest rules from the file at path.
func ParseFile(path string) ([]Rule, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open blueprint: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
