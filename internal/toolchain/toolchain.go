// Package toolchain binds the orchestrator to the vendor tool's Tcl command
// surface. Tool is the concrete adapter; it either holds a live interactive
// session with the tool or records a batch script for later execution.
package toolchain

import (
	"fmt"
	"strings"
)

// Generic is a top-level design parameter override forwarded to synthesis
// as a name=value pair.
type Generic struct {
	Name  string
	Value string
}

// ParseGeneric splits a name=value argument into a Generic. The value may
// itself contain '=' characters; only the first one delimits.
func ParseGeneric(s string) (Generic, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return Generic{}, fmt.Errorf("generic %q is missing <value>", s)
	}
	return Generic{Name: name, Value: value}, nil
}

func (g Generic) String() string {
	return g.Name + "=" + g.Value
}

// ParseGenerics converts a list of name=value arguments in order, keeping
// duplicates; last-wins resolution belongs to the tool, not to us.
func ParseGenerics(args []string) ([]Generic, error) {
	generics := make([]Generic, 0, len(args))
	for _, arg := range args {
		g, err := ParseGeneric(arg)
		if err != nil {
			return nil, err
		}
		generics = append(generics, g)
	}
	return generics, nil
}

// CommandError is a failure surfaced by the vendor tool for one command.
// It is propagated unmodified; the flow performs no retries.
type CommandError struct {
	Op     string
	Output string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("toolchain command %q failed: %s", e.Op, strings.TrimSpace(e.Output))
}
