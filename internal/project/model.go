package project

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/hyperspace-labs/vivo/internal/toolchain"
)

// Generator runs an external model-generation script as a pre-build step.
type Generator interface {
	Generate(ctx context.Context, script string, generics []toolchain.Generic) error
}

// ScriptRunner runs generator scripts through an interpreter, forwarding
// each generic as a -g=name=value argument.
type ScriptRunner struct {
	// Command is the interpreter, e.g. "python3".
	Command string

	// Dir is the working directory the script runs in, so its data files
	// land next to the other flow artifacts.
	Dir string
}

// Generate runs the script and waits for it to finish.
func (s *ScriptRunner) Generate(ctx context.Context, script string, generics []toolchain.Generic) error {
	args := []string{script}
	for _, g := range generics {
		args = append(args, "-g="+g.String())
	}

	cmd := exec.CommandContext(ctx, s.Command, args...)
	cmd.Dir = s.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("model generator %q failed: %w", script, err)
	}
	return nil
}
