package toolchain

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Tool is the concrete adapter to the vendor toolchain. It runs in one of
// two modes: a live interactive session with the tool, or a recording mode
// that accumulates the equivalent batch script without executing anything.
type Tool struct {
	sess  *session
	lines []string
}

// Open starts a live session with the vendor tool.
func Open(ctx context.Context, opts Options) (*Tool, error) {
	sess, err := openSession(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tool{sess: sess}, nil
}

// NewScript returns a recording adapter that emits a batch script instead
// of driving a live session.
func NewScript() *Tool {
	return &Tool{}
}

// ScriptOnly reports whether this adapter records instead of executing.
func (t *Tool) ScriptOnly() bool {
	return t.sess == nil
}

// Close ends the live session, if any.
func (t *Tool) Close() error {
	if t.sess == nil {
		return nil
	}
	return t.sess.close()
}

// Script returns the recorded batch script.
func (t *Tool) Script() string {
	return strings.Join(t.lines, "\n") + "\n"
}

// SaveScript writes the recorded batch script to path.
func (t *Tool) SaveScript(path string) error {
	if err := os.WriteFile(path, []byte(t.Script()), 0o644); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	return nil
}

// run executes or records one command that produces no value.
func (t *Tool) run(code string) error {
	if t.sess == nil {
		t.lines = append(t.lines, code)
		return nil
	}
	_, err := t.sess.eval(code)
	return err
}
