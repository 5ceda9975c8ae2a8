package toolchain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Options configures a live tool session.
type Options struct {
	// Command is the vendor tool executable. Defaults to "vivado".
	Command string

	// Dir is the working directory the session runs in; stage artifacts are
	// written relative to it.
	Dir string
}

// Sentinel markers bracketing each command's result on the tool's stdout.
// Everything outside a marker pair is tool chatter and is discarded.
const (
	markerOK  = "VIVO-OK"
	markerErr = "VIVO-ERR"
	markerEnd = "VIVO-END"
)

// session is one interactive Tcl-mode process of the vendor tool. Commands
// are issued one at a time; eval blocks until the tool reports a result.
type session struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   *bufio.Scanner
}

func openSession(ctx context.Context, opts Options) (*session, error) {
	command := opts.Command
	if command == "" {
		command = "vivado"
	}

	path, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("%s not found in PATH: %w", command, err)
	}

	cmd := exec.CommandContext(ctx, path, "-mode", "tcl", "-nojournal", "-nolog")
	cmd.Dir = opts.Dir
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open tool stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open tool stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", command, err)
	}

	return &session{cmd: cmd, stdin: stdin, out: bufio.NewScanner(stdout)}, nil
}

// eval sends one Tcl command and blocks until its bracketed result arrives.
// A caught Tcl error becomes a CommandError carrying the tool's message.
func (s *session) eval(code string) (string, error) {
	wrapped := fmt.Sprintf(
		`if {[catch {%s} vivoResult]} { puts "%s" } else { puts "%s" } ; puts $vivoResult ; puts "%s"`,
		code, markerErr, markerOK, markerEnd,
	)
	if _, err := fmt.Fprintln(s.stdin, wrapped); err != nil {
		return "", fmt.Errorf("failed to send command to tool: %w", err)
	}

	var started, ok bool
	var lines []string
	for s.out.Scan() {
		line := s.out.Text()
		switch {
		case line == markerOK:
			started, ok = true, true
		case line == markerErr:
			started, ok = true, false
		case line == markerEnd && started:
			body := strings.Join(lines, "\n")
			if !ok {
				return "", &CommandError{Op: firstWord(code), Output: body}
			}
			return body, nil
		case started:
			lines = append(lines, line)
		}
	}
	if err := s.out.Err(); err != nil {
		return "", fmt.Errorf("failed to read tool output: %w", err)
	}
	return "", fmt.Errorf("tool session ended before command %q completed", firstWord(code))
}

func (s *session) close() error {
	fmt.Fprintln(s.stdin, "exit")
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("tool session exited abnormally: %w", err)
	}
	return nil
}
