// Package buildenv reads the build context handed down by the upstream
// package manager through environment variables.
package buildenv

import (
	"fmt"
	"os"
)

// Environment variable names set by the upstream package manager for every
// target invocation.
const (
	EnvBuildDir  = "ORBIT_BUILD_DIR"
	EnvBlueprint = "ORBIT_BLUEPRINT"
	EnvIPName    = "ORBIT_IP_NAME"
	EnvTop       = "ORBIT_TOP"
	EnvBench     = "ORBIT_BENCH"
)

// Env is the build context for one invocation. BuildDir and Blueprint are
// always present after Read; the remaining fields are validated at the point
// a flow stage actually needs them.
type Env struct {
	// BuildDir is the root directory all per-target output lives under.
	BuildDir string

	// Blueprint is the path to the manifest file listing source rules.
	Blueprint string

	// IPName is the name of the package being built; it names the output
	// directory and, in project mode, the project container.
	IPName string

	// Top is the top-level synthesis unit.
	Top string

	// Bench is the top-level simulation unit, when one exists.
	Bench string
}

// Read collects the build context from the process environment. A missing
// build directory or blueprint file is fatal; everything else is optional
// until a stage requires it. Empty values count as unset.
func Read() (*Env, error) {
	env := &Env{
		BuildDir:  os.Getenv(EnvBuildDir),
		Blueprint: os.Getenv(EnvBlueprint),
		IPName:    os.Getenv(EnvIPName),
		Top:       os.Getenv(EnvTop),
		Bench:     os.Getenv(EnvBench),
	}

	if env.BuildDir == "" {
		return nil, fmt.Errorf("environment variable %s is not set", EnvBuildDir)
	}
	if info, err := os.Stat(env.BuildDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("build directory %q does not exist", env.BuildDir)
	}

	if env.Blueprint == "" {
		return nil, fmt.Errorf("environment variable %s is not set", EnvBlueprint)
	}
	if _, err := os.Stat(env.Blueprint); err != nil {
		return nil, fmt.Errorf("blueprint file %q does not exist", env.Blueprint)
	}

	return env, nil
}

// RequireIPName returns the package name or an error when the upstream tool
// did not provide one.
func (e *Env) RequireIPName() (string, error) {
	if e.IPName == "" {
		return "", fmt.Errorf("environment variable %s is not set", EnvIPName)
	}
	return e.IPName, nil
}
