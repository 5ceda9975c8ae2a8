package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd represents the base command; the batch flow runs directly on it
var rootCmd = &cobra.Command{
	Use:   "vivo",
	Short: "Vivo - batch flow orchestrator for the Vivado toolchain",
	Long: `Vivo translates a blueprint manifest and a set of flow flags into an
ordered sequence of Vivado toolchain invocations: synthesis, implementation,
routing, bitstream generation, and device programming.

It is invoked as an external target by the upstream package manager, which
supplies the build context through environment variables.`,
	Version:      version,
	RunE:         runFlow,
	SilenceUsage: true,
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
