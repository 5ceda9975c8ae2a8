package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hyperspace-labs/vivo/internal/blueprint"
	"github.com/hyperspace-labs/vivo/internal/buildenv"
	"github.com/hyperspace-labs/vivo/internal/config"
	"github.com/hyperspace-labs/vivo/internal/printer"
	"github.com/hyperspace-labs/vivo/internal/project"
	"github.com/hyperspace-labs/vivo/internal/toolchain"
	"github.com/hyperspace-labs/vivo/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

var (
	projectPart     string
	projectClean    bool
	projectGenerics []string
)

// rootCmd represents the base command; the project build runs directly on it
var rootCmd = &cobra.Command{
	Use:   "xpro",
	Short: "Xpro - project-mode frontend for the Vivado toolchain",
	Long: `Xpro maintains a persistent Vivado project container for a package:
it opens or creates the project, attaches the blueprint's source, simulation
and constraint files to the right filesets, runs model-generation hooks, and
sets the top-level unit and generic overrides.

It is invoked as an external target by the upstream package manager, which
supplies the build context through environment variables.`,
	Version:      version,
	RunE:         runProject,
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

func init() {
	f := rootCmd.Flags()
	f.StringVar(&projectPart, "part", "", "Target FPGA part number")
	f.BoolVar(&projectClean, "clean", false, "Purge prior output, including the project container")
	f.StringArrayVarP(&projectGenerics, "generic", "g", nil, "Override a top-level generic (name=value, repeatable)")
}

func runProject(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	env, err := buildenv.Read()
	if err != nil {
		return printer.Error(
			err.Error(),
			"Xpro must be invoked by the upstream package manager, which supplies the build context.",
			nil,
		)
	}

	cfg, err := config.Load(filepath.Join(env.BuildDir, config.FileName))
	if err != nil {
		return err
	}

	generics, err := toolchain.ParseGenerics(projectGenerics)
	if err != nil {
		return err
	}
	part := projectPart
	if part == "" {
		part = cfg.DefaultPart
	}

	rules, warnings, err := blueprint.ParseFile(env.Blueprint)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		printer.Warning("%s\n", w)
	}

	ipName, err := env.RequireIPName()
	if err != nil {
		return err
	}
	outDir := workspace.Dir(env.BuildDir, ipName)
	if err := workspace.Ensure(outDir); err != nil {
		return err
	}
	if projectClean {
		if err := workspace.Clean(outDir); err != nil {
			return err
		}
	}

	tool, err := toolchain.Open(ctx, toolchain.Options{Command: cfg.Command, Dir: outDir})
	if err != nil {
		return err
	}
	defer tool.Close()
	tool.DisableUsageReporting()

	printer.Step("assembling project %s\n", project.ContainerName(ipName))
	driver := project.NewDriver(tool, &project.ScriptRunner{Command: cfg.Generator, Dir: outDir}, project.Config{
		Dir:      outDir,
		IPName:   ipName,
		Part:     part,
		Top:      env.Top,
		Generics: generics,
	})
	if err := driver.Run(ctx, rules); err != nil {
		return err
	}

	printer.Success("project %s is up to date\n", project.ContainerName(ipName))
	return nil
}
