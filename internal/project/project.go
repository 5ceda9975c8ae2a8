// Package project drives the project-mode variant: a persistent project
// container that blueprint files are attached to across runs.
package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperspace-labs/vivo/internal/blueprint"
	"github.com/hyperspace-labs/vivo/internal/printer"
	"github.com/hyperspace-labs/vivo/internal/toolchain"
)

// Project filesets files are attached to, by rule kind.
const (
	SourcesFileset     = "sources_1"
	SimFileset         = "sim_1"
	ConstraintsFileset = "constrs_1"
)

// ContainerName is the project container file, named after the package.
func ContainerName(ipName string) string {
	return ipName + ".xpr"
}

// Tool is the slice of the toolchain's project surface the driver uses.
type Tool interface {
	OpenProject(path string) error
	CreateProject(path, part string) error
	SetProjectProperty(name, value string) error
	AddSourceFile(fileset, library, path string) error
	AddConstraintsFile(fileset, path string) error
	ImportFiles(fileset string, paths []string) error
	SetTop(fileset, top string) error
	UpdateCompileOrder(fileset string) error
	AppendGenerics(generics []toolchain.Generic) error
}

// Driver assembles the project container for one invocation: open or
// create, attach blueprint files, run the model generator, set top and
// generics. It holds no state across invocations.
type Driver struct {
	tool      Tool
	generator Generator
	dir       string
	ipName    string
	part      string
	top       string
	generics  []toolchain.Generic
}

// Config carries the per-invocation inputs for a project driver.
type Config struct {
	Dir      string
	IPName   string
	Part     string
	Top      string
	Generics []toolchain.Generic
}

// NewDriver wires a driver to a project tool and a model generator.
func NewDriver(tool Tool, generator Generator, cfg Config) *Driver {
	return &Driver{
		tool:      tool,
		generator: generator,
		dir:       cfg.Dir,
		ipName:    cfg.IPName,
		part:      cfg.Part,
		top:       cfg.Top,
		generics:  cfg.Generics,
	}
}

// Run opens or creates the project container and applies the blueprint
// rules to it in manifest order.
func (d *Driver) Run(ctx context.Context, rules []blueprint.Rule) error {
	container := ContainerName(d.ipName)
	if _, err := os.Stat(filepath.Join(d.dir, container)); err == nil {
		if err := d.tool.OpenProject(container); err != nil {
			return err
		}
	} else {
		if d.part == "" {
			printer.Warning("using the tool's default part because --part was not provided\n")
		}
		if err := d.tool.CreateProject(container, d.part); err != nil {
			return err
		}
	}

	if err := d.tool.SetProjectProperty("simulator_language", "mixed"); err != nil {
		return err
	}
	if d.part != "" {
		if err := d.tool.SetProjectProperty("part", d.part); err != nil {
			return err
		}
	}

	registry := blueprint.NewRegistry()
	registry.Register(blueprint.KindRTLSource, func(r blueprint.Rule) error {
		return d.tool.AddSourceFile(SourcesFileset, r.Library, r.Path)
	})
	registry.Register(blueprint.KindSimSource, func(r blueprint.Rule) error {
		return d.tool.AddSourceFile(SimFileset, r.Library, r.Path)
	})
	registry.Register(blueprint.KindXilinxXDC, func(r blueprint.Rule) error {
		return d.tool.AddConstraintsFile(ConstraintsFileset, r.Path)
	})
	registry.Register(blueprint.KindPythonModel, func(r blueprint.Rule) error {
		return d.generateModel(ctx, r.Path)
	})
	if err := registry.Dispatch(rules); err != nil {
		return err
	}

	// The project vocabulary is VHDL-only.
	if err := d.tool.SetProjectProperty("target_language", "VHDL"); err != nil {
		return err
	}
	if d.top != "" {
		if err := d.tool.SetTop(SourcesFileset, d.top); err != nil {
			return err
		}
	}
	if err := d.tool.UpdateCompileOrder(SourcesFileset); err != nil {
		return err
	}
	return d.tool.AppendGenerics(d.generics)
}

// generateModel runs the external data-generation script, then imports its
// .dat outputs into the simulation fileset.
func (d *Driver) generateModel(ctx context.Context, script string) error {
	printer.Info("info: running model generator %s ...\n", script)
	if err := d.generator.Generate(ctx, script, d.generics); err != nil {
		return err
	}

	matches, err := filepath.Glob(filepath.Join(d.dir, "*.dat"))
	if err != nil {
		return fmt.Errorf("failed to glob generated data files: %w", err)
	}
	if len(matches) == 0 {
		return nil
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Base(m))
	}
	return d.tool.ImportFiles(SimFileset, paths)
}
