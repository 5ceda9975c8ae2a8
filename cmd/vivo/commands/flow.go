package commands

import (
	"context"
	"path/filepath"

	"github.com/hyperspace-labs/vivo/internal/blueprint"
	"github.com/hyperspace-labs/vivo/internal/buildenv"
	"github.com/hyperspace-labs/vivo/internal/config"
	"github.com/hyperspace-labs/vivo/internal/flow"
	"github.com/hyperspace-labs/vivo/internal/printer"
	"github.com/hyperspace-labs/vivo/internal/program"
	"github.com/hyperspace-labs/vivo/internal/toolchain"
	"github.com/hyperspace-labs/vivo/internal/workspace"
	"github.com/spf13/cobra"
)

// ScriptName is the batch script written in --script-only mode.
const ScriptName = "orbit.tcl"

var (
	flowPart       string
	flowSynth      bool
	flowImpl       bool
	flowRoute      bool
	flowBit        bool
	flowProgram    bool
	flowClean      bool
	flowScriptOnly bool
	flowGenerics   []string
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flowPart, "part", "", "Target FPGA part number")
	f.BoolVar(&flowSynth, "synth", false, "Run through synthesis")
	f.BoolVar(&flowImpl, "impl", false, "Run through implementation")
	f.BoolVar(&flowRoute, "route", false, "Run through routing")
	f.BoolVar(&flowBit, "bit", false, "Run through bitstream generation")
	f.BoolVar(&flowProgram, "pgm", false, "Program the connected device")
	f.BoolVar(&flowClean, "clean", false, "Purge prior output before running")
	f.BoolVar(&flowScriptOnly, "script-only", false, "Write the batch script without running the tool")
	f.StringArrayVarP(&flowGenerics, "generic", "g", nil, "Override a top-level generic (name=value, repeatable)")
}

func runFlow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Phase 1: build context from the upstream package manager
	env, err := buildenv.Read()
	if err != nil {
		return printer.Error(
			err.Error(),
			"Vivo must be invoked by the upstream package manager, which supplies the build context.",
			nil,
		)
	}

	cfg, err := config.Load(filepath.Join(env.BuildDir, config.FileName))
	if err != nil {
		return err
	}

	// Phase 2: immutable build request from the argument vector
	generics, err := toolchain.ParseGenerics(flowGenerics)
	if err != nil {
		return err
	}
	part := flowPart
	if part == "" {
		part = cfg.DefaultPart
	}
	req := flow.Request{
		Part:     part,
		Target:   flow.Target(flowSynth, flowImpl, flowRoute, flowBit),
		Clean:    flowClean,
		Program:  flowProgram,
		Generics: generics,
	}

	// Phase 3: blueprint rules, in manifest order
	rules, warnings, err := blueprint.ParseFile(env.Blueprint)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		printer.Warning("%s\n", w)
	}

	// Phase 4: output directory
	ipName, err := env.RequireIPName()
	if err != nil {
		return err
	}
	outDir := workspace.Dir(env.BuildDir, ipName)
	if err := workspace.Ensure(outDir); err != nil {
		return err
	}
	if req.Clean {
		if err := workspace.Clean(outDir); err != nil {
			return err
		}
	}

	if req.Target == flow.StageNone && !req.Program {
		printer.Info("info: no toolflow performed\n")
		if prior, err := workspace.ReadReceipt(outDir); err == nil {
			printer.Info("info: previous run reached stage %q\n", prior.Stage)
		}
		printer.Info("hint: include one of --synth, --impl, --route, --bit, or --pgm\n")
		return nil
	}

	// Phase 5: toolchain adapter, live or recording
	var tool *toolchain.Tool
	if flowScriptOnly {
		tool = toolchain.NewScript()
	} else {
		tool, err = toolchain.Open(ctx, toolchain.Options{Command: cfg.Command, Dir: outDir})
		if err != nil {
			return err
		}
		defer tool.Close()
	}
	tool.DisableUsageReporting()

	registry := blueprint.NewRegistry()
	registry.Register(blueprint.KindVHDL, func(r blueprint.Rule) error {
		return tool.ReadVHDL(r.Library, r.Path)
	})
	registry.Register(blueprint.KindVerilog, func(r blueprint.Rule) error {
		return tool.ReadVerilog(r.Library, r.Path)
	})
	registry.Register(blueprint.KindSystemVerilog, func(r blueprint.Rule) error {
		return tool.ReadSystemVerilog(r.Library, r.Path)
	})
	registry.Register(blueprint.KindConstraints, func(r blueprint.Rule) error {
		return tool.ReadConstraints(r.Path)
	})

	programDir := outDir
	if flowScriptOnly {
		programDir = ""
	}
	programmer := program.New(tool, programDir)

	// Phase 6: run the flow
	if req.Target != flow.StageNone {
		printer.Step("running flow through stage %q\n", req.Target)
	}
	controller := flow.NewController(tool, programmer, env.Top, cfg.RoutingDirective)
	if err := controller.Run(ctx, req, rules, registry); err != nil {
		return err
	}

	if flowScriptOnly {
		scriptPath := filepath.Join(outDir, ScriptName)
		if err := tool.SaveScript(scriptPath); err != nil {
			return err
		}
		printSourceSummary(rules)
		printer.Success("batch script written to %s\n", scriptPath)
		return nil
	}

	// Phase 7: run receipt for the output directory
	if req.Target != flow.StageNone {
		receipt := workspace.NewReceipt(req.Target.String(), req.Part, env.Top)
		for _, artifact := range controller.Artifacts() {
			receipt.AddArtifact(artifact)
		}
		if err := receipt.Write(outDir); err != nil {
			return err
		}
		printer.Success("flow completed through stage %q\n", req.Target)
	}
	if req.Program {
		printer.Success("device programmed with %s\n", flow.BitstreamName(env.Top))
	}
	return nil
}

// printSourceSummary lists how many manifest rules each fileset kind
// contributed.
func printSourceSummary(rules []blueprint.Rule) {
	counts := make(map[blueprint.Kind]int)
	var order []blueprint.Kind
	for _, r := range rules {
		if counts[r.Kind] == 0 {
			order = append(order, r.Kind)
		}
		counts[r.Kind]++
	}
	for _, kind := range order {
		printer.Printf("  %-8s %d file(s)\n", kind, counts[kind])
	}
}
