package flow

import (
	"context"

	"github.com/hyperspace-labs/vivo/internal/blueprint"
	"github.com/hyperspace-labs/vivo/internal/printer"
	"github.com/hyperspace-labs/vivo/internal/toolchain"
)

// Toolchain is the slice of the vendor tool's command surface the flow
// controller drives. Every call is synchronous; a returned error aborts the
// remaining flow.
type Toolchain interface {
	RunSynthesis(top, part string, generics []toolchain.Generic) error
	RunOptimization() error
	RunPlacement() error
	WorstSetupSlack() (float64, error)
	RunPhysicalOptimization() error
	RunRouting(directive string) error
	WriteCheckpoint(path string) error
	ReportTimingSummary(path string) error
	ReportUtilization(path string) error
	ReportClockUtilization(path string) error
	ReportRouteStatus(path string) error
	ReportPower(path string) error
	ReportDRC(path string) error
	WriteNetlist(path string) error
	WriteBitstream(path string) error
}

// Programmer is the terminal device-programming action, invoked either with
// a freshly generated bitstream or standalone against an existing one.
type Programmer interface {
	Program(ctx context.Context, bitstream string) error
}

// Controller executes the requested flow stages in order against the
// toolchain. It holds no state across invocations.
type Controller struct {
	tool       Toolchain
	programmer Programmer
	top        string
	routing    string
	artifacts  []string
}

// NewController wires a controller to a toolchain and a device programmer.
// routingDirective selects the routing strategy, normally "Explore".
func NewController(tool Toolchain, programmer Programmer, top, routingDirective string) *Controller {
	return &Controller{
		tool:       tool,
		programmer: programmer,
		top:        top,
		routing:    routingDirective,
	}
}

// Artifacts lists the output files written during the last Run, in order.
func (c *Controller) Artifacts() []string {
	return c.artifacts
}

// Run ingests the blueprint rules and executes every stage up to and
// including the request's target, in increasing order. A program-only
// request (no stage, program set) goes straight to the programmer without
// touching the toolchain's design state.
func (c *Controller) Run(ctx context.Context, req Request, rules []blueprint.Rule, registry *blueprint.Registry) error {
	if req.Target == StageNone {
		if req.Program {
			if c.top == "" {
				return ErrMissingTop
			}
			return c.programmer.Program(ctx, BitstreamName(c.top))
		}
		return nil
	}

	if err := registry.Dispatch(rules); err != nil {
		return err
	}

	stages := []struct {
		stage Stage
		run   func(Request) error
	}{
		{StageSynthesize, c.synthesize},
		{StageImplement, c.implement},
		{StageRoute, c.route},
		{StageBitstream, c.bitstream},
	}
	for _, s := range stages {
		if !req.Target.Includes(s.stage) {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.run(req); err != nil {
			return err
		}
	}

	if req.Program {
		return c.programmer.Program(ctx, BitstreamName(c.top))
	}
	return nil
}

func (c *Controller) synthesize(req Request) error {
	if req.Part == "" {
		return ErrMissingPart
	}
	if c.top == "" {
		return ErrMissingTop
	}

	if err := c.tool.RunSynthesis(c.top, req.Part, req.Generics); err != nil {
		return err
	}
	if err := c.checkpoint(SynthCheckpoint); err != nil {
		return err
	}
	if err := c.report(SynthTimingReport, c.tool.ReportTimingSummary); err != nil {
		return err
	}
	return c.report(SynthUtilReport, c.tool.ReportUtilization)
}

func (c *Controller) implement(req Request) error {
	if err := c.tool.RunOptimization(); err != nil {
		return err
	}
	if err := c.tool.RunPlacement(); err != nil {
		return err
	}

	// The one data-dependent branch in the flow: a setup timing violation
	// after placement triggers a single physical optimization pass before
	// the stage's reports are written.
	slack, err := c.tool.WorstSetupSlack()
	if err != nil {
		return err
	}
	if slack < 0 {
		printer.Info("info: found setup timing violations: running physical optimization ...\n")
		if err := c.tool.RunPhysicalOptimization(); err != nil {
			return err
		}
	}

	if err := c.report(ClockUtilReport, c.tool.ReportClockUtilization); err != nil {
		return err
	}
	if err := c.checkpoint(PlaceCheckpoint); err != nil {
		return err
	}
	if err := c.report(PlaceUtilReport, c.tool.ReportUtilization); err != nil {
		return err
	}
	return c.report(PlaceTimingReport, c.tool.ReportTimingSummary)
}

func (c *Controller) route(req Request) error {
	if err := c.tool.RunRouting(c.routing); err != nil {
		return err
	}
	if err := c.checkpoint(RouteCheckpoint); err != nil {
		return err
	}
	if err := c.report(RouteStatusReport, c.tool.ReportRouteStatus); err != nil {
		return err
	}
	if err := c.report(RouteTimingReport, c.tool.ReportTimingSummary); err != nil {
		return err
	}
	if err := c.report(RoutePowerReport, c.tool.ReportPower); err != nil {
		return err
	}
	return c.report(RouteDRCReport, c.tool.ReportDRC)
}

func (c *Controller) bitstream(req Request) error {
	netlist := NetlistName(c.top)
	if err := c.tool.WriteNetlist(netlist); err != nil {
		return err
	}
	c.artifacts = append(c.artifacts, netlist)

	bitstream := BitstreamName(c.top)
	if err := c.tool.WriteBitstream(bitstream); err != nil {
		return err
	}
	c.artifacts = append(c.artifacts, bitstream)
	return nil
}

func (c *Controller) checkpoint(name string) error {
	if err := c.tool.WriteCheckpoint(name); err != nil {
		return err
	}
	c.artifacts = append(c.artifacts, name)
	return nil
}

func (c *Controller) report(name string, write func(string) error) error {
	if err := write(name); err != nil {
		return err
	}
	c.artifacts = append(c.artifacts, name)
	return nil
}
