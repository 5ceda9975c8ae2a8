package flow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hyperspace-labs/vivo/internal/blueprint"
	"github.com/hyperspace-labs/vivo/internal/flow"
	"github.com/hyperspace-labs/vivo/internal/program"
	"github.com/hyperspace-labs/vivo/internal/testutil"
	"github.com/hyperspace-labs/vivo/internal/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(fake *testutil.FakeTool) *flow.Controller {
	return flow.NewController(fake, program.New(fake, ""), "top_a", "Explore")
}

func newRegistry(fake *testutil.FakeTool) *blueprint.Registry {
	registry := blueprint.NewRegistry()
	registry.Register(blueprint.KindVHDL, func(r blueprint.Rule) error {
		return fake.ReadVHDL(r.Library, r.Path)
	})
	registry.Register(blueprint.KindVerilog, func(r blueprint.Rule) error {
		return fake.ReadVerilog(r.Library, r.Path)
	})
	registry.Register(blueprint.KindSystemVerilog, func(r blueprint.Rule) error {
		return fake.ReadSystemVerilog(r.Library, r.Path)
	})
	registry.Register(blueprint.KindConstraints, func(r blueprint.Rule) error {
		return fake.ReadConstraints(r.Path)
	})
	return registry
}

func TestControllerRunsStagesInOrder(t *testing.T) {
	fake := testutil.NewFakeTool()
	fake.Slack = 0.12
	rules := []blueprint.Rule{
		{Kind: blueprint.KindVHDL, Library: "lib_a", Path: "foo.vhd"},
		{Kind: blueprint.KindConstraints, Library: "lib_a", Path: "foo.xdc"},
	}

	req := flow.Request{Part: "xc7a35t", Target: flow.StageBitstream}
	err := newController(fake).Run(context.Background(), req, rules, newRegistry(fake))
	require.NoError(t, err)

	// sources are ingested before any stage runs
	assert.Less(t, fake.Index("ReadVHDL"), fake.Index("RunSynthesis"))
	assert.Less(t, fake.Index("ReadConstraints"), fake.Index("RunSynthesis"))

	// stages execute in increasing order
	assert.Less(t, fake.Index("RunSynthesis"), fake.Index("RunOptimization"))
	assert.Less(t, fake.Index("RunOptimization"), fake.Index("RunPlacement"))
	assert.Less(t, fake.Index("RunPlacement"), fake.Index("RunRouting"))
	assert.Less(t, fake.Index("RunRouting"), fake.Index("WriteNetlist"))
	assert.Less(t, fake.Index("WriteNetlist"), fake.Index("WriteBitstream"))

	// no programming was requested
	assert.Equal(t, 0, fake.Count("Program"))
}

func TestControllerStopsAtRequestedStage(t *testing.T) {
	testCases := []struct {
		name       string
		target     flow.Stage
		wantOps    []string
		absentOps  []string
	}{
		{
			name:      "synthesize only",
			target:    flow.StageSynthesize,
			wantOps:   []string{"RunSynthesis"},
			absentOps: []string{"RunOptimization", "RunPlacement", "RunRouting", "WriteBitstream"},
		},
		{
			name:      "implement includes synthesis",
			target:    flow.StageImplement,
			wantOps:   []string{"RunSynthesis", "RunOptimization", "RunPlacement"},
			absentOps: []string{"RunRouting", "WriteBitstream"},
		},
		{
			name:      "route includes implement",
			target:    flow.StageRoute,
			wantOps:   []string{"RunSynthesis", "RunPlacement", "RunRouting"},
			absentOps: []string{"WriteNetlist", "WriteBitstream"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := testutil.NewFakeTool()
			fake.Slack = 1.0
			req := flow.Request{Part: "xc7a35t", Target: tc.target}
			err := newController(fake).Run(context.Background(), req, nil, newRegistry(fake))
			require.NoError(t, err)

			for _, op := range tc.wantOps {
				assert.Equal(t, 1, fake.Count(op), "expected %s to run once", op)
			}
			for _, op := range tc.absentOps {
				assert.Equal(t, 0, fake.Count(op), "expected %s not to run", op)
			}
		})
	}
}

func TestControllerProgramOnlySkipsDesignState(t *testing.T) {
	fake := testutil.NewFakeTool()
	fake.HardwareDevices = []string{"xc7a35t_0"}
	rules := []blueprint.Rule{
		{Kind: blueprint.KindVHDL, Library: "lib_a", Path: "foo.vhd"},
	}

	req := flow.Request{Target: flow.StageNone, Program: true}
	err := newController(fake).Run(context.Background(), req, rules, newRegistry(fake))
	require.NoError(t, err)

	// no design-state interaction at all
	assert.Equal(t, 0, fake.Count("ReadVHDL"))
	assert.Equal(t, 0, fake.Count("RunSynthesis"))
	assert.Equal(t, 0, fake.Count("WriteBitstream"))

	// the existing artifact is programmed
	assert.Equal(t, 1, fake.Count("Program"))
	assert.Contains(t, fake.Calls, "SetProgramFile xc7a35t_0 top_a.bit")
}

func TestControllerProgramsAfterBitstream(t *testing.T) {
	fake := testutil.NewFakeTool()
	fake.Slack = 0.5
	fake.HardwareDevices = []string{"xc7a35t_0"}

	req := flow.Request{Part: "xc7a35t", Target: flow.StageBitstream, Program: true}
	err := newController(fake).Run(context.Background(), req, nil, newRegistry(fake))
	require.NoError(t, err)

	require.Equal(t, 1, fake.Count("Program"))
	assert.Less(t, fake.Index("WriteBitstream"), fake.Index("OpenHardwareManager"))
	assert.Less(t, fake.Index("OpenHardwareManager"), fake.Index("Program"))
}

func TestControllerSlackBranch(t *testing.T) {
	testCases := []struct {
		name         string
		slack        float64
		wantPhysOpts int
	}{
		{name: "negative slack runs one pass", slack: -0.042, wantPhysOpts: 1},
		{name: "zero slack skips the pass", slack: 0, wantPhysOpts: 0},
		{name: "positive slack skips the pass", slack: 1.7, wantPhysOpts: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := testutil.NewFakeTool()
			fake.Slack = tc.slack
			req := flow.Request{Part: "xc7a35t", Target: flow.StageImplement}
			err := newController(fake).Run(context.Background(), req, nil, newRegistry(fake))
			require.NoError(t, err)

			assert.Equal(t, tc.wantPhysOpts, fake.Count("RunPhysicalOptimization"))
			if tc.wantPhysOpts > 0 {
				// the pass runs before the stage's reports are written
				assert.Less(t, fake.Index("RunPhysicalOptimization"), fake.Index("ReportClockUtilization"))
			}
		})
	}
}

func TestControllerGenericsForwardedVerbatim(t *testing.T) {
	fake := testutil.NewFakeTool()
	req := flow.Request{
		Part:   "xc7a35t",
		Target: flow.StageSynthesize,
		Generics: []toolchain.Generic{
			{Name: "WIDTH", Value: "8"},
			{Name: "DEPTH", Value: "16"},
		},
	}
	err := newController(fake).Run(context.Background(), req, nil, newRegistry(fake))
	require.NoError(t, err)

	assert.Contains(t, fake.Calls, "RunSynthesis top_a xc7a35t -generic WIDTH=8 -generic DEPTH=16")
}

func TestControllerMissingPreconditions(t *testing.T) {
	t.Run("missing part", func(t *testing.T) {
		fake := testutil.NewFakeTool()
		req := flow.Request{Target: flow.StageSynthesize}
		err := newController(fake).Run(context.Background(), req, nil, newRegistry(fake))
		assert.ErrorIs(t, err, flow.ErrMissingPart)
		assert.Equal(t, 0, fake.Count("RunSynthesis"))
	})

	t.Run("missing top", func(t *testing.T) {
		fake := testutil.NewFakeTool()
		ctrl := flow.NewController(fake, program.New(fake, ""), "", "Explore")
		req := flow.Request{Part: "xc7a35t", Target: flow.StageSynthesize}
		err := ctrl.Run(context.Background(), req, nil, newRegistry(fake))
		assert.ErrorIs(t, err, flow.ErrMissingTop)
		assert.Equal(t, 0, fake.Count("RunSynthesis"))
	})
}

func TestControllerPropagatesToolErrors(t *testing.T) {
	fake := testutil.NewFakeTool()
	boom := errors.New("placer failed")
	fake.FailOn["RunPlacement"] = boom

	req := flow.Request{Part: "xc7a35t", Target: flow.StageBitstream}
	err := newController(fake).Run(context.Background(), req, nil, newRegistry(fake))
	assert.ErrorIs(t, err, boom)

	// the remaining flow is aborted
	assert.Equal(t, 0, fake.Count("RunRouting"))
	assert.Equal(t, 0, fake.Count("WriteBitstream"))
}

func TestControllerUnknownKindIsNoOp(t *testing.T) {
	fake := testutil.NewFakeTool()
	rules := []blueprint.Rule{
		{Kind: blueprint.KindVHDL, Library: "lib_a", Path: "foo.vhd"},
		{Kind: blueprint.KindConstraints, Library: "lib_a", Path: "foo.xdc"},
		{Kind: blueprint.Kind("FOO"), Library: "lib_a", Path: "bar.txt"},
	}

	req := flow.Request{Part: "xc7a35t", Target: flow.StageSynthesize}
	err := newController(fake).Run(context.Background(), req, rules, newRegistry(fake))
	require.NoError(t, err)

	reads := fake.Count("ReadVHDL") + fake.Count("ReadVerilog") +
		fake.Count("ReadSystemVerilog") + fake.Count("ReadConstraints")
	assert.Equal(t, 2, reads)
}

func TestControllerRecordsArtifacts(t *testing.T) {
	fake := testutil.NewFakeTool()
	req := flow.Request{Part: "xc7a35t", Target: flow.StageBitstream}
	ctrl := newController(fake)
	err := ctrl.Run(context.Background(), req, nil, newRegistry(fake))
	require.NoError(t, err)

	artifacts := ctrl.Artifacts()
	assert.Contains(t, artifacts, flow.SynthCheckpoint)
	assert.Contains(t, artifacts, flow.RouteDRCReport)
	assert.Contains(t, artifacts, "top_a.bit")
}
