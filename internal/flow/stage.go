// Package flow owns the monotonic stage state machine that drives the
// vendor toolchain from synthesis through bitstream generation.
package flow

// Stage is one step of the toolchain pipeline. Stages are totally ordered;
// requesting a stage implies every lower stage in the same run.
type Stage int

const (
	StageNone Stage = iota
	StageSynthesize
	StageImplement
	StageRoute
	StageBitstream
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageSynthesize:
		return "synthesize"
	case StageImplement:
		return "implement"
	case StageRoute:
		return "route"
	case StageBitstream:
		return "bitstream"
	}
	return "unknown"
}

// Includes reports whether reaching s requires executing stage k.
func (s Stage) Includes(k Stage) bool {
	return s >= k
}

// Target resolves the requested flow target from the stage flags: the
// highest stage any flag names, regardless of flag order.
func Target(synth, impl, route, bit bool) Stage {
	target := StageNone
	if synth {
		target = StageSynthesize
	}
	if impl && StageImplement > target {
		target = StageImplement
	}
	if route && StageRoute > target {
		target = StageRoute
	}
	if bit && StageBitstream > target {
		target = StageBitstream
	}
	return target
}
