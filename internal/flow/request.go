package flow

import (
	"errors"

	"github.com/hyperspace-labs/vivo/internal/toolchain"
)

// Request is the immutable build request derived from the CLI argument
// vector. It is constructed once per invocation and never mutated.
type Request struct {
	// Part identifies the target device; empty means the tool's default or
	// previously configured part.
	Part string

	// Target is the highest flow stage to execute; all lower stages run
	// first in the same invocation.
	Target Stage

	// Clean requests purging prior output before any stage runs.
	Clean bool

	// Program requests device programming, independent of Target.
	Program bool

	// Generics are forwarded to synthesis verbatim, in order, duplicates
	// included.
	Generics []toolchain.Generic
}

// Fatal preconditions checked at the point a stage needs the value.
var (
	ErrMissingPart = errors.New("no target part selected: pass --part or set default_part in vivo.yml")
	ErrMissingTop  = errors.New("no top-level design unit: ORBIT_TOP is not set")
)
