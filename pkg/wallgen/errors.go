package wallgen

import "fmt"

// Kind enumerates the error taxonomy GenerateWalls can fail with.
type Kind int

const (
	// InvalidInput means the call could not proceed on its input.
	// GenerateWalls reports it for an outer boundary with fewer than 3
	// points and for a canceled context; it does not check polygons for
	// self-intersection or winding.
	InvalidInput Kind = iota
	// DegenerateVoronoi means the Voronoi construction could not produce a
	// usable diagram for the input polygon (e.g. all sites collinear).
	DegenerateVoronoi
	// GraphInconsistency means an internal invariant of the trapezoidation
	// graph was violated — a bug, not a bad input. These are raised via
	// panic internally and recovered at the GenerateWalls boundary,
	// mirroring pkg/api/server.go's middleware panic recovery.
	GraphInconsistency
	// StrategyOutOfRange means the configured BeadingStrategy produced a
	// bead count or width outside the bounds GenerateWalls was configured
	// to accept.
	StrategyOutOfRange
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case DegenerateVoronoi:
		return "DegenerateVoronoi"
	case GraphInconsistency:
		return "GraphInconsistency"
	case StrategyOutOfRange:
		return "StrategyOutOfRange"
	default:
		return "Unknown"
	}
}

// WallError is the error type every GenerateWalls failure is wrapped in.
type WallError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *WallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wallgen: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("wallgen: %s: %s", e.Kind, e.Msg)
}

func (e *WallError) Unwrap() error { return e.Err }

func newError(kind Kind, msg string) *WallError {
	return &WallError{Kind: kind, Msg: msg}
}

// graphPanic carries a GraphInconsistency through a panic so GenerateWalls
// can recover it at its boundary rather than threading it through every
// return value. It is unexported, so only raiseGraphInconsistency in this
// package can raise it; the skeleton, transition, propagate and junction
// packages run no invariant checks that raise it.
type graphPanic struct{ msg string }

func raiseGraphInconsistency(msg string) {
	panic(graphPanic{msg: msg})
}
