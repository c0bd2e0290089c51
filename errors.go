package gfase

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conditions spec'd in the error taxonomy.
// Callers match with errors.Is, following the convention used throughout
// katalvlaran/lvlath (matrix/errors.go, builder/errors.go).
var (
	// ErrUnknownNode is returned when an operation references a node id
	// not present in the store.
	ErrUnknownNode = errors.New("gfase: unknown node")

	// ErrInvalidPartition is returned when a partition value is outside
	// {-1,0,1}, or 0 is requested for a node that belongs to an alt
	// component.
	ErrInvalidPartition = errors.New("gfase: invalid partition")

	// ErrInvalidArgument covers malformed call arguments, e.g. AddAlt(a,a).
	ErrInvalidArgument = errors.New("gfase: invalid argument")

	// ErrInvariantViolation is returned by ValidateAlts when a direct alt
	// pair is found sharing the same partition label.
	ErrInvariantViolation = errors.New("gfase: invariant violation")

	// ErrMalformedInput is returned for CSV rows with the wrong shape or
	// a non-integer weight field.
	ErrMalformedInput = errors.New("gfase: malformed input")

	// ErrIoError wraps an underlying filesystem failure with the path
	// that caused it.
	ErrIoError = errors.New("gfase: io error")

	// ErrNoAltsFound is returned by the naming-convention alt discovery
	// helper when it produces zero alts.
	ErrNoAltsFound = errors.New("gfase: no alts found")
)

// NonBipartiteError is returned by AddAlt when admitting a new alt
// relationship would force two nodes already on the same side of their
// (possibly distinct) alt components onto opposite sides. It carries
// both components and both conflict sets so a caller can diagnose the
// clash, following the structured-error pattern of lvlath/flow.EdgeError.
type NonBipartiteError struct {
	A, B         int32
	ComponentA   AltComponent
	ComponentB   AltComponent
	ConflictsOn0 []int32
	ConflictsOn1 []int32
}

func (e *NonBipartiteError) Error() string {
	return fmt.Sprintf(
		"gfase: adding alt (%d,%d) would produce a non-bipartite component: %d conflict(s) on side 0, %d conflict(s) on side 1",
		e.A, e.B, len(e.ConflictsOn0), len(e.ConflictsOn1),
	)
}

// pathError wraps ErrIoError with the offending path, per spec's
// requirement that IoError surface with the path that caused it.
func pathError(path string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrIoError, path, cause)
}

// malformedError wraps ErrMalformedInput with the offending file path.
func malformedError(path string, detail string) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedInput, path, detail)
}

// unknownNodeError wraps ErrUnknownNode with the offending id.
func unknownNodeError(id int32) error {
	return fmt.Errorf("%w: %d", ErrUnknownNode, id)
}

// invalidPartitionError wraps ErrInvalidPartition with the offending value.
func invalidPartitionError(p int8) error {
	return fmt.Errorf("%w: %d", ErrInvalidPartition, p)
}

// invariantViolationError wraps ErrInvariantViolation with the offending
// alt pair.
func invariantViolationError(a, b int32) error {
	return fmt.Errorf("%w: alt pair (%d,%d) shares a partition side", ErrInvariantViolation, a, b)
}
