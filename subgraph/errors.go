package subgraph

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrAllocation is returned when node storage or a feature buffer cannot be obtained.
	ErrAllocation = errors.New("subgraph: allocation failed")

	// ErrTruncated is returned when a stream ends before the declared data.
	ErrTruncated = errors.New("subgraph: truncated stream")

	// ErrInvalidHeader is returned when a stream header declares impossible counts.
	ErrInvalidHeader = errors.New("subgraph: invalid header")

	// ErrMalformed is returned when a text dataset holds a token that is not a number.
	ErrMalformed = errors.New("subgraph: malformed value")

	// ErrInvariant is returned when a subgraph violates a structural invariant.
	ErrInvariant = errors.New("subgraph: invariant violation")

	// ErrIndexOutOfRange is returned when a node index is outside [0, Len()).
	ErrIndexOutOfRange = errors.New("subgraph: node index out of range")

	// ErrNilSubgraph is returned when a nil subgraph is passed to an encoder.
	ErrNilSubgraph = errors.New("subgraph: nil subgraph")
)

// Section identifies the part of a dataset stream a FormatError refers to.
type Section uint8

const (
	// SectionHeader is the leading node/label/feature count block.
	SectionHeader Section = iota
	// SectionBody is the per-node record block.
	SectionBody
)

func (s Section) String() string {
	switch s {
	case SectionHeader:
		return "header"
	case SectionBody:
		return "body"
	default:
		return fmt.Sprintf("section(%d)", uint8(s))
	}
}

// FormatError reports a dataset stream that could not be decoded.
//
// Truncated streams satisfy errors.Is(err, ErrTruncated) in both sections;
// Section tells whether the header or a node record was cut short.
type FormatError struct {
	Section Section
	Node    int // node index for SectionBody, -1 otherwise
	Field   string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Section == SectionHeader {
		return fmt.Sprintf("subgraph: %s %s: %v", e.Section, e.Field, e.Err)
	}
	return fmt.Sprintf("subgraph: %s node %d %s: %v", e.Section, e.Node, e.Field, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IsTruncated reports whether the error was caused by a short stream.
func (e *FormatError) IsTruncated() bool { return errors.Is(e.Err, ErrTruncated) }

func headerError(field string, err error) error {
	return &FormatError{Section: SectionHeader, Node: -1, Field: field, Err: classifyReadError(err)}
}

func bodyError(node int, field string, err error) error {
	return &FormatError{Section: SectionBody, Node: node, Field: field, Err: classifyReadError(err)}
}

func classifyReadError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	return err
}

// InvariantError reports a subgraph whose contents contradict its declared shape.
type InvariantError struct {
	Node     int // -1 for collection-level fields
	Field    string
	Expected int
	Actual   int
}

func (e *InvariantError) Error() string {
	if e.Node < 0 {
		return fmt.Sprintf("subgraph: invariant violation: %s: expected %d, got %d", e.Field, e.Expected, e.Actual)
	}
	return fmt.Sprintf("subgraph: invariant violation: node %d %s: expected %d, got %d", e.Node, e.Field, e.Expected, e.Actual)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }
