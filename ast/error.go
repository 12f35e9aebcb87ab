package ast

import "fmt"

// OverflowError reports that a Table has exhausted its configured id space.
// It mirrors nfa.BuildError's shape: a message plus the id/count that
// tripped the limit.
type OverflowError struct {
	// Limit is the configured ceiling that was exceeded.
	Limit uint32
	// Count is the number of nodes the table held when the limit was hit.
	Count uint32
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("ast: node table overflow: %d nodes exceeds limit %d", e.Count, e.Limit)
}
