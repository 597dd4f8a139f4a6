package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoStart is returned when building a graph without a start node.
	ErrNoStart = errors.New("graph must have a start node")

	// ErrDuplicateStart is returned when the start node is designated twice.
	ErrDuplicateStart = errors.New("start node already set")

	// ErrDuplicateNode is returned when registering a node id twice.
	ErrDuplicateNode = errors.New("node with this id already exists")

	// ErrMissingNode is returned when an edge or the start designation
	// references an unregistered node id.
	ErrMissingNode = errors.New("node not found")
)

// BuildError reports why graph construction failed. Missing lists every
// unregistered node id referenced by an edge or the start designation, in
// first-reference order.
type BuildError struct {
	Missing []string
	Err     error
}

func (e *BuildError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("graph build failed: %v: %s", e.Err, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("graph build failed: %v", e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }
