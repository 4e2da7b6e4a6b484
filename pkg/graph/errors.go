package graph

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrEdgeNotFound reports that an expected labelled edge is missing.
var ErrEdgeNotFound = errors.New("edge-not-found")

// ErrParentError reports that a node required a unique parent (ownership
// edge) to be located; none or many were found.
var ErrParentError = errors.New("parent-error")

func edgeNotFound(from NodeID, label Label, index int) error {
	return errors.Wrapf(ErrEdgeNotFound, "node %d has no %s(%d) edge", from, label, index)
}

func parentError(format string, args ...interface{}) error {
	return errors.Wrap(ErrParentError, fmt.Sprintf(format, args...))
}
