package reduce

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vic/closurenet/pkg/graph"
)

// ErrInvalidClosureChain reports that a lift or strip step found the
// graph around a closure chain malformed — a Body or Function edge it
// depends on is missing.
var ErrInvalidClosureChain = errors.New("invalid-closure-chain")

func invalidClosureChain(cause error) error {
	return errors.Wrap(ErrInvalidClosureChain, cause.Error())
}

// CustomError is a domain error attributable to a specific node, used
// for type mismatches in arithmetic, match, and byte-array builtins.
type CustomError struct {
	Node    graph.NodeID
	Message string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("node %d: %s", e.Node, e.Message)
}

// NewCustomError builds a CustomError with a formatted message.
func NewCustomError(n graph.NodeID, format string, args ...interface{}) error {
	return &CustomError{Node: n, Message: fmt.Sprintf(format, args...)}
}
