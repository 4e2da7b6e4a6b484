package builtins

import (
	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/reduce"
)

// Register wires every active Data tag family into ev. IO-tagged Data is
// deliberately not registered here: graph.Tag.Inert reports it inert, so
// the reducer's own dispatch never consults the registry for it — the
// driver interprets IO tags after reduction finishes, not during it.
func Register(ev *reduce.Evaluator) {
	ev.RegisterBuiltin(graph.TagArithmetic, Arithmetic)
	ev.RegisterBuiltin(graph.TagMatch, Match)
	ev.RegisterBuiltin(graph.TagConstructorMeta, Constructor)
	ev.RegisterBuiltin(graph.TagBytes, BytesOp)
}
