package builtins

import (
	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/reduce"
)

// Constructor implements the `constructor` meta-builtin: one
// argument, the arity, reduced to a Number. Mints a fresh CustomTag and
// wraps it in the usual saturating lambda chain, so the result is itself
// saturatable by ordinary application just like a parser-provided tag.
func Constructor(ev *reduce.Evaluator, data graph.NodeID) (graph.NodeID, error) {
	g := ev.G

	p, dangling, err := forceArg(ev, data, 0)
	if err != nil {
		return 0, err
	}
	arity, err := asNumber(g, data, p)
	if err != nil {
		return 0, err
	}
	if err := disposeIfDangling(g, p, dangling); err != nil {
		return 0, err
	}

	tag := graph.CustomDataTag(g.NextUID(), int(arity))
	result := g.NewSaturatingChain(tag)
	return finish(g, data, result)
}
