package builtins

import (
	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/reduce"
)

// forceArg forces the closure sitting at data's Binder(index) edge and
// returns its weak-head-normal-form representative along with whether
// that closure was the argument's last referent (see
// reduce.Evaluator.EvaluateClosureParameter).
func forceArg(ev *reduce.Evaluator, data graph.NodeID, index int) (graph.NodeID, bool, error) {
	c, err := ev.G.FollowEdge(data, graph.LabelBinder, index)
	if err != nil {
		return 0, false, err
	}
	return ev.EvaluateClosureParameter(c)
}

// disposeIfDangling deletes p once its useful content has been copied
// out or re-referenced elsewhere; a no-op when p is still owned by a
// surviving closure (the shared case), since the graph already accounts
// for it there.
func disposeIfDangling(g *graph.Graph, p graph.NodeID, dangling bool) error {
	if !dangling {
		return nil
	}
	return g.RemoveSubtree(p)
}

// asNumber requires p to be a Primitive(Number) and reports a
// custom(n, message) error otherwise.
func asNumber(g *graph.Graph, data, p graph.NodeID) (uint64, error) {
	if g.Kind(p) != graph.KindPrimitive || g.PrimitiveOf(p).Kind != graph.PrimNumber {
		return 0, reduce.NewCustomError(data, "expected a number, got %s", g.Kind(p))
	}
	return g.PrimitiveOf(p).Number, nil
}

// asBytes requires p to be a Primitive(Bytes) and reports a
// custom(n, message) error otherwise.
func asBytes(g *graph.Graph, data, p graph.NodeID) ([]byte, error) {
	if g.Kind(p) != graph.KindPrimitive || g.PrimitiveOf(p).Kind != graph.PrimBytes {
		return nil, reduce.NewCustomError(data, "expected a byte array, got %s", g.Kind(p))
	}
	return g.PrimitiveOf(p).Bytes, nil
}

// finish replaces data with result in the graph: result takes over
// data's former parents, and data itself (including its now-unneeded
// Binder references) is discarded.
func finish(g *graph.Graph, data, result graph.NodeID) (graph.NodeID, error) {
	if err := g.MigrateNode(data, result); err != nil {
		return 0, err
	}
	if err := g.RemoveSubtree(data); err != nil {
		return 0, err
	}
	return result, nil
}

// churchBool builds λa.λb.a (selectFirst) or λa.λb.b, the Church
// encoding used by the Eq arithmetic tag and generally available to any
// future boolean-producing builtin.
func churchBool(g *graph.Graph, selectFirst bool) (graph.NodeID, error) {
	outer := g.NewLambda("a")
	inner := g.NewLambda("b")
	if err := g.AddEdge(outer, graph.LabelBody, inner, 0); err != nil {
		return 0, err
	}
	selected := inner
	if selectFirst {
		selected = outer
	}
	v := g.NewBoundVariable()
	if err := g.AddEdge(v, graph.LabelBinder, selected, 0); err != nil {
		return 0, err
	}
	if err := g.AddEdge(inner, graph.LabelBody, v, 0); err != nil {
		return 0, err
	}
	return outer, nil
}
