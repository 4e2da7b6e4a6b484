package builtins

import (
	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/reduce"
)

// Match implements the `match` pattern helper: four
// arguments, constructor, transform, fallback, value. constructor and
// value are forced to WHNF; if their tag uids agree, value's own
// arguments are fed into transform left to right, otherwise fallback is
// applied to value.
func Match(ev *reduce.Evaluator, data graph.NodeID) (graph.NodeID, error) {
	g := ev.G

	ctorClosure, err := g.FollowEdge(data, graph.LabelBinder, 0)
	if err != nil {
		return 0, err
	}
	transformClosure, err := g.FollowEdge(data, graph.LabelBinder, 1)
	if err != nil {
		return 0, err
	}
	fallbackClosure, err := g.FollowEdge(data, graph.LabelBinder, 2)
	if err != nil {
		return 0, err
	}
	valueClosure, err := g.FollowEdge(data, graph.LabelBinder, 3)
	if err != nil {
		return 0, err
	}

	ctorParam, ctorDangling, err := ev.EvaluateClosureParameter(ctorClosure)
	if err != nil {
		return 0, err
	}
	uc, err := headUID(g, ctorParam)
	if err != nil {
		return 0, err
	}
	if err := disposeIfDangling(g, ctorParam, ctorDangling); err != nil {
		return 0, err
	}

	valueParam, valueDangling, err := ev.EvaluateClosureParameter(valueClosure)
	if err != nil {
		return 0, err
	}
	if g.Kind(valueParam) != graph.KindData || g.TagOf(valueParam).Kind != graph.TagCustom {
		return 0, reduce.NewCustomError(data, "match: value is not a tagged constructor")
	}
	uv := g.TagOf(valueParam).Custom.UID

	var chainHead graph.NodeID
	if uc == uv {
		chainHead, err = reference(g, transformClosure)
		if err != nil {
			return 0, err
		}
		for _, arg := range g.Binders(valueParam) {
			argVar, err := reference(g, arg)
			if err != nil {
				return 0, err
			}
			app := g.NewApplication()
			if err := g.AddEdge(app, graph.LabelFunction, chainHead, 0); err != nil {
				return 0, err
			}
			if err := g.AddEdge(app, graph.LabelParameter, argVar, 0); err != nil {
				return 0, err
			}
			chainHead = app
		}
		if err := disposeIfDangling(g, valueParam, valueDangling); err != nil {
			return 0, err
		}
	} else {
		head, err := reference(g, fallbackClosure)
		if err != nil {
			return 0, err
		}
		var valueArg graph.NodeID
		if valueDangling {
			valueArg = valueParam
		} else {
			remap := make(map[graph.NodeID]graph.NodeID)
			valueArg, err = g.CloneSubtree(valueParam, remap)
			if err != nil {
				return 0, err
			}
		}
		app := g.NewApplication()
		if err := g.AddEdge(app, graph.LabelFunction, head, 0); err != nil {
			return 0, err
		}
		if err := g.AddEdge(app, graph.LabelParameter, valueArg, 0); err != nil {
			return 0, err
		}
		chainHead = app
	}

	return finish(g, data, chainHead)
}

// reference builds a fresh bound Variable pointing at binder, the graph
// equivalent of naming an existing closure as a value.
func reference(g *graph.Graph, binder graph.NodeID) (graph.NodeID, error) {
	v := g.NewBoundVariable()
	if err := g.AddEdge(v, graph.LabelBinder, binder, 0); err != nil {
		return 0, err
	}
	return v, nil
}

// headUID walks through Lambda/Closure bodies and Application function
// edges — an unsaturated constructor is exactly such a chain wrapping a
// Data{Custom} node — until it reaches a Data node, and returns that
// node's tag uid.
func headUID(g *graph.Graph, n graph.NodeID) (uint64, error) {
	cur := n
	for {
		switch g.Kind(cur) {
		case graph.KindData:
			tag := g.TagOf(cur)
			if tag.Kind != graph.TagCustom {
				return 0, reduce.NewCustomError(cur, "match: constructor is not a user-defined tag")
			}
			return tag.Custom.UID, nil
		case graph.KindLambda, graph.KindClosure:
			next, err := g.FollowEdge(cur, graph.LabelBody, 0)
			if err != nil {
				return 0, err
			}
			cur = next
		case graph.KindApplication:
			next, err := g.FollowEdge(cur, graph.LabelFunction, 0)
			if err != nil {
				return 0, err
			}
			cur = next
		default:
			return 0, reduce.NewCustomError(cur, "match: constructor does not resolve to a user-defined tag")
		}
	}
}
