package driver

import (
	"bufio"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/reduce"
)

// Interpret evaluates n to weak-head normal form and, as long as the
// result is a saturated IO tag, performs the corresponding effect and
// resumes evaluation on what it produces. It returns once the result is
// no longer an IO value — a pure normal form, ready for term.Read.
//
// IO tags are never registered with the reducer's own builtin dispatch
// (graph.Tag.Inert reports them inert), so this loop is the only place
// side effects happen, and only after reduction has already finished
// picking a WHNF.
func Interpret(ev *reduce.Evaluator, in *bufio.Reader, out writer, n graph.NodeID) (graph.NodeID, error) {
	g := ev.G
	for {
		whnf, err := ev.Evaluate(n)
		if err != nil {
			return 0, err
		}
		if g.Kind(whnf) != graph.KindData {
			return whnf, nil
		}
		tag := g.TagOf(whnf)
		if tag.Kind != graph.TagIO {
			return whnf, nil
		}

		result, err := runIO(ev, in, out, whnf, tag.IO)
		if err != nil {
			return 0, err
		}
		n = result
	}
}

// writer is the minimal surface driver needs from os.Stdout, kept
// narrow so tests can substitute a bytes.Buffer.
type writer interface {
	Write(p []byte) (int, error)
}

// runIO performs one IO tag's effect and returns the node that should
// replace it. Arity-0/1/2 cases mirror read-line/print/flatmap
// respectively.
func runIO(ev *reduce.Evaluator, in *bufio.Reader, out writer, data graph.NodeID, op graph.IOOp) (graph.NodeID, error) {
	g := ev.G
	switch op {
	case graph.IOReadLine:
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			line = ""
		}
		result := g.NewBytes([]byte(line))
		return finish(g, data, result)

	case graph.IOPrint:
		p, dangling, err := forceBinder(ev, data, 0)
		if err != nil {
			return 0, err
		}
		if g.Kind(p) != graph.KindPrimitive || g.PrimitiveOf(p).Kind != graph.PrimBytes {
			return 0, reduce.NewCustomError(data, "print expects a byte array, got %s", g.Kind(p))
		}
		b := g.PrimitiveOf(p).Bytes
		if !utf8.Valid(b) {
			return 0, reduce.NewCustomError(data, "print argument is not valid utf8")
		}
		if _, err := out.Write(b); err != nil {
			return 0, errors.Wrap(err, "print")
		}
		if dangling {
			if err := g.RemoveSubtree(p); err != nil {
				return 0, err
			}
		}
		return finish(g, data, g.NewFreeVariable("#io-print-finished"))

	case graph.IOFlatmap:
		ioClosure, err := g.FollowEdge(data, graph.LabelBinder, 1)
		if err != nil {
			return 0, err
		}
		ioVal, ioDangling, err := ev.EvaluateClosureParameter(ioClosure)
		if err != nil {
			return 0, err
		}
		if g.Kind(ioVal) != graph.KindData || g.TagOf(ioVal).Kind != graph.TagIO {
			return 0, reduce.NewCustomError(data, "flatmap's second argument must be an IO value, got %s", g.Kind(ioVal))
		}
		if g.TagOf(ioVal).IO == graph.IOFlatmap {
			return 0, reduce.NewCustomError(data, "flatmap is not itself an effectful IO")
		}
		ioResult, err := runIO(ev, in, out, ioVal, g.TagOf(ioVal).IO)
		if err != nil {
			return 0, err
		}
		if ioDangling {
			// ioVal was already consumed into ioResult by runIO via finish.
		}

		transformClosure, err := g.FollowEdge(data, graph.LabelBinder, 0)
		if err != nil {
			return 0, err
		}
		transform, _, err := ev.EvaluateClosureParameter(transformClosure)
		if err != nil {
			return 0, err
		}

		app := g.NewApplication()
		if err := g.AddEdge(app, graph.LabelFunction, transform, 0); err != nil {
			return 0, err
		}
		if err := g.AddEdge(app, graph.LabelParameter, ioResult, 0); err != nil {
			return 0, err
		}
		return finish(g, data, app)

	default:
		return 0, reduce.NewCustomError(data, "unknown IO tag")
	}
}

// forceBinder forces the closure at data's Binder(index) edge, the same
// contract pkg/builtins' forceArg uses for ordinary builtins.
func forceBinder(ev *reduce.Evaluator, data graph.NodeID, index int) (graph.NodeID, bool, error) {
	c, err := ev.G.FollowEdge(data, graph.LabelBinder, index)
	if err != nil {
		return 0, false, err
	}
	return ev.EvaluateClosureParameter(c)
}

// finish replaces data with result in the graph, the same
// migrate-then-discard pattern pkg/builtins uses to retire a saturated
// Data node once its active form has been computed.
func finish(g *graph.Graph, data, result graph.NodeID) (graph.NodeID, error) {
	if err := g.MigrateNode(data, result); err != nil {
		return 0, err
	}
	if err := g.RemoveSubtree(data); err != nil {
		return 0, err
	}
	return result, nil
}
