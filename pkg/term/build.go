package term

import (
	"github.com/pkg/errors"

	"github.com/vic/closurenet/pkg/graph"
)

// scope is a cons-list of lexically enclosing binders, innermost first.
// Build consults it before falling back to an intrinsic or a genuinely
// free variable.
type scope struct {
	name   string
	binder graph.NodeID
	outer  *scope
}

func (s *scope) lookup(name string) (graph.NodeID, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if cur.name == name {
			return cur.binder, true
		}
	}
	return 0, false
}

// Build translates a parsed Term into g, returning the node that
// represents it. The returned node has no parent; the caller installs
// it as the graph's root (or as an edge target of something else).
func Build(g *graph.Graph, t Term) (graph.NodeID, error) {
	return build(g, t, nil)
}

func build(g *graph.Graph, t Term, sc *scope) (graph.NodeID, error) {
	switch t := t.(type) {
	case Num:
		return g.NewNumber(t.Value), nil

	case Var:
		if binder, ok := sc.lookup(t.Name); ok {
			v := g.NewBoundVariable()
			if err := g.AddEdge(v, graph.LabelBinder, binder, 0); err != nil {
				return 0, err
			}
			return v, nil
		}
		if tag, ok := intrinsic(t.Name); ok {
			return g.NewSaturatingChain(tag), nil
		}
		return g.NewFreeVariable(t.Name), nil

	case Abs:
		lambda := g.NewLambda(t.Arg)
		body, err := build(g, t.Body, &scope{name: t.Arg, binder: lambda, outer: sc})
		if err != nil {
			return 0, err
		}
		if err := g.AddEdge(lambda, graph.LabelBody, body, 0); err != nil {
			return 0, err
		}
		return lambda, nil

	case App:
		fn, err := build(g, t.Fun, sc)
		if err != nil {
			return 0, err
		}
		arg, err := build(g, t.Arg, sc)
		if err != nil {
			return 0, err
		}
		app := g.NewApplication()
		if err := g.AddEdge(app, graph.LabelFunction, fn, 0); err != nil {
			return 0, err
		}
		if err := g.AddEdge(app, graph.LabelParameter, arg, 0); err != nil {
			return 0, err
		}
		return app, nil

	case With:
		// `with x v in e` materialises directly as a Closure, the same
		// shape an Application against a Lambda would rewrite itself
		// into once fired — no point building the Lambda/Application pair
		// only to have the first reduction step undo it.
		val, err := build(g, t.Val, sc)
		if err != nil {
			return 0, err
		}
		closure := g.NewClosure(t.Name)
		body, err := build(g, t.Body, &scope{name: t.Name, binder: closure, outer: sc})
		if err != nil {
			return 0, err
		}
		if err := g.AddEdge(closure, graph.LabelBody, body, 0); err != nil {
			return 0, err
		}
		if err := g.AddEdge(closure, graph.LabelParameter, val, 0); err != nil {
			return 0, err
		}
		return closure, nil

	default:
		return 0, errors.Errorf("term: unknown AST node %T", t)
	}
}

// intrinsic resolves an unshadowed identifier to a built-in's tag, or
// reports false for an ordinary free variable.
func intrinsic(name string) (graph.Tag, bool) {
	switch name {
	case "+":
		return graph.ArithTag(graph.ArithAdd), true
	case "-":
		return graph.ArithTag(graph.ArithSub), true
	case "*":
		return graph.ArithTag(graph.ArithMul), true
	case "/":
		return graph.ArithTag(graph.ArithDiv), true
	case "^":
		return graph.ArithTag(graph.ArithPow), true
	case "=":
		return graph.ArithTag(graph.ArithEq), true
	case "match":
		return graph.MatchTag(), true
	case "constructor":
		return graph.ConstructorMetaTag(), true
	case "read-line":
		return graph.IOTag(graph.IOReadLine), true
	case "print":
		return graph.IOTag(graph.IOPrint), true
	case "flatmap":
		return graph.IOTag(graph.IOFlatmap), true
	case "bytes-new":
		return graph.BytesTag(graph.BytesNew), true
	case "bytes-get":
		return graph.BytesTag(graph.BytesGet), true
	case "bytes-set":
		return graph.BytesTag(graph.BytesSet), true
	case "bytes-length":
		return graph.BytesTag(graph.BytesLength), true
	case "bytes-push":
		return graph.BytesTag(graph.BytesPush), true
	case "bytes-pop":
		return graph.BytesTag(graph.BytesPop), true
	default:
		return graph.Tag{}, false
	}
}
