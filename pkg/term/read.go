package term

import (
	"fmt"
	"strings"

	"github.com/vic/closurenet/pkg/graph"
)

// Read walks a fully (WHNF-)reduced graph node and renders it as
// `Number(n)`, `Bytes(...)`, a lambda as `λname.<body>` (its body is
// not printed), a residual closure as the rendering of its body, a free
// variable by name, or a saturated data constructor by tag and its
// (recursively read) arguments. It does not evaluate anything; callers
// run Evaluate to normal form first.
func Read(g *graph.Graph, n graph.NodeID) (string, error) {
	if !g.Has(n) {
		return "", fmt.Errorf("read: node %d does not exist", n)
	}

	switch g.Kind(n) {
	case graph.KindPrimitive:
		return readPrimitive(g.PrimitiveOf(n)), nil

	case graph.KindData:
		return readData(g, n)

	case graph.KindClosure:
		// A residual closure wrapping a value: print the body, since the
		// closure itself carries no surface syntax of its own once
		// reduction has stopped here.
		return Read(g, g.Body(n))

	case graph.KindLambda:
		return fmt.Sprintf("λ%s.<body>", g.Name(n)), nil

	case graph.KindVariable:
		if g.VarKind(n) == graph.VarFree {
			return g.FreeName(n), nil
		}
		return fmt.Sprintf("<bound:%d>", n), nil

	case graph.KindApplication:
		return "<stuck-application>", nil

	default:
		return "", fmt.Errorf("read: unhandled kind %s", g.Kind(n))
	}
}

func readPrimitive(p graph.Primitive) string {
	switch p.Kind {
	case graph.PrimNumber:
		return fmt.Sprintf("Number(%d)", p.Number)
	case graph.PrimBytes:
		return fmt.Sprintf("Bytes(%v)", p.Bytes)
	default:
		return "?"
	}
}

// readData prints a saturated Data node. Each Binder(i) names the
// closure holding argument i, so the argument's value sits at that
// closure's Parameter edge, not at the closure itself.
func readData(g *graph.Graph, n graph.NodeID) (string, error) {
	tag := g.TagOf(n)
	binders := g.Binders(n)
	args := make([]string, len(binders))
	for i, b := range binders {
		if g.Kind(b) != graph.KindClosure {
			args[i] = "<unapplied>"
			continue
		}
		s, err := Read(g, g.Parameter(b))
		if err != nil {
			return "", err
		}
		args[i] = s
	}
	if len(args) == 0 {
		return tag.String(), nil
	}
	return fmt.Sprintf("%s(%s)", tag.String(), strings.Join(args, ", ")), nil
}
