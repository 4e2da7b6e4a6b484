package builtins

import (
	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/reduce"
)

// Arithmetic implements the arithmetic tags: strict in both
// arguments, computed per the table (Add, Sub as saturating subtraction,
// Mul, Div, Pow, and Eq as a Church boolean).
func Arithmetic(ev *reduce.Evaluator, data graph.NodeID) (graph.NodeID, error) {
	g := ev.G

	ap, aDangling, err := forceArg(ev, data, 0)
	if err != nil {
		return 0, err
	}
	a, err := asNumber(g, data, ap)
	if err != nil {
		return 0, err
	}
	bp, bDangling, err := forceArg(ev, data, 1)
	if err != nil {
		return 0, err
	}
	b, err := asNumber(g, data, bp)
	if err != nil {
		return 0, err
	}
	if err := disposeIfDangling(g, ap, aDangling); err != nil {
		return 0, err
	}
	if err := disposeIfDangling(g, bp, bDangling); err != nil {
		return 0, err
	}

	var result graph.NodeID
	switch g.TagOf(data).Arith {
	case graph.ArithAdd:
		result = g.NewNumber(a + b)
	case graph.ArithSub:
		if b < a {
			result = g.NewNumber(0)
		} else {
			result = g.NewNumber(b - a)
		}
	case graph.ArithMul:
		result = g.NewNumber(a * b)
	case graph.ArithDiv:
		if a == 0 {
			return 0, reduce.NewCustomError(data, "division by zero")
		}
		result = g.NewNumber(b / a)
	case graph.ArithPow:
		result = g.NewNumber(ipow(b, a))
	case graph.ArithEq:
		r, err := churchBool(g, a == b)
		if err != nil {
			return 0, err
		}
		result = r
	default:
		return 0, reduce.NewCustomError(data, "unknown arithmetic tag")
	}

	return finish(g, data, result)
}

func ipow(base, exp uint64) uint64 {
	result := uint64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
