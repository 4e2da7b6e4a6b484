package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/closurenet/pkg/builtins"
	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/reduce"
)

// buildSaturatedArith constructs `op a b` directly at the graph level —
// a saturating chain whose two collecting lambdas are immediately
// converted to closures holding literal numbers, bypassing the parser so
// each arithmetic case is isolated from it.
func buildSaturatedArith(g *graph.Graph, op graph.ArithOp, a, b uint64) graph.NodeID {
	chain := g.NewSaturatingChain(graph.ArithTag(op))
	must(g.ConvertLambdaToClosure(chain))
	must(g.AddEdge(chain, graph.LabelParameter, g.NewNumber(a), 0))

	second := g.Body(chain)
	must(g.ConvertLambdaToClosure(second))
	must(g.AddEdge(second, graph.LabelParameter, g.NewNumber(b), 0))

	return g.Body(second)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func evalArith(t *testing.T, op graph.ArithOp, a, b uint64) graph.NodeID {
	t.Helper()
	g := graph.New()
	data := buildSaturatedArith(g, op, a, b)
	ev := reduce.NewEvaluator(g)
	builtins.Register(ev)
	result, err := ev.Evaluate(data)
	require.NoError(t, err)
	return result
}

func TestArithmeticTable(t *testing.T) {
	tests := []struct {
		name string
		op   graph.ArithOp
		a, b uint64
		want uint64
	}{
		{"add", graph.ArithAdd, 2, 3, 5},
		{"mul", graph.ArithMul, 6, 7, 42},
		{"pow", graph.ArithPow, 2, 10, 100},
		{"sub_saturating_below_zero", graph.ArithSub, 5, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New()
			data := buildSaturatedArith(g, tt.op, tt.a, tt.b)
			ev := reduce.NewEvaluator(g)
			builtins.Register(ev)
			result, err := ev.Evaluate(data)
			require.NoError(t, err)
			require.Equal(t, graph.KindPrimitive, g.Kind(result))
			assert.Equal(t, tt.want, g.PrimitiveOf(result).Number)
		})
	}
}

// Sub is computed as `b - a` per the reducer's arg ordering (first
// operand a, second b): `- 1 n` therefore computes n - 1, the shape
// a fixed-point factorial body relies on.
func TestArithmeticSubComputesSecondMinusFirst(t *testing.T) {
	g := graph.New()
	data := buildSaturatedArith(g, graph.ArithSub, 1, 5)
	ev := reduce.NewEvaluator(g)
	builtins.Register(ev)
	result, err := ev.Evaluate(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), g.PrimitiveOf(result).Number)
}

func TestArithmeticDivByZeroIsCustomError(t *testing.T) {
	g := graph.New()
	data := buildSaturatedArith(g, graph.ArithDiv, 0, 9)
	ev := reduce.NewEvaluator(g)
	builtins.Register(ev)
	_, err := ev.Evaluate(data)
	require.Error(t, err)
	var custom *reduce.CustomError
	assert.ErrorAs(t, err, &custom)
}

func TestArithmeticEqProducesChurchBoolean(t *testing.T) {
	g := graph.New()
	data := buildSaturatedArith(g, graph.ArithEq, 4, 4)
	ev := reduce.NewEvaluator(g)
	builtins.Register(ev)
	result, err := ev.Evaluate(data)
	require.NoError(t, err)
	require.Equal(t, graph.KindLambda, g.Kind(result))

	// Apply the Church boolean to two distinguishable numbers and check
	// it selected the first (true, since 4 == 4).
	app1 := g.NewApplication()
	must(g.AddEdge(app1, graph.LabelFunction, result, 0))
	must(g.AddEdge(app1, graph.LabelParameter, g.NewNumber(111), 0))
	app2 := g.NewApplication()
	must(g.AddEdge(app2, graph.LabelFunction, app1, 0))
	must(g.AddEdge(app2, graph.LabelParameter, g.NewNumber(222), 0))

	final, err := ev.Evaluate(app2)
	require.NoError(t, err)
	require.Equal(t, graph.KindPrimitive, g.Kind(final))
	assert.Equal(t, uint64(111), g.PrimitiveOf(final).Number)
}
