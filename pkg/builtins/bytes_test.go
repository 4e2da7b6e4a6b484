package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/closurenet/pkg/builtins"
	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/reduce"
)

// buildBytesOp constructs `op arg0 arg1 ...` directly at the graph
// level, saturating the op's collecting lambda chain with the given
// node ids in order.
func buildBytesOp(g *graph.Graph, op graph.BytesOp, args ...graph.NodeID) graph.NodeID {
	cur := g.NewSaturatingChain(graph.BytesTag(op))
	for _, arg := range args {
		mustOK(g.ConvertLambdaToClosure(cur))
		mustOK(g.AddEdge(cur, graph.LabelParameter, arg, 0))
		cur = g.Body(cur)
	}
	return cur
}

func mustOK(err error) {
	if err != nil {
		panic(err)
	}
}

func newEvaluator(g *graph.Graph) *reduce.Evaluator {
	ev := reduce.NewEvaluator(g)
	builtins.Register(ev)
	return ev
}

func TestBytesNewAllocatesZeroedArray(t *testing.T) {
	g := graph.New()
	data := buildBytesOp(g, graph.BytesNew, g.NewNumber(3))
	ev := newEvaluator(g)

	result, err := ev.Evaluate(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, g.PrimitiveOf(result).Bytes)
}

func TestBytesGetReturnsElementAsNumber(t *testing.T) {
	g := graph.New()
	data := buildBytesOp(g, graph.BytesGet, g.NewBytes([]byte{10, 20, 30}), g.NewNumber(1))
	ev := newEvaluator(g)

	result, err := ev.Evaluate(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), g.PrimitiveOf(result).Number)
}

func TestBytesGetOutOfRangeIsCustomError(t *testing.T) {
	g := graph.New()
	data := buildBytesOp(g, graph.BytesGet, g.NewBytes([]byte{1}), g.NewNumber(5))
	ev := newEvaluator(g)

	_, err := ev.Evaluate(data)
	assert.Error(t, err)
	var custom *reduce.CustomError
	assert.ErrorAs(t, err, &custom)
}

func TestBytesSetReturnsFreshArrayWithOneElementReplaced(t *testing.T) {
	g := graph.New()
	original := g.NewBytes([]byte{1, 2, 3})
	data := buildBytesOp(g, graph.BytesSet, original, g.NewNumber(1), g.NewNumber(99))
	ev := newEvaluator(g)

	result, err := ev.Evaluate(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 99, 3}, g.PrimitiveOf(result).Bytes)
}

func TestBytesLengthOfEmptyArray(t *testing.T) {
	g := graph.New()
	data := buildBytesOp(g, graph.BytesLength, g.NewBytes(nil))
	ev := newEvaluator(g)

	result, err := ev.Evaluate(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), g.PrimitiveOf(result).Number)
}

func TestBytesPushAppendsOneElement(t *testing.T) {
	g := graph.New()
	data := buildBytesOp(g, graph.BytesPush, g.NewBytes([]byte{1, 2}), g.NewNumber(3))
	ev := newEvaluator(g)

	result, err := ev.Evaluate(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, g.PrimitiveOf(result).Bytes)
}

func TestBytesPopDropsLastElement(t *testing.T) {
	g := graph.New()
	data := buildBytesOp(g, graph.BytesPop, g.NewBytes([]byte{1, 2, 3}))
	ev := newEvaluator(g)

	result, err := ev.Evaluate(data)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, g.PrimitiveOf(result).Bytes)
}

func TestBytesPopOnEmptyArrayIsCustomError(t *testing.T) {
	g := graph.New()
	data := buildBytesOp(g, graph.BytesPop, g.NewBytes(nil))
	ev := newEvaluator(g)

	_, err := ev.Evaluate(data)
	assert.Error(t, err)
	var custom *reduce.CustomError
	assert.ErrorAs(t, err, &custom)
}
