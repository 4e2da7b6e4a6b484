package term_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/term"
)

func TestBuildNumberProducesPrimitive(t *testing.T) {
	g := graph.New()
	root, err := term.Build(g, term.Num{Value: 42})
	require.NoError(t, err)

	assert.Equal(t, graph.KindPrimitive, g.Kind(root))
	assert.Equal(t, uint64(42), g.PrimitiveOf(root).Number)
}

func TestBuildLambdaBindsOccurrencesToItself(t *testing.T) {
	g := graph.New()
	root, err := term.Build(g, term.Abs{Arg: "x", Body: term.Var{Name: "x"}})
	require.NoError(t, err)

	assert.Equal(t, graph.KindLambda, g.Kind(root))
	body := g.Body(root)
	require.Equal(t, graph.KindVariable, g.Kind(body))
	assert.Equal(t, graph.VarBound, g.VarKind(body))
	assert.Equal(t, root, g.Binder(body))
	assert.Equal(t, 1, g.RefCount(root))
}

func TestBuildFreeVariable(t *testing.T) {
	g := graph.New()
	root, err := term.Build(g, term.Var{Name: "unbound"})
	require.NoError(t, err)

	assert.Equal(t, graph.KindVariable, g.Kind(root))
	assert.Equal(t, graph.VarFree, g.VarKind(root))
	assert.Equal(t, "unbound", g.FreeName(root))
}

func TestBuildIntrinsicNameProducesSaturatingChain(t *testing.T) {
	g := graph.New()
	root, err := term.Build(g, term.Var{Name: "+"})
	require.NoError(t, err)

	assert.Equal(t, graph.KindLambda, g.Kind(root))
	inner := g.Body(root)
	data := g.Body(inner)
	assert.Equal(t, graph.KindData, g.Kind(data))
	assert.Equal(t, graph.TagArithmetic, g.TagOf(data).Kind)
	assert.Equal(t, graph.ArithAdd, g.TagOf(data).Arith)
}

func TestBuildWithMaterialisesClosureDirectly(t *testing.T) {
	g := graph.New()
	root, err := term.Build(g, term.With{
		Name: "x",
		Val:  term.Num{Value: 5},
		Body: term.Var{Name: "x"},
	})
	require.NoError(t, err)

	assert.Equal(t, graph.KindClosure, g.Kind(root))
	assert.Equal(t, uint64(5), g.PrimitiveOf(g.Parameter(root)).Number)

	bodyVar := g.Body(root)
	assert.Equal(t, root, g.Binder(bodyVar))
}

func TestBuildApplicationWiresFunctionAndParameter(t *testing.T) {
	g := graph.New()
	root, err := term.Build(g, term.App{
		Fun: term.Var{Name: "f"},
		Arg: term.Num{Value: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, graph.KindApplication, g.Kind(root))
	assert.Equal(t, "f", g.FreeName(g.Function(root)))
	assert.Equal(t, uint64(1), g.PrimitiveOf(g.Parameter(root)).Number)
}

func TestReadPrimitiveNumber(t *testing.T) {
	g := graph.New()
	n := g.NewNumber(7)
	s, err := term.Read(g, n)
	require.NoError(t, err)
	assert.Equal(t, "Number(7)", s)
}

func TestReadFreeVariable(t *testing.T) {
	g := graph.New()
	v := g.NewFreeVariable("x")
	s, err := term.Read(g, v)
	require.NoError(t, err)
	assert.Equal(t, "x", s)
}

func TestReadSaturatedCustomData(t *testing.T) {
	g := graph.New()
	tag := graph.CustomDataTag(g.NextUID(), 1)
	chainHead := g.NewSaturatingChain(tag)

	// Saturate the one collecting lambda with the number 9 via a
	// Closure in place, the same shape generalApply leaves behind.
	require.NoError(t, g.ConvertLambdaToClosure(chainHead))
	arg := g.NewNumber(9)
	require.NoError(t, g.AddEdge(chainHead, graph.LabelParameter, arg, 0))

	s, err := term.Read(g, g.Body(chainHead))
	require.NoError(t, err)
	assert.Contains(t, s, "Number(9)")
}
