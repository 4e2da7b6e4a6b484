package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/closurenet/pkg/builtins"
	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/reduce"
)

func TestConstructorMintsSaturatableTag(t *testing.T) {
	g := graph.New()
	chain := g.NewSaturatingChain(graph.ConstructorMetaTag())
	require.NoError(t, g.ConvertLambdaToClosure(chain))
	require.NoError(t, g.AddEdge(chain, graph.LabelParameter, g.NewNumber(2), 0))

	ev := reduce.NewEvaluator(g)
	builtins.Register(ev)

	result, err := ev.Evaluate(chain)
	require.NoError(t, err)

	// result should be `λa0.λa1.Data{Custom, arity 2}` — an unsaturated
	// chain that ordinary application can then saturate.
	require.Equal(t, graph.KindLambda, g.Kind(result))
	inner := g.Body(result)
	require.Equal(t, graph.KindLambda, g.Kind(inner))
	data := g.Body(inner)
	require.Equal(t, graph.KindData, g.Kind(data))
	assert.Equal(t, graph.TagCustom, g.TagOf(data).Kind)
	assert.Equal(t, 2, g.TagOf(data).Custom.Arity)
}

func TestConstructorMintsDistinctUIDsEachCall(t *testing.T) {
	g := graph.New()
	ev := reduce.NewEvaluator(g)
	builtins.Register(ev)

	build := func(arity uint64) graph.NodeID {
		chain := g.NewSaturatingChain(graph.ConstructorMetaTag())
		require.NoError(t, g.ConvertLambdaToClosure(chain))
		require.NoError(t, g.AddEdge(chain, graph.LabelParameter, g.NewNumber(arity), 0))
		result, err := ev.Evaluate(chain)
		require.NoError(t, err)
		return g.Body(result)
	}

	first := build(1)
	second := build(1)

	assert.NotEqual(t, g.TagOf(first).Custom.UID, g.TagOf(second).Custom.UID)
}
