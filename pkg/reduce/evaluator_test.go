package reduce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/closurenet/pkg/builtins"
	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/reduce"
	"github.com/vic/closurenet/pkg/term"
)

// runToNormalForm parses, builds, runs the pre-pass GC, reduces to
// weak-head normal form, and reads the result — the same pipeline
// cmd/closurenet drives, exercised end to end against representative
// scenarios.
func runToNormalForm(t *testing.T, source string) string {
	t.Helper()

	tm, err := term.Parse(source)
	require.NoError(t, err)

	g := graph.New()
	root, err := term.Build(g, tm)
	require.NoError(t, err)
	g.SetRoot(root)

	_, err = reduce.PrePassGC(g)
	require.NoError(t, err)

	ev := reduce.NewEvaluator(g)
	builtins.Register(ev)

	whnf, err := ev.Evaluate(g.Root())
	require.NoError(t, err)

	s, err := term.Read(g, whnf)
	require.NoError(t, err)
	return s
}

func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"arithmetic_add", "+ 2 3", "Number(5)"},
		{"arithmetic_nested", "* (+ 1 2) (+ 3 4)", "Number(21)"},
		{"k_combinator", "(λx.λy.x) 7 99", "Number(7)"},
		{"with_identity_shared", "with id λx.x in id (id 42)", "Number(42)"},
		{"with_pair_projection", "with pair λa.λb.λs.s a b in (pair 3 5) (λa.λb. + a b)", "Number(8)"},
		{
			"constructor_match",
			"with two (constructor 2) in match two (λa.λb.+ a b) (λv.0) (two 10 20)",
			"Number(30)",
		},
		{
			"fixed_point_factorial",
			"with fix λf.(λx.f (x x)) (λx.f (x x)) in with fact fix (λrec.λn.= n 0 1 (* n (rec (- 1 n)))) in fact 5",
			"Number(120)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runToNormalForm(t, tt.source))
		})
	}
}

func TestEvaluateIsIdempotentOnceInWHNF(t *testing.T) {
	g := graph.New()
	root, err := term.Build(g, term.Num{Value: 3})
	require.NoError(t, err)
	g.SetRoot(root)

	ev := reduce.NewEvaluator(g)
	builtins.Register(ev)

	first, err := ev.Evaluate(root)
	require.NoError(t, err)
	second, err := ev.Evaluate(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDeadParameterSkipsForcingTheArgument(t *testing.T) {
	// (λx.λy.y) (/ 0 1) 9 — the unused argument would error if forced
	// (division by zero); the dead-parameter shortcut must discard it
	// unevaluated.
	tm, err := term.Parse("(λx.λy.y) (/ 0 1) 9")
	require.NoError(t, err)

	g := graph.New()
	root, err := term.Build(g, tm)
	require.NoError(t, err)
	g.SetRoot(root)

	_, err = reduce.PrePassGC(g)
	require.NoError(t, err)

	ev := reduce.NewEvaluator(g)
	builtins.Register(ev)

	whnf, err := ev.Evaluate(g.Root())
	require.NoError(t, err)

	s, err := term.Read(g, whnf)
	require.NoError(t, err)
	assert.Equal(t, "Number(9)", s)
}

func TestTraceRecordsRewriteRules(t *testing.T) {
	g := graph.New()
	tm, err := term.Parse("+ 1 2")
	require.NoError(t, err)
	root, err := term.Build(g, tm)
	require.NoError(t, err)
	g.SetRoot(root)

	var fired []reduce.RuleKind
	ev := reduce.NewEvaluator(g)
	builtins.Register(ev)
	ev.Trace = func(rule reduce.RuleKind, n graph.NodeID) {
		fired = append(fired, rule)
	}

	_, err = ev.Evaluate(g.Root())
	require.NoError(t, err)

	assert.Contains(t, fired, reduce.RuleBuiltin)
}

func TestLiftExposesSuspendedClosureHead(t *testing.T) {
	// x is already bound (closure c1, wrapping λy.λz.y); applying y here
	// must lift c1 out of the Application's Function position before
	// dispatch proceeds, and since z is never supplied, forcing y leaves
	// a genuine closure behind rather than an error or a flattened body.
	g := graph.New()

	c1 := g.NewClosure("x")
	require.NoError(t, g.AddEdge(c1, graph.LabelParameter, g.NewNumber(7), 0))

	lambdaY := g.NewLambda("y")
	lambdaZ := g.NewLambda("z")
	yRef := g.NewBoundVariable()
	require.NoError(t, g.AddEdge(yRef, graph.LabelBinder, lambdaY, 0))
	require.NoError(t, g.AddEdge(lambdaZ, graph.LabelBody, yRef, 0))
	require.NoError(t, g.AddEdge(lambdaY, graph.LabelBody, lambdaZ, 0))
	require.NoError(t, g.AddEdge(c1, graph.LabelBody, lambdaY, 0))

	app := g.NewApplication()
	require.NoError(t, g.AddEdge(app, graph.LabelFunction, c1, 0))
	require.NoError(t, g.AddEdge(app, graph.LabelParameter, g.NewNumber(8), 0))
	g.SetRoot(app)

	var fired []reduce.RuleKind
	ev := reduce.NewEvaluator(g)
	ev.Trace = func(rule reduce.RuleKind, n graph.NodeID) {
		fired = append(fired, rule)
	}

	whnf, err := ev.Evaluate(app)
	require.NoError(t, err)

	assert.Contains(t, fired, reduce.RuleLift, "the suspended closure in Function position must be lifted before dispatch")
	assert.Equal(t, graph.KindClosure, g.Kind(whnf), "with z still unapplied, forcing y must leave a genuine closure, not an error or a flattened body")
}

func TestEvaluateVariableLastReferenceDoesNotClone(t *testing.T) {
	// x has exactly one occurrence, so forcing it must hand back the
	// parameter node itself rather than a fresh copy of it.
	g := graph.New()

	c := g.NewClosure("x")
	param := g.NewNumber(5)
	require.NoError(t, g.AddEdge(c, graph.LabelParameter, param, 0))
	v := g.NewBoundVariable()
	require.NoError(t, g.AddEdge(v, graph.LabelBinder, c, 0))
	require.NoError(t, g.AddEdge(c, graph.LabelBody, v, 0))
	g.SetRoot(c)
	require.Equal(t, 1, g.RefCount(c))

	ev := reduce.NewEvaluator(g)
	whnf, err := ev.Evaluate(c)
	require.NoError(t, err)

	assert.Equal(t, param, whnf, "the last reference takes the parameter node directly, never a clone")
	assert.False(t, g.Has(c), "the stripped closure is gone")
}

func TestEvaluateVariableSharedReferenceClones(t *testing.T) {
	// x has two occurrences, so forcing one of them must clone the
	// parameter rather than handing out the same node twice.
	g := graph.New()

	c := g.NewClosure("x")
	param := g.NewNumber(9)
	require.NoError(t, g.AddEdge(c, graph.LabelParameter, param, 0))
	v1 := g.NewBoundVariable()
	v2 := g.NewBoundVariable()
	require.NoError(t, g.AddEdge(v1, graph.LabelBinder, c, 0))
	require.NoError(t, g.AddEdge(v2, graph.LabelBinder, c, 0))
	require.NoError(t, g.AddEdge(c, graph.LabelBody, v2, 0))
	g.SetRoot(c)
	require.Equal(t, 2, g.RefCount(c))

	ev := reduce.NewEvaluator(g)
	first, err := ev.Evaluate(v1)
	require.NoError(t, err)

	assert.NotEqual(t, param, first, "a shared reference must clone, never hand back the parameter node directly")
	assert.True(t, g.Has(c), "the closure survives while another referrer remains")
	assert.Equal(t, 1, g.RefCount(c), "forcing v1 released one referrer")
}

func TestPrePassGCRemovesUnreferencedClosures(t *testing.T) {
	// `with unused 1 in 42` — the with-closure has no referrer in its
	// body at all, so the pre-pass should strip it before evaluation.
	tm, err := term.Parse("with unused 1 in 42")
	require.NoError(t, err)

	g := graph.New()
	root, err := term.Build(g, tm)
	require.NoError(t, err)
	g.SetRoot(root)

	closureID := root
	require.Equal(t, graph.KindClosure, g.Kind(closureID))

	removed, err := reduce.PrePassGC(g)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.False(t, g.Has(closureID))

	ev := reduce.NewEvaluator(g)
	builtins.Register(ev)
	whnf, err := ev.Evaluate(g.Root())
	require.NoError(t, err)
	s, err := term.Read(g, whnf)
	require.NoError(t, err)
	assert.Equal(t, "Number(42)", s)
}
