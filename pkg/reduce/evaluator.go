package reduce

import "github.com/vic/closurenet/pkg/graph"

// BuiltinFunc computes the active form of a Data node once all its
// Binder(i) closures are in place. It receives the Evaluator so it can
// recurse (e.g. to force an argument) and returns the node that should
// replace data in the graph.
type BuiltinFunc func(ev *Evaluator, data graph.NodeID) (graph.NodeID, error)

// RuleKind names a rewrite step the evaluator took, for the optional
// Trace hook: a small closed enum identifying which graph rewrite
// just fired. One rewrite happens at a time, on one goroutine, so a
// plain field is enough — no atomics, no ring buffer.
type RuleKind uint8

const (
	RuleLift RuleKind = iota
	RuleDeadParameter
	RuleIndirection
	RuleGeneralApply
	RuleLastReference
	RuleSharedReference
	RuleBuiltin
)

func (r RuleKind) String() string {
	switch r {
	case RuleLift:
		return "lift"
	case RuleDeadParameter:
		return "dead-parameter"
	case RuleIndirection:
		return "indirection"
	case RuleGeneralApply:
		return "general-apply"
	case RuleLastReference:
		return "last-reference"
	case RuleSharedReference:
		return "shared-reference"
	case RuleBuiltin:
		return "builtin"
	default:
		return "?"
	}
}

// Evaluator reduces a graph to weak-head normal form. It holds no state
// beyond the graph it operates on and the builtin registry; Evaluate is
// safe to call repeatedly against evolving subtrees of the same graph,
// but never against two graphs concurrently from different goroutines:
// the graph is not safe for concurrent mutation.
type Evaluator struct {
	G        *graph.Graph
	builtins map[graph.TagKind]BuiltinFunc

	// Trace, if non-nil, is called with every rewrite rule the
	// evaluator fires and the node it fired on. It exists purely for
	// the driver's opt-in debug dump; reduce itself never logs.
	Trace func(rule RuleKind, n graph.NodeID)
}

func (ev *Evaluator) trace(rule RuleKind, n graph.NodeID) {
	if ev.Trace != nil {
		ev.Trace(rule, n)
	}
}

// NewEvaluator returns an Evaluator with an empty builtin registry.
// Callers must register every tag kind they intend to reduce before
// calling Evaluate on a graph containing that kind (see package builtins).
func NewEvaluator(g *graph.Graph) *Evaluator {
	return &Evaluator{G: g, builtins: make(map[graph.TagKind]BuiltinFunc)}
}

// RegisterBuiltin wires fn as the active-form computation for every Data
// node whose tag has the given kind.
func (ev *Evaluator) RegisterBuiltin(kind graph.TagKind, fn BuiltinFunc) {
	ev.builtins[kind] = fn
}

// Evaluate reduces the subtree rooted at n to weak-head normal form and
// returns the id of the normalised root — possibly n itself, possibly a
// fresh or migrated node; callers must use the returned id, not n, for
// anything they do afterward. Mutates the graph in place.
func (ev *Evaluator) Evaluate(n graph.NodeID) (graph.NodeID, error) {
	g := ev.G
	switch g.Kind(n) {
	case graph.KindClosure:
		bodyID, err := g.FollowEdge(n, graph.LabelBody, 0)
		if err != nil {
			return 0, err
		}
		q, err := ev.Evaluate(bodyID)
		if err != nil {
			return 0, err
		}
		// Forcing the body can strip n itself: if n's Body was a
		// variable bound to n and n had no other referrer,
		// EvaluateClosureParameter already migrated n's parents onto
		// that variable and deleted n. q is then the correct WHNF
		// representative in n's old place; there is nothing left to
		// redirect.
		if !g.Has(n) {
			return q, nil
		}
		if err := g.RedirectEdge(n, graph.LabelBody, 0, q); err != nil {
			return 0, err
		}
		return n, nil

	case graph.KindApplication:
		return ev.evalApplication(n)

	case graph.KindVariable:
		if g.VarKind(n) == graph.VarBound {
			return ev.evalVariable(n)
		}
		return n, nil

	case graph.KindData:
		tag := g.TagOf(n)
		if tag.Inert() {
			return n, nil
		}
		fn, ok := ev.builtins[tag.Kind]
		if !ok {
			return n, nil
		}
		ev.trace(RuleBuiltin, n)
		return fn(ev, n)

	default: // Lambda, Primitive, or anything unreachable
		return n, nil
	}
}

// evalApplication implements the Application rule: reduce the
// function side, repeatedly lift any closure chain that surfaces to
// expose the true head, then dispatch on what that head turns out to be.
func (ev *Evaluator) evalApplication(n graph.NodeID) (graph.NodeID, error) {
	g := ev.G

	funID, err := g.FollowEdge(n, graph.LabelFunction, 0)
	if err != nil {
		return 0, err
	}
	u, err := ev.Evaluate(funID)
	if err != nil {
		return 0, err
	}
	if err := g.RedirectEdge(n, graph.LabelFunction, 0, u); err != nil {
		return 0, err
	}

	// n itself never moves: lift rewires what owns n and what n's
	// Function edge points at, but n stays the Application whose
	// Parameter is the thing being applied. root tracks whichever node
	// now sits in n's old position — the first lift's closure, if any;
	// later lifts only rearrange nodes between that closure and n, so
	// root is set at most once.
	root := n
	for g.Kind(u) == graph.KindClosure {
		closureID, err := ev.lift(n)
		if err != nil {
			return 0, err
		}
		if root == n {
			root = closureID
		}
		u, err = g.FollowEdge(n, graph.LabelFunction, 0)
		if err != nil {
			return 0, invalidClosureChain(err)
		}
	}

	if g.Kind(u) == graph.KindLambda {
		return ev.fireApplication(n, u)
	}
	return root, nil // stuck on a non-lambda head: WHNF
}

// lift rewrites `((λx.E) e) a → ((λx.(E a)) e)` at the graph level: the
// closure above app (found in its Function position) becomes the new
// owner of app's former parents, app descends beneath it as the
// closure's Body, and app's Function edge is redirected to whatever the
// closure used to wrap. Returns the closure, now the root of this
// subexpression in app's stead.
func (ev *Evaluator) lift(appID graph.NodeID) (graph.NodeID, error) {
	ev.trace(RuleLift, appID)
	g := ev.G
	closureID, err := g.FollowEdge(appID, graph.LabelFunction, 0)
	if err != nil {
		return 0, invalidClosureChain(err)
	}
	inner, err := g.FollowEdge(closureID, graph.LabelBody, 0)
	if err != nil {
		return 0, invalidClosureChain(err)
	}
	if err := g.MigrateNode(appID, closureID); err != nil {
		return 0, err
	}
	if err := g.RedirectEdge(closureID, graph.LabelBody, 0, appID); err != nil {
		return 0, err
	}
	if err := g.RedirectEdge(appID, graph.LabelFunction, 0, inner); err != nil {
		return 0, err
	}
	return closureID, nil
}

// fireApplication handles an Application whose (post-lift) head is a
// genuine Lambda, dispatching to whichever of the three application
// sub-rules applies.
func (ev *Evaluator) fireApplication(appID, lambdaID graph.NodeID) (graph.NodeID, error) {
	g := ev.G

	if g.RefCount(lambdaID) == 0 {
		return ev.deadParameter(appID, lambdaID)
	}

	argID, err := g.FollowEdge(appID, graph.LabelParameter, 0)
	if err != nil {
		return 0, err
	}
	if g.Kind(argID) == graph.KindVariable && g.VarKind(argID) == graph.VarBound {
		return ev.indirection(appID, lambdaID, argID)
	}
	return ev.generalApply(appID, lambdaID, argID)
}

// deadParameter: the lambda's bound name has no referrers. Replace the
// application with the lambda body outright, without ever forcing the
// unused argument.
func (ev *Evaluator) deadParameter(appID, lambdaID graph.NodeID) (graph.NodeID, error) {
	ev.trace(RuleDeadParameter, appID)
	g := ev.G
	bodyID, err := g.FollowEdge(lambdaID, graph.LabelBody, 0)
	if err != nil {
		return 0, invalidClosureChain(err)
	}
	argID, err := g.FollowEdge(appID, graph.LabelParameter, 0)
	if err != nil {
		return 0, err
	}
	if err := g.MigrateNode(appID, bodyID); err != nil {
		return 0, err
	}
	g.RemoveNode(lambdaID)
	if err := g.RemoveSubtree(argID); err != nil {
		return 0, err
	}
	g.RemoveNode(appID)
	return ev.Evaluate(bodyID)
}

// indirection: the argument is itself a bound variable, so firing the
// lambda would only alias one binder to another. Rewire every reference
// of the lambda's binder onto the argument's true binder and discard
// both the lambda and the now-redundant argument variable.
func (ev *Evaluator) indirection(appID, lambdaID, argID graph.NodeID) (graph.NodeID, error) {
	ev.trace(RuleIndirection, appID)
	g := ev.G
	trueBinder := g.Binder(argID)
	if err := g.RewireBinder(lambdaID, trueBinder); err != nil {
		return 0, err
	}
	bodyID, err := g.FollowEdge(lambdaID, graph.LabelBody, 0)
	if err != nil {
		return 0, invalidClosureChain(err)
	}
	if err := g.MigrateNode(appID, bodyID); err != nil {
		return 0, err
	}
	g.RemoveNode(lambdaID)
	if err := g.RemoveSubtree(argID); err != nil {
		return 0, err
	}
	g.RemoveNode(appID)
	return ev.Evaluate(bodyID)
}

// generalApply: rewrite the lambda in place into a Closure holding the
// unevaluated argument, migrate the application's parents onto it, and
// descend. This is where a suspended binding — a closure — first comes
// into existence.
func (ev *Evaluator) generalApply(appID, lambdaID, argID graph.NodeID) (graph.NodeID, error) {
	ev.trace(RuleGeneralApply, appID)
	g := ev.G
	if err := g.ConvertLambdaToClosure(lambdaID); err != nil {
		return 0, err
	}
	if err := g.MigrateNode(appID, lambdaID); err != nil {
		return 0, err
	}
	if err := g.AddEdge(lambdaID, graph.LabelParameter, argID, 0); err != nil {
		return 0, err
	}
	g.RemoveNode(appID)
	return ev.Evaluate(lambdaID)
}

// evalVariable implements the bound-Variable rule: force the binding
// closure's parameter, then either take it directly (last reference)
// or clone it (still shared).
func (ev *Evaluator) evalVariable(n graph.NodeID) (graph.NodeID, error) {
	g := ev.G
	c := g.Binder(n)
	p, dangling, err := ev.EvaluateClosureParameter(c)
	if err != nil {
		return 0, err
	}
	if dangling {
		ev.trace(RuleLastReference, n)
		if err := g.MigrateNode(n, p); err != nil {
			return 0, err
		}
		g.RemoveNode(n)
		return p, nil
	}

	ev.trace(RuleSharedReference, n)
	remap := make(map[graph.NodeID]graph.NodeID)
	clone, err := g.CloneSubtree(p, remap)
	if err != nil {
		return 0, err
	}
	if err := g.MigrateNode(n, clone); err != nil {
		return 0, err
	}
	if err := g.RemoveEdge(n, graph.LabelBinder, 0); err != nil {
		return 0, err
	}
	g.RemoveNode(n)
	return clone, nil
}

// EvaluateClosureParameter is the linchpin of call-by-need in this
// design. It forces c's Parameter once, memoises the forced
// value back onto c, and then reports whether c has exactly one
// remaining referrer: if so, c itself is stripped (its parents migrated
// onto its Body) and the parameter is handed back dangling — ownerless —
// so the caller can take it without cloning.
func (ev *Evaluator) EvaluateClosureParameter(c graph.NodeID) (p graph.NodeID, dangling bool, err error) {
	g := ev.G
	param, err := g.FollowEdge(c, graph.LabelParameter, 0)
	if err != nil {
		return 0, false, err
	}
	q, err := ev.Evaluate(param)
	if err != nil {
		return 0, false, err
	}
	if err := g.RedirectEdge(c, graph.LabelParameter, 0, q); err != nil {
		return 0, false, err
	}

	if g.RefCount(c) > 1 {
		// q is already fully reduced, including any lift performed while
		// forcing it; a residual closure chain wrapping q is a legal WHNF
		// shape and needs no further rewrite.
		return q, false, nil
	}

	bodyID, err := g.FollowEdge(c, graph.LabelBody, 0)
	if err != nil {
		return 0, false, invalidClosureChain(err)
	}
	if err := g.MigrateNode(c, bodyID); err != nil {
		return 0, false, err
	}
	g.RemoveNode(c)
	return q, true, nil
}
