package driver

import (
	"github.com/hashicorp/go-hclog"

	"github.com/vic/closurenet/pkg/graph"
	"github.com/vic/closurenet/pkg/reduce"
)

// Tracer accumulates the evaluator's rewrite events and, on request,
// logs them and a snapshot of the graph's current shape. Each recorded
// event is a step counter, a rule, and the node it fired on; there is
// no atomic index or fixed capacity because only one rewrite is ever in
// flight at a time.
type Tracer struct {
	log    hclog.Logger
	events []traceEvent
}

type traceEvent struct {
	step uint64
	rule reduce.RuleKind
	node graph.NodeID
}

// NewTracer returns a Tracer that logs each recorded rewrite to log at
// debug level as it happens.
func NewTracer(log hclog.Logger) *Tracer {
	return &Tracer{log: log}
}

// Hook returns the reduce.Evaluator.Trace callback that feeds this
// tracer. Wire it in with `ev.Trace = tracer.Hook()`.
func (t *Tracer) Hook() func(rule reduce.RuleKind, n graph.NodeID) {
	return func(rule reduce.RuleKind, n graph.NodeID) {
		ev := traceEvent{step: uint64(len(t.events)), rule: rule, node: n}
		t.events = append(t.events, ev)
		t.log.Debug("rewrite", "step", ev.step, "rule", rule.String(), "node", n)
	}
}

// Events returns every rewrite recorded so far, in firing order.
func (t *Tracer) Events() []traceEvent {
	return t.events
}

// DumpGraph logs a line-oriented description of every node reachable
// from root: its id, kind, and Debug annotations. Outgoing edges are
// followed to reach the other nodes but are not themselves listed. The
// Debug annotations are included since this is purely a human reader's
// aid and they carry no semantics for evaluation to ignore.
func DumpGraph(log hclog.Logger, g *graph.Graph, root graph.NodeID) {
	seen := make(map[graph.NodeID]bool)
	var walk func(id graph.NodeID)
	walk = func(id graph.NodeID) {
		if id == 0 || seen[id] || !g.Has(id) {
			return
		}
		seen[id] = true
		log.Debug("node", "id", id, "kind", g.Kind(id).String(), "debug", g.DebugAnnotations(id))
		switch g.Kind(id) {
		case graph.KindLambda:
			walk(g.Body(id))
		case graph.KindClosure:
			walk(g.Body(id))
			walk(g.Parameter(id))
		case graph.KindApplication:
			walk(g.Function(id))
			walk(g.Parameter(id))
		case graph.KindData:
			for _, b := range g.Binders(id) {
				walk(b)
			}
		}
	}
	walk(root)
}
