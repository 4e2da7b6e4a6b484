package graph

// The accessors below expose a Node's kind-specific fields to other
// packages (reduce, builtins, term, driver). Graph is the sole owner of
// node storage; everyone else reaches nodes only through these calls so
// that bookkeeping (refCount, parent) stays consistent.

// Name returns the bound name of a Lambda or Closure node.
func (g *Graph) Name(id NodeID) string {
	if n, ok := g.nodes[id]; ok {
		return n.name
	}
	return ""
}

// Body returns the Body edge target of a Lambda or Closure node.
func (g *Graph) Body(id NodeID) NodeID {
	if n, ok := g.nodes[id]; ok {
		return n.body
	}
	return 0
}

// Function returns the Function edge target of an Application node.
func (g *Graph) Function(id NodeID) NodeID {
	if n, ok := g.nodes[id]; ok {
		return n.function
	}
	return 0
}

// Parameter returns the Parameter edge target of an Application or
// Closure node.
func (g *Graph) Parameter(id NodeID) NodeID {
	if n, ok := g.nodes[id]; ok {
		return n.parameter
	}
	return 0
}

// VarKind returns whether a Variable node is Free or Bound.
func (g *Graph) VarKind(id NodeID) VarKind {
	if n, ok := g.nodes[id]; ok {
		return n.varKind
	}
	return VarFree
}

// FreeName returns the interned name of a free Variable node.
func (g *Graph) FreeName(id NodeID) string {
	if n, ok := g.nodes[id]; ok {
		return n.free
	}
	return ""
}

// Binder returns a bound Variable's Binder(0) target.
func (g *Graph) Binder(id NodeID) NodeID {
	if n, ok := g.nodes[id]; ok {
		return n.binder
	}
	return 0
}

// TagOf returns a Data node's constructor tag.
func (g *Graph) TagOf(id NodeID) Tag {
	if n, ok := g.nodes[id]; ok {
		return n.tag
	}
	return Tag{}
}

// Binders returns a copy of a Data node's Binder(i) targets.
func (g *Graph) Binders(id NodeID) []NodeID {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	out := make([]NodeID, len(n.binders))
	copy(out, n.binders)
	return out
}

// PrimitiveOf returns a Primitive node's immediate value.
func (g *Graph) PrimitiveOf(id NodeID) Primitive {
	if n, ok := g.nodes[id]; ok {
		return n.prim
	}
	return Primitive{}
}

// SetName overwrites a Lambda/Closure node's bound name. Used when
// rewriting a Lambda into a Closure in place.
func (g *Graph) SetName(id NodeID, name string) {
	if n, ok := g.nodes[id]; ok {
		n.name = name
	}
}

// ConvertLambdaToClosure rewrites n from a Lambda into a Closure in
// place, preserving its id and Body edge (and hence every existing
// Binder edge pointing at it — the general application rule relies
// on this identity-preserving rewrite). The caller must still attach
// the Parameter edge.
func (g *Graph) ConvertLambdaToClosure(id NodeID) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	if n.kind != KindLambda {
		return parentError("node %d is not a Lambda, cannot convert to Closure", id)
	}
	n.kind = KindClosure
	return nil
}

// DebugAnnotations returns the labels attached via Debug edges, in
// insertion order. They carry no semantics and exist only for the
// human-readable dump.
func (g *Graph) DebugAnnotations(id NodeID) []string {
	if n, ok := g.nodes[id]; ok {
		return n.debug
	}
	return nil
}

// Referrer names one incoming Binder edge, as returned by Referrers.
type Referrer struct {
	Node  NodeID
	Index int
}

// Referrers returns every incoming Binder edge on id, in no particular
// order. Used by invariant checks that need to confirm each referrer
// still resolves to a live node of the right kind.
func (g *Graph) Referrers(id NodeID) []Referrer {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	out := make([]Referrer, len(n.refs))
	for i, r := range n.refs {
		out[i] = Referrer{Node: r.from, Index: r.index}
	}
	return out
}

// Nodes returns every live node id. Intended for invariant scans and
// the pre-pass GC sweep, which both need a stable snapshot to iterate
// while mutating the underlying map.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	return out
}
