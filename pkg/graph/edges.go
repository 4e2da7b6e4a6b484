package graph

// isBinderTarget reports whether k is a valid target kind for a Binder
// edge. A bound Variable's Binder(0) edge names Lambda or Closure
// explicitly; the same holds for Data's Binder(i) targets once their
// collecting lambda has fired and rewritten itself into a Closure in
// place.
// Before that first application fires, a builtin's saturating chain
// (graph.NewSaturatingChain) targets the Lambda itself — the same
// NodeID simply becomes a Closure in place later, so no edge ever needs
// to move.
func isBinderTarget(k Kind) bool {
	return k == KindLambda || k == KindClosure
}

// AddEdge installs a labelled edge from `from` to `to`. For Body,
// Function and Parameter this is an ownership edge: `to` gains `from`
// as its unique parent. For Binder it is a reference edge: `to`'s
// incoming-reference count is incremented and no parent is recorded.
// Debug edges carry no semantics and are tracked only for round-trip
// dumping. index selects the Binder slot for Data nodes and must be 0
// for every other label.
func (g *Graph) AddEdge(from NodeID, label Label, to NodeID, index int) error {
	src, err := g.get(from)
	if err != nil {
		return err
	}
	dst, err := g.get(to)
	if err != nil {
		return err
	}

	switch label {
	case LabelBody:
		src.body = to
		dst.parent = &edgeRef{node: from, label: LabelBody}
	case LabelFunction:
		src.function = to
		dst.parent = &edgeRef{node: from, label: LabelFunction}
	case LabelParameter:
		src.parameter = to
		dst.parent = &edgeRef{node: from, label: LabelParameter}
	case LabelBinder:
		if !isBinderTarget(dst.kind) {
			return parentError("Binder edge from %d must target a Lambda or Closure, got %s", from, dst.kind)
		}
		switch src.kind {
		case KindVariable:
			src.binder = to
		case KindData:
			if index < 0 || index >= len(src.binders) {
				return parentError("Binder(%d) out of range for Data node %d of arity %d", index, from, len(src.binders))
			}
			src.binders[index] = to
		default:
			return parentError("Binder edges originate only from Variable or Data nodes, got %s", src.kind)
		}
		dst.refs = append(dst.refs, refEntry{from: from, index: index})
	case LabelDebug:
		src.debug = append(src.debug, dst.kind.String())
	}
	return nil
}

// RemoveEdge removes the labelled edge from `from`, clearing the
// target's parent pointer (ownership edges) or decrementing its
// reference count (Binder edges).
func (g *Graph) RemoveEdge(from NodeID, label Label, index int) error {
	src, err := g.get(from)
	if err != nil {
		return err
	}

	var target NodeID
	switch label {
	case LabelBody:
		target = src.body
		src.body = 0
	case LabelFunction:
		target = src.function
		src.function = 0
	case LabelParameter:
		target = src.parameter
		src.parameter = 0
	case LabelBinder:
		switch src.kind {
		case KindVariable:
			target = src.binder
			src.binder = 0
		case KindData:
			if index < 0 || index >= len(src.binders) {
				return parentError("Binder(%d) out of range for Data node %d", index, from)
			}
			target = src.binders[index]
			src.binders[index] = 0
		}
	}
	if target == 0 {
		return nil
	}
	dst, ok := g.nodes[target]
	if !ok {
		return nil
	}
	if label == LabelBinder {
		dst.refs = removeRefEntry(dst.refs, from, index)
	} else if dst.parent != nil && dst.parent.node == from && dst.parent.label == label {
		dst.parent = nil
	}
	return nil
}

// removeRefEntry drops the first entry matching (from, index) from refs.
func removeRefEntry(refs []refEntry, from NodeID, index int) []refEntry {
	for i, r := range refs {
		if r.from == from && r.index == index {
			return append(refs[:i], refs[i+1:]...)
		}
	}
	return refs
}

// FollowEdge returns the unique target of a labelled edge, or
// ErrEdgeNotFound if no such edge exists.
func (g *Graph) FollowEdge(from NodeID, label Label, index int) (NodeID, error) {
	src, err := g.get(from)
	if err != nil {
		return 0, err
	}

	var target NodeID
	switch label {
	case LabelBody:
		target = src.body
	case LabelFunction:
		target = src.function
	case LabelParameter:
		target = src.parameter
	case LabelBinder:
		switch src.kind {
		case KindVariable:
			target = src.binder
		case KindData:
			if index < 0 || index >= len(src.binders) {
				return 0, edgeNotFound(from, label, index)
			}
			target = src.binders[index]
		}
	}
	if target == 0 {
		return 0, edgeNotFound(from, label, index)
	}
	return target, nil
}

// RedirectEdge changes an existing edge's target without touching the
// source's other edges. It is RemoveEdge followed by AddEdge, exposed
// as one call because the lift and indirection rewrites perform this
// repeatedly and atomically from the caller's point of view.
func (g *Graph) RedirectEdge(from NodeID, label Label, index int, newTarget NodeID) error {
	if err := g.RemoveEdge(from, label, index); err != nil {
		return err
	}
	return g.AddEdge(from, label, newTarget, index)
}

// RefCount returns the number of incoming Binder edges referencing id.
// Used by EvaluateClosureParameter to distinguish the shared case
// from the last-reference case, and by the general application rule
// to detect a dead parameter, in O(1) (len of a slice).
func (g *Graph) RefCount(id NodeID) int {
	n, err := g.get(id)
	if err != nil {
		return 0
	}
	return len(n.refs)
}

// RewireBinder redirects every incoming Binder edge of oldBinder onto
// newBinder in a single pass: each referencing Variable's binder field, or
// Data node's Binder(i) slot, is updated and the referrer record moves
// from oldBinder's list to newBinder's. This is the bulk rewrite the
// indirection shortcut needs: rewiring every reference of the
// lambda's binder to the variable's true binder.
func (g *Graph) RewireBinder(oldBinder, newBinder NodeID) error {
	old, err := g.get(oldBinder)
	if err != nil {
		return err
	}
	newDst, err := g.get(newBinder)
	if err != nil {
		return err
	}

	snapshot := append([]refEntry(nil), old.refs...)
	for _, r := range snapshot {
		src, err := g.get(r.from)
		if err != nil {
			return err
		}
		switch src.kind {
		case KindVariable:
			src.binder = newBinder
		case KindData:
			if r.index < 0 || r.index >= len(src.binders) {
				return parentError("Binder(%d) out of range for Data node %d", r.index, r.from)
			}
			src.binders[r.index] = newBinder
		default:
			return parentError("rewire_binder: referrer %d has unexpected kind %s", r.from, src.kind)
		}
		newDst.refs = append(newDst.refs, r)
	}
	old.refs = nil
	return nil
}

// MigrateNode redirects every non-Binder incoming edge of `from` to
// `to`. If `from` was the root, `to` becomes the new root. `from` is
// left parentless (dangling); the caller takes ownership of disposing
// of it (it is never itself deleted by MigrateNode).
func (g *Graph) MigrateNode(from, to NodeID) error {
	src, err := g.get(from)
	if err != nil {
		return err
	}
	dstNode, err := g.get(to)
	if err != nil {
		return err
	}

	if src.parent == nil {
		if g.root == from {
			g.root = to
		}
		dstNode.parent = nil
		return nil
	}

	parent, err := g.get(src.parent.node)
	if err != nil {
		return err
	}
	switch src.parent.label {
	case LabelBody:
		parent.body = to
	case LabelFunction:
		parent.function = to
	case LabelParameter:
		parent.parameter = to
	default:
		return parentError("migrate_node: unexpected ownership label %s", src.parent.label)
	}
	dstNode.parent = src.parent
	src.parent = nil
	return nil
}

// RemoveSubtree deletes n and every node reachable from it via
// non-Binder (ownership) edges. Binder targets are dereferenced (their
// refCount is decremented) but never themselves deleted here, since a
// Binder edge is a reference, not ownership (invariant 3).
func (g *Graph) RemoveSubtree(id NodeID) error {
	n, ok := g.nodes[id]
	if !ok {
		return nil // already gone; idempotent
	}

	switch n.kind {
	case KindLambda:
		if err := g.RemoveSubtree(n.body); err != nil {
			return err
		}
	case KindClosure:
		if err := g.RemoveSubtree(n.body); err != nil {
			return err
		}
		if err := g.RemoveSubtree(n.parameter); err != nil {
			return err
		}
	case KindApplication:
		if err := g.RemoveSubtree(n.function); err != nil {
			return err
		}
		if err := g.RemoveSubtree(n.parameter); err != nil {
			return err
		}
	case KindVariable:
		if n.varKind == VarBound {
			g.deref(n.binder, id, 0)
		}
	case KindData:
		for i, b := range n.binders {
			g.deref(b, id, i)
		}
	case KindPrimitive:
		// leaf
	}

	delete(g.nodes, id)
	return nil
}

// deref drops referrer (from, index)'s entry from binder's list without
// deleting binder itself; a Binder edge is a reference, not ownership.
func (g *Graph) deref(binder, from NodeID, index int) {
	if binder == 0 {
		return
	}
	if n, ok := g.nodes[binder]; ok {
		n.refs = removeRefEntry(n.refs, from, index)
	}
}

// RemoveNode deletes exactly the node named by id, without recursing into
// whatever its own edges still point at. Use this (a plain node
// removal, as distinct from RemoveSubtree) when the caller has
// already migrated or otherwise disposed of everything id used to own —
// e.g. the dead-parameter and indirection shortcuts, which repurpose a
// lambda's body before discarding the lambda wrapper itself.
func (g *Graph) RemoveNode(id NodeID) {
	delete(g.nodes, id)
}

// CloneSubtree returns a deep copy of the subtree rooted at n. Every
// node and non-Binder edge is duplicated; Binder edges are rewritten
// through remap (old binder -> fresh copy) when the binder lies inside
// the cloned region, and otherwise left pointing at the original binder
// node, whose reference count is incremented — the only operation that
// creates sharing into binders living above the clone.
func (g *Graph) CloneSubtree(id NodeID, remap map[NodeID]NodeID) (NodeID, error) {
	n, err := g.get(id)
	if err != nil {
		return 0, err
	}

	switch n.kind {
	case KindPrimitive:
		fresh := g.alloc(KindPrimitive)
		fresh.prim = n.prim
		return fresh.id, nil

	case KindVariable:
		if n.varKind == VarFree {
			fresh := g.alloc(KindVariable)
			fresh.varKind = VarFree
			fresh.free = n.free
			return fresh.id, nil
		}
		target := n.binder
		if mapped, ok := remap[target]; ok {
			target = mapped
		}
		freshID := g.NewBoundVariable()
		if err := g.AddEdge(freshID, LabelBinder, target, 0); err != nil {
			return 0, err
		}
		return freshID, nil

	case KindLambda:
		freshID := g.NewLambda(n.name)
		remap[id] = freshID
		newBody, err := g.CloneSubtree(n.body, remap)
		if err != nil {
			return 0, err
		}
		if err := g.AddEdge(freshID, LabelBody, newBody, 0); err != nil {
			return 0, err
		}
		return freshID, nil

	case KindClosure:
		fresh := g.alloc(KindClosure)
		fresh.name = n.name
		remap[id] = fresh.id
		newBody, err := g.CloneSubtree(n.body, remap)
		if err != nil {
			return 0, err
		}
		newParam, err := g.CloneSubtree(n.parameter, remap)
		if err != nil {
			return 0, err
		}
		if err := g.AddEdge(fresh.id, LabelBody, newBody, 0); err != nil {
			return 0, err
		}
		if err := g.AddEdge(fresh.id, LabelParameter, newParam, 0); err != nil {
			return 0, err
		}
		return fresh.id, nil

	case KindApplication:
		freshID := g.NewApplication()
		newFun, err := g.CloneSubtree(n.function, remap)
		if err != nil {
			return 0, err
		}
		newArg, err := g.CloneSubtree(n.parameter, remap)
		if err != nil {
			return 0, err
		}
		if err := g.AddEdge(freshID, LabelFunction, newFun, 0); err != nil {
			return 0, err
		}
		if err := g.AddEdge(freshID, LabelParameter, newArg, 0); err != nil {
			return 0, err
		}
		return freshID, nil

	case KindData:
		freshID := g.NewData(n.tag)
		for i, b := range n.binders {
			target := b
			if mapped, ok := remap[target]; ok {
				target = mapped
			}
			if err := g.AddEdge(freshID, LabelBinder, target, i); err != nil {
				return 0, err
			}
		}
		return freshID, nil

	default:
		return 0, parentError("clone_subtree: unknown node kind %s", n.kind)
	}
}
