package invariants

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/vic/closurenet/pkg/graph"
)

// CheckAll runs every structural property check against g and returns
// their combined violations, or nil if the graph is well-formed.
func CheckAll(g *graph.Graph) error {
	var result *multierror.Error
	if err := checkRoot(g); err != nil {
		result = multierror.Append(result, err)
	}
	nodes := reachable(g)
	if err := checkBinderUniqueness(nodes, g); err != nil {
		result = multierror.Append(result, err)
	}
	if err := checkDataArity(nodes, g); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func checkRoot(g *graph.Graph) error {
	root := g.Root()
	if root == 0 {
		return nil
	}
	if !g.Has(root) {
		return fmt.Errorf("root node %d does not exist", root)
	}
	return nil
}

// reachable walks the ownership edges from root and returns every node
// found. Binder targets need no separate traversal: every live binder
// (Lambda or Closure) is itself owned somewhere in this same tree, so an
// ownership-only walk already reaches it.
func reachable(g *graph.Graph) []graph.NodeID {
	root := g.Root()
	seen := make(map[graph.NodeID]bool)
	var out []graph.NodeID
	var walk func(id graph.NodeID)
	walk = func(id graph.NodeID) {
		if id == 0 || seen[id] || !g.Has(id) {
			return
		}
		seen[id] = true
		out = append(out, id)
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
	return out
}

// checkBinderUniqueness checks that every Variable(Bound) in the
// reachable subgraph has exactly one Binder(0) edge, targeting a live
// Lambda or Closure. A Data node's Binder(i) edges target the same
// family of nodes before the collecting lambda chain has fired, so
// Lambda is accepted here alongside Closure — see DESIGN.md's
// resolution of the binder-uniqueness vs. data-arity tension.
func checkBinderUniqueness(nodes []graph.NodeID, g *graph.Graph) error {
	var result *multierror.Error
	for _, id := range nodes {
		if g.Kind(id) != graph.KindVariable || g.VarKind(id) != graph.VarBound {
			continue
		}
		b := g.Binder(id)
		if b == 0 {
			result = multierror.Append(result, fmt.Errorf("variable %d has no Binder(0) edge", id))
			continue
		}
		if !g.Has(b) {
			result = multierror.Append(result, fmt.Errorf("variable %d's Binder(0) targets dead node %d", id, b))
			continue
		}
		if k := g.Kind(b); k != graph.KindLambda && k != graph.KindClosure {
			result = multierror.Append(result, fmt.Errorf("variable %d's Binder(0) targets a %s, want Lambda or Closure", id, k))
		}
	}
	return result.ErrorOrNil()
}

// checkDataArity is invariant 2: every Data{tag} of arity k has exactly
// k Binder(i) edges, each targeting a distinct live binder node.
func checkDataArity(nodes []graph.NodeID, g *graph.Graph) error {
	var result *multierror.Error
	for _, id := range nodes {
		if g.Kind(id) != graph.KindData {
			continue
		}
		tag := g.TagOf(id)
		binders := g.Binders(id)
		if want := tag.Arity(); len(binders) != want {
			result = multierror.Append(result, fmt.Errorf("data %d (%s) has %d binders, want %d", id, tag, len(binders), want))
			continue
		}
		seen := make(map[graph.NodeID]bool)
		for i, b := range binders {
			if b == 0 {
				result = multierror.Append(result, fmt.Errorf("data %d (%s) missing Binder(%d)", id, tag, i))
				continue
			}
			if !g.Has(b) {
				result = multierror.Append(result, fmt.Errorf("data %d (%s) Binder(%d) targets dead node %d", id, tag, i, b))
				continue
			}
			if k := g.Kind(b); k != graph.KindLambda && k != graph.KindClosure {
				result = multierror.Append(result, fmt.Errorf("data %d (%s) Binder(%d) targets a %s, want Lambda or Closure", id, tag, i, k))
			}
			if seen[b] {
				result = multierror.Append(result, fmt.Errorf("data %d (%s) Binder(%d) duplicates another binder's target %d", id, tag, i, b))
			}
			seen[b] = true
		}
	}
	return result.ErrorOrNil()
}
