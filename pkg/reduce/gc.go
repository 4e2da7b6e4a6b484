package reduce

import "github.com/vic/closurenet/pkg/graph"

// PrePassGC runs before the first Evaluate call, stripping every
// Closure with no incoming Binder edge (migrate its parents onto
// its Body, delete the closure, then delete its Parameter subtree
// outright), repeating until no such closure remains. Returns the
// number of closures removed.
func PrePassGC(g *graph.Graph) (int, error) {
	removed := 0
	for {
		progressed := false
		for _, id := range g.Nodes() {
			if !g.Has(id) || g.Kind(id) != graph.KindClosure || g.RefCount(id) != 0 {
				continue
			}
			bodyID, err := g.FollowEdge(id, graph.LabelBody, 0)
			if err != nil {
				return removed, invalidClosureChain(err)
			}
			paramID, err := g.FollowEdge(id, graph.LabelParameter, 0)
			if err != nil {
				return removed, invalidClosureChain(err)
			}
			if err := g.MigrateNode(id, bodyID); err != nil {
				return removed, err
			}
			g.RemoveNode(id)
			if err := g.RemoveSubtree(paramID); err != nil {
				return removed, err
			}
			removed++
			progressed = true
		}
		if !progressed {
			return removed, nil
		}
	}
}
