package transform

import "github.com/matzehuels/mulnet/pkg/dag"

// NormalizeReticulations makes node kinds agree with the graph shape: a node
// with more than one parent is a reticulation, and a node marked as a
// reticulation with at most one parent becomes a tree node. Sources keep
// their kind so that [dag.DAG.Validate] can still reject a reticulate root.
//
// It returns the number of nodes whose kind changed.
func NormalizeReticulations(g *dag.DAG) int {
	changed := 0
	for _, n := range g.Nodes() {
		in := g.InDegree(n.ID)
		switch {
		case in > 1 && n.Kind != dag.NodeKindReticulation:
			n.Kind = dag.NodeKindReticulation
			changed++
		case in == 1 && n.Kind == dag.NodeKindReticulation:
			n.Kind = dag.NodeKindTree
			changed++
		}
	}
	return changed
}
