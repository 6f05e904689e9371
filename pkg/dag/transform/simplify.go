package transform

import "github.com/matzehuels/mulnet/pkg/dag"

// Simplify removes every synthetic node with exactly one parent and one
// child, connecting the parent directly to the child. It returns the number
// of nodes removed.
//
// The spliced edge keeps the length of the incoming edge; if only the
// outgoing edge carries a length, that one is used. Reticulation and tree
// nodes are left alone, so reticulations keep their in-degree.
func Simplify(g *dag.DAG) int {
	removed := 0
	for _, n := range g.Nodes() {
		if !n.IsSynthetic() || g.InDegree(n.ID) != 1 || g.OutDegree(n.ID) != 1 {
			continue
		}
		parent, child := g.Parents(n.ID)[0], g.Children(n.ID)[0]
		in, _ := g.RemoveEdge(parent, n.ID)
		out, _ := g.RemoveEdge(n.ID, child)
		spliced := dag.Edge{From: parent, To: child, Length: in.Length, HasLength: in.HasLength}
		if !in.HasLength && out.HasLength {
			spliced.Length, spliced.HasLength = out.Length, true
		}
		g.RemoveNode(n.ID)
		_ = g.AddEdge(spliced)
		removed++
	}
	return removed
}
