package fold

import (
	"github.com/matzehuels/mulnet/pkg/dag"
	"github.com/matzehuels/mulnet/pkg/mtree"
)

// builder holds the graph under construction and the mapping from tree
// nodes to graph IDs.
type builder struct {
	g   *dag.DAG
	ids map[*mtree.Node]string
	reg *registry
}

// Naive returns a DAG with the same shape as t: one node per tree node and
// one edge per parent-child link. Leaves keep their taxon label; internal
// labels are dropped. An empty tree yields an empty graph.
func Naive(t *mtree.Tree) *dag.DAG {
	return newBuilder(t).g
}

func newBuilder(t *mtree.Tree) *builder {
	b := &builder{g: dag.New(), ids: make(map[*mtree.Node]string), reg: newRegistry()}
	t.Walk(func(n *mtree.Node) {
		id := b.reg.id(prefixNode)
		b.ids[n] = id
		node := dag.Node{ID: id, Origin: n}
		if n.IsLeaf() {
			node.Label = n.Label
		}
		_ = b.g.AddNode(node)
		if p := n.Parent(); p != nil {
			_ = b.g.AddEdge(dag.Edge{From: b.ids[p], To: id, Length: n.Length, HasLength: n.HasLength})
		}
	})
	return b
}

// present filters group down to members still in the graph, preserving
// order.
func (b *builder) present(group []*mtree.Node) []string {
	var out []string
	for _, n := range group {
		id := b.ids[n]
		if _, ok := b.g.Node(id); ok {
			out = append(out, id)
		}
	}
	return out
}

// insertReticulation places a new reticulation on the edge parent→child.
// The parent→reticulation edge carries the original edge's length.
func (b *builder) insertReticulation(parent, child string) string {
	r := b.reg.id(prefixReticulation)
	_ = b.g.AddNode(dag.Node{ID: r, Kind: dag.NodeKindReticulation})
	e, _ := b.g.RemoveEdge(parent, child)
	_ = b.g.AddEdge(dag.Edge{From: parent, To: r, Length: e.Length, HasLength: e.HasLength})
	_ = b.g.AddEdge(dag.Edge{From: r, To: child})
	return r
}

// redirect moves the parent edge of dup onto target and deletes dup's
// subtree.
func (b *builder) redirect(dup, target string) {
	parent := b.g.Parents(dup)[0]
	e, _ := b.g.RemoveEdge(parent, dup)
	_ = b.g.AddEdge(dag.Edge{From: parent, To: target, Length: e.Length, HasLength: e.HasLength})
	b.g.RemoveSubtree(dup)
}

// merge folds a set of equivalent nodes into one copy. The first member is
// kept; members is expected to hold at least two surviving IDs. It returns
// the number of reticulations created.
func (b *builder) merge(members []string) int {
	if len(members) < 2 {
		return 0
	}
	leader := members[0]
	parents := b.g.Parents(leader)
	if len(parents) == 0 {
		return 0
	}

	r := b.insertReticulation(parents[0], leader)
	b.redirect(members[1], r)
	created := 1
	for _, dup := range members[2:] {
		// Chain one more reticulation between the last one and the leader so
		// every reticulation keeps two parents.
		r = b.insertReticulation(r, leader)
		b.redirect(dup, r)
		created++
	}
	return created
}
