package network

import (
	"slices"

	"github.com/matzehuels/mulnet/pkg/dag"
	"github.com/matzehuels/mulnet/pkg/dag/transform"
	"github.com/matzehuels/mulnet/pkg/errors"
)

// Network is an immutable, validated phylogenetic network.
type Network struct {
	g     *dag.DAG
	root  string
	retic []string
}

// New validates g and returns a frozen copy of it. Node kinds in the copy
// follow in-degree, see [transform.NormalizeReticulations]. Invalid graphs are
// reported as STRUCTURAL_ERROR wrapping the dag sentinel.
func New(g *dag.DAG) (*Network, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "network graph is nil")
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStructural, err, "invalid network")
	}
	c := g.Clone()
	transform.NormalizeReticulations(c)
	root, _ := c.Root()
	n := &Network{g: c, root: root}
	for _, node := range c.Nodes() {
		if c.InDegree(node.ID) > 1 {
			n.retic = append(n.retic, node.ID)
		}
	}
	return n, nil
}

// Root returns the ID of the root node.
func (n *Network) Root() string { return n.root }

// Node returns a copy of the node with the given ID.
func (n *Network) Node(id string) (dag.Node, bool) {
	node, ok := n.g.Node(id)
	if !ok {
		return dag.Node{}, false
	}
	return *node, true
}

// Nodes returns copies of all nodes in insertion order.
func (n *Network) Nodes() []dag.Node {
	nodes := n.g.Nodes()
	out := make([]dag.Node, len(nodes))
	for i, node := range nodes {
		out[i] = *node
	}
	return out
}

// Edges returns all edges in insertion order.
func (n *Network) Edges() []dag.Edge { return n.g.Edges() }

// Children returns the IDs of id's children, one entry per edge.
func (n *Network) Children(id string) []string { return slices.Clone(n.g.Children(id)) }

// Parents returns the IDs of id's parents, one entry per edge.
func (n *Network) Parents(id string) []string { return slices.Clone(n.g.Parents(id)) }

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return n.g.NodeCount() }

// EdgeCount returns the number of edges.
func (n *Network) EdgeCount() int { return n.g.EdgeCount() }

// Label returns the display label of a node: the taxon for leaves, empty
// otherwise.
func (n *Network) Label(id string) string {
	if node, ok := n.g.Node(id); ok {
		return node.Label
	}
	return ""
}

// IsReticulation reports whether id has more than one incoming edge.
func (n *Network) IsReticulation(id string) bool { return n.g.InDegree(id) > 1 }

// Graph returns a mutable copy of the underlying graph.
func (n *Network) Graph() *dag.DAG { return n.g.Clone() }
