package dag

import (
	"errors"
	"slices"

	"github.com/matzehuels/mulnet/pkg/mtree"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [DAG.Validate] when an edge
	// references a node that doesn't exist. This indicates graph corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	// Cycles are detected using depth-first search with white/gray/black
	// coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrNoRoot is returned by [DAG.Root] for an empty graph or a graph in
	// which every node has a parent.
	ErrNoRoot = errors.New("graph has no root")

	// ErrMultipleRoots is returned by [DAG.Root] when more than one node has
	// in-degree 0.
	ErrMultipleRoots = errors.New("graph has more than one root")

	// ErrReticulateRoot is returned by [DAG.Root] when the only in-degree 0
	// node is marked as a reticulation.
	ErrReticulateRoot = errors.New("root is a reticulation node")
)

// NodeKind distinguishes tree nodes from reticulations and structural
// helpers.
type NodeKind int

const (
	// NodeKindTree represents a leaf or a tree node.
	NodeKindTree NodeKind = iota
	// NodeKindReticulation represents a node where two lineages merge.
	NodeKindReticulation
	// NodeKindSynthetic represents a structural helper node with no
	// biological meaning.
	NodeKindSynthetic
)

// String returns the lower-case kind name used in JSON and DOT output.
func (k NodeKind) String() string {
	switch k {
	case NodeKindReticulation:
		return "reticulation"
	case NodeKindSynthetic:
		return "synthetic"
	default:
		return "tree"
	}
}

// Node is a vertex of the network.
//
// The zero value is not usable - ID must be set before adding to a DAG.
type Node struct {
	ID    string // Unique identifier
	Label string // Taxon label for leaves, empty otherwise
	Kind  NodeKind

	// Origin links a node derived by folding back to its tree node.
	// It is nil for reticulations and for nodes parsed from text.
	Origin *mtree.Node
}

// IsReticulation reports whether the node is marked as a reticulation.
// [DAG.IsReticulation] decides from the graph shape instead.
func (n Node) IsReticulation() bool { return n.Kind == NodeKindReticulation }

// IsSynthetic reports whether the node is a structural helper.
func (n Node) IsSynthetic() bool { return n.Kind == NodeKindSynthetic }

// Edge is a directed parent→child connection. Length is the branch length
// and is meaningful only when HasLength is set.
type Edge struct {
	From      string
	To        string
	Length    float64
	HasLength bool
}

// DAG is a directed acyclic graph of network nodes.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []string            // insertion order of node IDs
	edges    []Edge              // insertion order of edges
	outgoing map[string][]string // nodeID -> children IDs (one entry per edge)
	incoming map[string][]string // nodeID -> parent IDs (one entry per edge)
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode if the From node doesn't exist, or
// ErrUnknownTargetNode if the To node doesn't exist.
//
// AddEdge does not check for cycles - use Validate after building the graph.
// Multiple edges between the same nodes are allowed.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes one edge from→to and returns it.
// If several parallel edges exist only the first is removed; ok is false if
// there is none.
func (d *DAG) RemoveEdge(from, to string) (Edge, bool) {
	i := slices.IndexFunc(d.edges, func(e Edge) bool { return e.From == from && e.To == to })
	if i < 0 {
		return Edge{}, false
	}
	e := d.edges[i]
	d.edges = slices.Delete(d.edges, i, i+1)
	d.outgoing[from] = deleteFirst(d.outgoing[from], to)
	d.incoming[to] = deleteFirst(d.incoming[to], from)
	return e, true
}

func deleteFirst(ids []string, id string) []string {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}

// RemoveNode deletes the node and every edge touching it.
// No error is returned if the node does not exist.
func (d *DAG) RemoveNode(id string) {
	if _, ok := d.nodes[id]; !ok {
		return
	}
	for _, c := range d.outgoing[id] {
		d.incoming[c] = slices.DeleteFunc(d.incoming[c], func(s string) bool { return s == id })
	}
	for _, p := range d.incoming[id] {
		d.outgoing[p] = slices.DeleteFunc(d.outgoing[p], func(s string) bool { return s == id })
	}
	d.edges = slices.DeleteFunc(d.edges, func(e Edge) bool { return e.From == id || e.To == id })
	delete(d.outgoing, id)
	delete(d.incoming, id)
	delete(d.nodes, id)
	d.order = deleteFirst(d.order, id)
}

// RemoveSubtree deletes id and every node reachable from it, returning the
// number of nodes removed.
func (d *DAG) RemoveSubtree(id string) int {
	if _, ok := d.nodes[id]; !ok {
		return 0
	}
	doomed := append([]string{id}, d.Descendants(id)...)
	for _, n := range doomed {
		d.RemoveNode(n)
	}
	return len(doomed)
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs, so modifications affect the graph.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, len(d.order))
	for i, id := range d.order {
		nodes[i] = d.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// EdgeBetween returns the first edge from→to.
func (d *DAG) EdgeBetween(from, to string) (Edge, bool) {
	for _, e := range d.edges {
		if e.From == from && e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of the node's children, one entry per edge.
// The returned slice should not be modified - use it as a read-only view.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of the node's parents, one entry per edge.
// The returned slice should not be modified - use it as a read-only view.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Node returns the node with the given ID and true, or nil and false if not
// found.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// IsReticulation reports whether id has more than one incoming edge.
func (d *DAG) IsReticulation(id string) bool { return len(d.incoming[id]) > 1 }

// Sources returns nodes with no incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, d.nodes[id])
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges (the leaves), in insertion order.
func (d *DAG) Sinks() []*Node {
	var sinks []*Node
	for _, id := range d.order {
		if len(d.outgoing[id]) == 0 {
			sinks = append(sinks, d.nodes[id])
		}
	}
	return sinks
}

// Root returns the ID of the single node with in-degree 0.
func (d *DAG) Root() (string, error) {
	sources := d.Sources()
	switch {
	case len(sources) == 0:
		return "", ErrNoRoot
	case len(sources) > 1:
		return "", ErrMultipleRoots
	case sources[0].IsReticulation():
		return "", ErrReticulateRoot
	}
	return sources[0].ID, nil
}

// Descendants returns every node reachable from id, excluding id itself, in
// depth-first pre-order. Nodes reachable along several paths appear once.
func (d *DAG) Descendants(id string) []string {
	seen := map[string]bool{id: true}
	var out []string
	var visit func(string)
	visit = func(n string) {
		for _, c := range d.outgoing[n] {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
			visit(c)
		}
	}
	visit(id)
	return out
}

// Subgraph returns a new DAG induced by id and its descendants. Node
// insertion order follows the parent graph.
func (d *DAG) Subgraph(id string) *DAG {
	sub := New()
	if _, ok := d.nodes[id]; !ok {
		return sub
	}
	keep := map[string]bool{id: true}
	for _, n := range d.Descendants(id) {
		keep[n] = true
	}
	for _, n := range d.order {
		if keep[n] {
			_ = sub.AddNode(*d.nodes[n])
		}
	}
	for _, e := range d.edges {
		if keep[e.From] && keep[e.To] {
			_ = sub.AddEdge(e)
		}
	}
	return sub
}

// Clone returns a deep copy of the graph. Origin pointers are shared.
func (d *DAG) Clone() *DAG {
	c := New()
	for _, id := range d.order {
		_ = c.AddNode(*d.nodes[id])
	}
	for _, e := range d.edges {
		_ = c.AddEdge(e)
	}
	return c
}

// Validate checks graph integrity and returns nil if valid.
// It verifies three constraints:
//
//  1. All edges connect existing nodes
//  2. The graph is acyclic (no directed cycles exist)
//  3. There is exactly one root and it is not a reticulation
//
// Returns ErrInvalidEdgeEndpoint, ErrGraphHasCycle, or one of the
// errors of [DAG.Root].
//
// Cycle detection runs in O(N+E) time using depth-first search.
func (d *DAG) Validate() error {
	if err := d.validateEdgeConsistency(); err != nil {
		return err
	}
	if err := d.detectCycles(); err != nil {
		return err
	}
	_, err := d.Root()
	return err
}

func (d *DAG) validateEdgeConsistency() error {
	for _, e := range d.edges {
		_, okS := d.nodes[e.From]
		_, okD := d.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
	}
	return nil
}

func (d *DAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range d.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// NodeIDs extracts the ID from each node in a slice.
// Returns a new slice containing the IDs in the same order as the input.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
