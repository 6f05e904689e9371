package mtree

import "slices"

// Node is a vertex of a MUL-tree. Leaves carry a taxon label; internal nodes
// may carry a display label that the folding algorithms ignore.
//
// Length is the branch length of the edge from the parent to this node and is
// only meaningful when HasLength is set.
type Node struct {
	Label     string
	Length    float64
	HasLength bool
	Children  []*Node

	parent *Node
}

// NewLeaf returns a leaf carrying the given taxon label.
func NewLeaf(label string) *Node {
	return &Node{Label: label}
}

// NewInternal returns an unlabeled internal node adopting the given children.
func NewInternal(children ...*Node) *Node {
	n := &Node{}
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

// AddChild appends c to n's children and sets n as c's parent.
func (n *Node) AddChild(c *Node) {
	c.parent = n
	n.Children = append(n.Children, c)
}

// SetLength sets the branch length leading into n.
func (n *Node) SetLength(l float64) *Node {
	n.Length = l
	n.HasLength = true
	return n
}

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is a rooted multi-labeled tree.
//
// The zero value is an empty tree. Every non-root node has exactly one
// parent; the root has none.
type Tree struct {
	Root *Node
}

// New returns a tree rooted at root. The root's parent link is cleared.
func New(root *Node) *Tree {
	if root != nil {
		root.parent = nil
	}
	return &Tree{Root: root}
}

// Nodes returns all nodes in pre-order (parent before children, children in
// stored order).
func (t *Tree) Nodes() []*Node {
	var out []*Node
	t.Walk(func(n *Node) { out = append(out, n) })
	return out
}

// Walk calls fn on every node in pre-order.
func (t *Tree) Walk(fn func(*Node)) {
	if t == nil || t.Root == nil {
		return
	}
	stack := []*Node{t.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// Leaves returns the leaves in pre-order.
func (t *Tree) Leaves() []*Node {
	var out []*Node
	t.Walk(func(n *Node) {
		if n.IsLeaf() {
			out = append(out, n)
		}
	})
	return out
}

// LeafCounts returns the multiset of leaf labels, the per-taxon copy count
// used as the ploidy signal.
func (t *Tree) LeafCounts() Multiset {
	m := Multiset{}
	for _, l := range t.Leaves() {
		m.Add(l.Label, 1)
	}
	return m
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	count := 0
	t.Walk(func(*Node) { count++ })
	return count
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	if t == nil || t.Root == nil {
		return &Tree{}
	}
	return New(cloneNode(t.Root))
}

func cloneNode(n *Node) *Node {
	c := &Node{Label: n.Label, Length: n.Length, HasLength: n.HasLength}
	for _, child := range n.Children {
		c.AddChild(cloneNode(child))
	}
	return c
}

// Clusters returns, for every internal node other than the root, the sorted
// list of leaf labels below it. Duplicate labels are kept: the leaves of a
// MUL-tree are distinguishable copies. Clusters with a single leaf are
// skipped.
func (t *Tree) Clusters() [][]string {
	if t == nil || t.Root == nil {
		return nil
	}
	p := Analyze(t)
	var out [][]string
	t.Walk(func(n *Node) {
		if n == t.Root || n.IsLeaf() {
			return
		}
		ms := p.Multiset(n)
		if ms.Total() <= 1 {
			return
		}
		out = append(out, ms.Expand())
	})
	return out
}

// Isomorphic reports whether two trees are equal as labeled trees, ignoring
// child order and branch lengths.
func Isomorphic(a, b *Tree) bool {
	if a == nil || a.Root == nil || b == nil || b.Root == nil {
		return (a == nil || a.Root == nil) == (b == nil || b.Root == nil)
	}
	return Analyze(a).Canonical(a.Root) == Analyze(b).Canonical(b.Root)
}

// sortedForms returns a sorted copy of child canonical forms.
func sortedForms(forms []string) []string {
	out := slices.Clone(forms)
	slices.Sort(out)
	return out
}
