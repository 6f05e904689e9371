package mtree

import (
	"slices"
	"strings"
)

// Profile holds the per-node height, leaf multiset and canonical form of a
// tree, computed once by [Analyze].
type Profile struct {
	height    map[*Node]int
	multiset  map[*Node]Multiset
	canonical map[*Node]string
	order     []*Node
}

// Analyze computes heights, leaf multisets and canonical forms for every node
// of t in a single post-order pass.
func Analyze(t *Tree) *Profile {
	nodes := t.Nodes()
	p := &Profile{
		height:    make(map[*Node]int, len(nodes)),
		multiset:  make(map[*Node]Multiset, len(nodes)),
		canonical: make(map[*Node]string, len(nodes)),
		order:     nodes,
	}
	// Reverse pre-order visits every child before its parent.
	for i := len(nodes) - 1; i >= 0; i-- {
		p.visit(nodes[i])
	}
	return p
}

func (p *Profile) visit(n *Node) {
	if n.IsLeaf() {
		p.height[n] = 0
		p.multiset[n] = Multiset{n.Label: 1}
		p.canonical[n] = n.Label
		return
	}

	h := 0
	ms := Multiset{}
	forms := make([]string, len(n.Children))
	for i, c := range n.Children {
		h = max(h, p.height[c])
		ms.Merge(p.multiset[c])
		forms[i] = p.canonical[c]
	}
	p.height[n] = h + 1
	p.multiset[n] = ms
	p.canonical[n] = "(" + strings.Join(sortedForms(forms), ",") + ")"
}

// Height returns the longest distance from n to a leaf below it.
func (p *Profile) Height(n *Node) int { return p.height[n] }

// Multiset returns the leaf-label multiset below n. The returned map must not
// be modified.
func (p *Profile) Multiset(n *Node) Multiset { return p.multiset[n] }

// Canonical returns the canonical form of the subtree rooted at n.
func (p *Profile) Canonical(n *Node) string { return p.canonical[n] }

// MaxHeight returns the largest height of any node, which is the root's.
func (p *Profile) MaxHeight() int {
	h := 0
	for _, v := range p.height {
		h = max(h, v)
	}
	return h
}

// ByHeight groups nodes by height. Within a height nodes keep pre-order,
// which gives the folding engine a stable leader choice.
func (p *Profile) ByHeight() map[int][]*Node {
	out := make(map[int][]*Node)
	for _, n := range p.order {
		h := p.height[n]
		out[h] = append(out[h], n)
	}
	return out
}

// GroupByCanonical partitions nodes by canonical form. Groups are returned in
// order of their first member; members keep their input order.
func (p *Profile) GroupByCanonical(nodes []*Node) [][]*Node {
	index := make(map[string]int)
	var groups [][]*Node
	for _, n := range nodes {
		form := p.canonical[n]
		i, ok := index[form]
		if !ok {
			i = len(groups)
			index[form] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], n)
	}
	return slices.Clip(groups)
}
