package mtree

import (
	"slices"
	"testing"
)

func tree(root *Node) *Tree { return New(root) }

func leaves(labels ...string) []*Node {
	out := make([]*Node, len(labels))
	for i, l := range labels {
		out[i] = NewLeaf(l)
	}
	return out
}

func TestAnalyze_Heights(t *testing.T) {
	inner := NewInternal(leaves("A", "A")...)
	root := NewInternal(inner, NewLeaf("B"))
	p := Analyze(tree(root))

	if got := p.Height(root); got != 2 {
		t.Errorf("Height(root) = %d, want 2", got)
	}
	if got := p.Height(inner); got != 1 {
		t.Errorf("Height(inner) = %d, want 1", got)
	}
	if got := p.MaxHeight(); got != 2 {
		t.Errorf("MaxHeight() = %d, want 2", got)
	}
	levels := p.ByHeight()
	if len(levels[0]) != 3 || len(levels[1]) != 1 || len(levels[2]) != 1 {
		t.Errorf("ByHeight() sizes = %d/%d/%d, want 3/1/1", len(levels[0]), len(levels[1]), len(levels[2]))
	}
}

func TestAnalyze_Multiset(t *testing.T) {
	inner := NewInternal(leaves("A", "A")...)
	root := NewInternal(inner, NewLeaf("B"))
	p := Analyze(tree(root))

	ms := p.Multiset(root)
	if ms["A"] != 2 || ms["B"] != 1 || ms.Total() != 3 {
		t.Errorf("Multiset(root) = %v, want A:2 B:1", ms)
	}
	if got := p.Multiset(inner).Labels(); !slices.Equal(got, []string{"A"}) {
		t.Errorf("Multiset(inner).Labels() = %v, want [A]", got)
	}
}

func TestCanonical_ChildOrderInvariant(t *testing.T) {
	a := NewInternal(NewInternal(leaves("X", "Y")...), NewLeaf("Z"))
	b := NewInternal(NewLeaf("Z"), NewInternal(leaves("Y", "X")...))
	pa, pb := Analyze(tree(a)), Analyze(tree(b))

	if pa.Canonical(a) != pb.Canonical(b) {
		t.Errorf("Canonical differs: %q vs %q", pa.Canonical(a), pb.Canonical(b))
	}
	if got, want := pa.Canonical(a), "((X,Y),Z)"; got != want {
		t.Errorf("Canonical() = %q, want %q", got, want)
	}
}

func TestCanonical_DistinguishesShape(t *testing.T) {
	a := NewInternal(NewInternal(leaves("X", "Y")...), NewLeaf("Z"))
	b := NewInternal(NewLeaf("X"), NewInternal(leaves("Y", "Z")...))
	if Isomorphic(tree(a), tree(b)) {
		t.Error("Isomorphic() = true for different topologies")
	}
}

func TestCanonical_IgnoresLengths(t *testing.T) {
	a := NewInternal(NewLeaf("X").SetLength(1), NewLeaf("Y"))
	b := NewInternal(NewLeaf("Y"), NewLeaf("X").SetLength(3))
	if !Isomorphic(tree(a), tree(b)) {
		t.Error("Isomorphic() = false, branch lengths must be ignored")
	}
}

func TestGroupByCanonical(t *testing.T) {
	c1 := NewInternal(leaves("A", "B")...)
	c2 := NewInternal(leaves("C", "D")...)
	c3 := NewInternal(leaves("B", "A")...)
	root := NewInternal(c1, c2, c3)
	p := Analyze(tree(root))

	groups := p.GroupByCanonical(p.ByHeight()[1])
	if len(groups) != 2 {
		t.Fatalf("GroupByCanonical() = %d groups, want 2", len(groups))
	}
	if len(groups[0]) != 2 || groups[0][0] != c1 || groups[0][1] != c3 {
		t.Errorf("first group = %v, want [c1 c3]", groups[0])
	}
}

func TestTree_Clone(t *testing.T) {
	root := NewInternal(NewLeaf("A").SetLength(0.5), NewLeaf("B"))
	orig := tree(root)
	c := orig.Clone()
	c.Root.Children[0].Label = "Z"

	if root.Children[0].Label != "A" {
		t.Error("Clone shares nodes with original")
	}
	if c.Root.Children[1].Parent() != c.Root {
		t.Error("Clone did not set parent links")
	}
	if !c.Root.Children[0].HasLength || c.Root.Children[0].Length != 0.5 {
		t.Error("Clone dropped branch length")
	}
}

func TestTree_Clusters(t *testing.T) {
	// ((A,A),(A,B),C): two non-trivial clusters below the root.
	root := NewInternal(
		NewInternal(leaves("A", "A")...),
		NewInternal(leaves("B", "A")...),
		NewLeaf("C"),
	)
	got := tree(root).Clusters()
	want := [][]string{{"A", "A"}, {"A", "B"}}
	if len(got) != len(want) {
		t.Fatalf("Clusters() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("Clusters()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTree_Empty(t *testing.T) {
	var empty Tree
	if empty.Len() != 0 || len(empty.Leaves()) != 0 || empty.Clusters() != nil {
		t.Error("empty tree is not empty")
	}
	if !Isomorphic(&empty, nil) {
		t.Error("Isomorphic(empty, nil) = false")
	}
}

func TestMultiset(t *testing.T) {
	m := Multiset{"A": 2}
	m.Add("B", 1)
	m.Merge(Multiset{"A": 1, "C": 1})

	if got := m.Expand(); !slices.Equal(got, []string{"A", "A", "A", "B", "C"}) {
		t.Errorf("Expand() = %v", got)
	}
	if !m.SameLabels(Multiset{"A": 1, "B": 5, "C": 1}) {
		t.Error("SameLabels() = false for equal label sets")
	}
	if m.SameLabels(Multiset{"A": 1, "B": 1, "D": 1}) {
		t.Error("SameLabels() = true for different label sets")
	}
	c := m.Clone()
	c.Add("A", 1)
	if m["A"] != 3 {
		t.Error("Clone shares storage")
	}
}
