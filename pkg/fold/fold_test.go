package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mulnet/pkg/dag"
	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/mtree"
	"github.com/matzehuels/mulnet/pkg/newick"
)

func parse(t *testing.T, s string) *mtree.Tree {
	t.Helper()
	tree, err := newick.Parse(s)
	require.NoError(t, err)
	return tree
}

func reticulations(g *dag.DAG) []*dag.Node {
	var out []*dag.Node
	for _, n := range g.Nodes() {
		if n.IsReticulation() {
			out = append(out, n)
		}
	}
	return out
}

func leafLabels(g *dag.DAG, id string) []string {
	var out []string
	for _, d := range append([]string{id}, g.Descendants(id)...) {
		if g.OutDegree(d) == 0 {
			n, _ := g.Node(d)
			out = append(out, n.Label)
		}
	}
	return out
}

func TestNaive(t *testing.T) {
	tree := parse(t, "((A:1,A:2),B);")
	g := Naive(tree)

	assert.Equal(t, tree.Len(), g.NodeCount())
	assert.Equal(t, tree.Len()-1, g.EdgeCount())
	assert.Empty(t, reticulations(g))
	root, err := g.Root()
	require.NoError(t, err)
	assert.Equal(t, "n0", root)

	n, ok := g.Node("n0")
	require.True(t, ok)
	assert.Same(t, tree.Root, n.Origin)
}

func TestStrict_Duplication(t *testing.T) {
	tree := parse(t, "((A,A),B);")
	g, err := Strict(tree)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	rets := reticulations(g)
	require.Len(t, rets, 1)
	assert.Equal(t, 2, g.InDegree(rets[0].ID))
	assert.Equal(t, 1, g.OutDegree(rets[0].ID))
	assert.Nil(t, rets[0].Origin)
	assert.Equal(t, []string{"A"}, leafLabels(g, rets[0].ID))

	back, err := Unfold(g)
	require.NoError(t, err)
	assert.Equal(t, mtree.Multiset{"A": 2, "B": 1}, back.LeafCounts())
	assert.True(t, mtree.Isomorphic(tree, back))
}

func TestStrict_RoundTrip(t *testing.T) {
	tests := []struct {
		newick string
		rets   int
	}{
		{"(A,B);", 0},
		{"A;", 0},
		{"((A,B),(A,C));", 1},
		{"((A,B),(B,A));", 1},
		{"(A,A,A);", 2},
		{"((A,A),(A,A));", 2},
		{"(((A,B),C),((A,B),D));", 1},
		{"(((X,Y),(X,Y)),Z);", 1},
	}
	for _, tt := range tests {
		t.Run(tt.newick, func(t *testing.T) {
			tree := parse(t, tt.newick)
			g, err := Strict(tree)
			require.NoError(t, err)
			require.NoError(t, g.Validate())

			rets := reticulations(g)
			assert.Len(t, rets, tt.rets)
			for _, r := range rets {
				assert.Equal(t, 2, g.InDegree(r.ID), "reticulation %s", r.ID)
				assert.Equal(t, 1, g.OutDegree(r.ID), "reticulation %s", r.ID)
			}

			back, err := Unfold(g)
			require.NoError(t, err)
			assert.True(t, mtree.Isomorphic(tree, back), "unfold(%s) = %s", tt.newick, newick.Format(back))
		})
	}
}

func TestStrict_DoesNotMutateInput(t *testing.T) {
	tree := parse(t, "((A:1,A:1):2,(B,B));")
	before := newick.Format(tree)
	_, err := Strict(tree)
	require.NoError(t, err)
	assert.Equal(t, before, newick.Format(tree))
}

func TestStrict_IDsScopedPerCall(t *testing.T) {
	tree := parse(t, "((A,A),B);")
	g1, err := Strict(tree)
	require.NoError(t, err)
	g2, err := Strict(tree)
	require.NoError(t, err)
	assert.Equal(t, dag.NodeIDs(g1.Nodes()), dag.NodeIDs(g2.Nodes()))
	assert.Equal(t, "r0", reticulations(g1)[0].ID)
}

func TestStrict_CarriesLength(t *testing.T) {
	tree := parse(t, "((A:0.5,A:0.7):1,B:2);")
	g, err := Strict(tree)
	require.NoError(t, err)

	r := reticulations(g)[0]
	for _, e := range g.Edges() {
		if e.To == r.ID {
			assert.True(t, e.HasLength)
		}
	}
	back, err := Unfold(g)
	require.NoError(t, err)
	assert.Equal(t, "((A:0.5,A:0.7):1,B:2);", newick.Format(back))
}

func TestStrict_Empty(t *testing.T) {
	_, err := Strict(nil)
	assert.ErrorIs(t, err, ErrEmptyTree)
	_, err = Strict(&mtree.Tree{})
	assert.ErrorIs(t, err, ErrEmptyTree)
}

func TestRelaxed(t *testing.T) {
	tree := parse(t, "((A,(B,C)),((A,B),C));")

	strict, err := Strict(tree)
	require.NoError(t, err)
	assert.Len(t, reticulations(strict), 3)

	// The two clades differ by swapping A and C: edit distance 2 over 10 nodes.
	relaxed, err := Relaxed(tree, 0.25, true)
	require.NoError(t, err)
	require.NoError(t, relaxed.Validate())
	assert.Len(t, reticulations(relaxed), 1)

	back, err := Unfold(relaxed)
	require.NoError(t, err)
	assert.Equal(t, tree.LeafCounts(), back.LeafCounts())
	assert.False(t, mtree.Isomorphic(tree, back), "relaxed folding is lossy")

	tight, err := Relaxed(tree, 0.1, true)
	require.NoError(t, err)
	assert.Len(t, reticulations(tight), 3)
}

func TestRelaxed_Unnormalized(t *testing.T) {
	tree := parse(t, "((A,(B,C)),((A,B),C));")
	g, err := Relaxed(tree, 2, false)
	require.NoError(t, err)
	assert.Len(t, reticulations(g), 1)
}

func TestRelaxed_MatchesStrictOnExactCopies(t *testing.T) {
	tree := parse(t, "(((X,Y),(Y,X)),Z);")
	s, err := Strict(tree)
	require.NoError(t, err)
	r, err := Relaxed(tree, DefaultThreshold, DefaultNormalize)
	require.NoError(t, err)
	assert.Equal(t, len(reticulations(s)), len(reticulations(r)))
}

func TestRelaxed_InvalidThreshold(t *testing.T) {
	_, err := Relaxed(parse(t, "(A,B);"), -1, true)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestUnfold_Errors(t *testing.T) {
	reticulateRoot := dag.New()
	_ = reticulateRoot.AddNode(dag.Node{ID: "r", Kind: dag.NodeKindReticulation})
	_ = reticulateRoot.AddNode(dag.Node{ID: "a", Label: "A"})
	_ = reticulateRoot.AddEdge(dag.Edge{From: "r", To: "a"})

	twoRoots := dag.New()
	_ = twoRoots.AddNode(dag.Node{ID: "a", Label: "A"})
	_ = twoRoots.AddNode(dag.Node{ID: "b", Label: "B"})

	tests := []struct {
		name  string
		g     *dag.DAG
		cause error
	}{
		{"reticulate root", reticulateRoot, ErrReticulateRoot},
		{"two roots", twoRoots, dag.ErrMultipleRoots},
		{"empty", dag.New(), dag.ErrNoRoot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unfold(tt.g)
			assert.True(t, errors.Is(err, errors.ErrCodeStructural))
			assert.ErrorIs(t, err, tt.cause)
		})
	}
}
