package fold

import (
	"context"
	"math"
	"time"

	"github.com/matzehuels/mulnet/pkg/dag"
	"github.com/matzehuels/mulnet/pkg/dag/transform"
	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/ged"
	"github.com/matzehuels/mulnet/pkg/mtree"
)

// Default parameters of relaxed folding.
const (
	DefaultThreshold = 0.2
	DefaultNormalize = true
)

// pairTimeout bounds each subtree comparison. A search cut short reports an
// upper bound, which can only prevent a merge.
const pairTimeout = 2 * time.Second

// Relaxed folds t by merging near-isomorphic subtrees. Two subtrees of equal
// height are merged when their leaf label sets are equal as plain sets and
// their graph edit distance is at most threshold. With normalize the
// distance is divided by the sum of both subtrees' node counts.
//
// Each height is swept once: the next unprocessed node collects every
// remaining node similar to it, and the collected group is merged before the
// sweep moves on.
//
// Relaxed folding is lossy. Unfold of the result may differ from t.
func Relaxed(t *mtree.Tree, threshold float64, normalize bool) (*dag.DAG, error) {
	if t == nil || t.Root == nil {
		return nil, ErrEmptyTree
	}
	if threshold < 0 || math.IsNaN(threshold) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "threshold must be a non-negative number, got %v", threshold)
	}

	b := newBuilder(t)
	p := mtree.Analyze(t)
	levels := p.ByHeight()

	for h := p.Height(t.Root); h >= 0; h-- {
		var nodes []*mtree.Node
		for _, n := range levels[h] {
			if _, ok := b.g.Node(b.ids[n]); ok {
				nodes = append(nodes, n)
			}
		}

		done := make([]bool, len(nodes))
		for i, n := range nodes {
			if done[i] {
				continue
			}
			done[i] = true
			group := []*mtree.Node{n}
			for j := i + 1; j < len(nodes); j++ {
				if !done[j] && b.similar(p, n, nodes[j], threshold, normalize) {
					done[j] = true
					group = append(group, nodes[j])
				}
			}
			b.merge(b.present(group))
		}
	}
	transform.Simplify(b.g)
	return b.g, nil
}

func (b *builder) similar(p *mtree.Profile, x, y *mtree.Node, threshold float64, normalize bool) bool {
	if !p.Multiset(x).SameLabels(p.Multiset(y)) {
		return false
	}
	if p.Canonical(x) == p.Canonical(y) {
		return true
	}

	gx, gy := b.g.Subgraph(b.ids[x]), b.g.Subgraph(b.ids[y])
	r := ged.Distance(context.Background(), gx, gy, ged.Options{Timeout: pairTimeout})
	d := float64(r.Cost)
	if normalize {
		d /= float64(gx.NodeCount() + gy.NodeCount())
	}
	return d <= threshold
}
