package compare

import (
	"context"

	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/fold"
	"github.com/matzehuels/mulnet/pkg/ged"
	"github.com/matzehuels/mulnet/pkg/network"
	"github.com/matzehuels/mulnet/pkg/reticulate"
)

// Options configures a comparison.
type Options struct {
	// GED configures both edit distance searches.
	GED ged.Options

	// SkipEditDistance leaves EditDistance and EditDistanceMulTree nil.
	SkipEditDistance bool
}

// Ploidy holds the copy-number agreement between two MUL-trees.
type Ploidy struct {
	TP, FP, FN int
	Dist       float64
}

// Jaccard holds an assignment-based Jaccard distance with its false
// positive and false negative fractions, each normalized to [0, 1].
type Jaccard struct {
	Dist, FP, FN float64
}

// EditDistance is the result of one graph edit distance search.
type EditDistance struct {
	Value      int
	Normalized float64
	Exact      bool
	Explored   int
}

// RF is the Robinson-Foulds distance between two MUL-trees.
type RF struct {
	Value        int
	Normalized   float64
	SizeA, SizeB int
}

// Metrics is the full comparison record.
type Metrics struct {
	RetCountDiff        int
	Ploidy              Ploidy
	RetLeaves           Jaccard
	RetSisters          Jaccard
	EditDistance        *EditDistance
	EditDistanceMulTree *EditDistance
	RF                  RF

	// Warnings collects the anomalies found in either input.
	Warnings []network.Warning
}

// Compare computes every metric between a and b. Neither input is modified.
// The context bounds the edit distance searches, which return their best
// result so far when it is done.
func Compare(ctx context.Context, a, b *reticulate.ReticulateTree, opts Options) (*Metrics, error) {
	if a == nil || b == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "both networks are required")
	}

	m := &Metrics{}
	m.Warnings = append(m.Warnings, a.Warnings()...)
	m.Warnings = append(m.Warnings, b.Warnings()...)

	retA, retB := a.Reticulations(), b.Reticulations()
	m.RetCountDiff = abs(len(retA) - len(retB))
	m.Ploidy = ploidyDiff(a.LeafCounts(), b.LeafCounts())

	sistersA, warnA := a.ReticulationSisters()
	sistersB, warnB := b.ReticulationSisters()
	m.Warnings = append(m.Warnings, warnA...)
	m.Warnings = append(m.Warnings, warnB...)

	leaves, pairs := matchReticulations(a.ReticulationLeaves(), b.ReticulationLeaves(), sistersA, sistersB)
	m.RetLeaves = leaves
	m.RetSisters = sisterDiff(sistersA, sistersB, pairs)

	if !opts.SkipEditDistance {
		m.EditDistance = editDistance(ged.Distance(ctx, a.Network().Graph(), b.Network().Graph(), opts.GED))
		m.EditDistanceMulTree = editDistance(ged.Distance(ctx, fold.Naive(a.Tree()), fold.Naive(b.Tree()), opts.GED))
	}

	m.RF = robinsonFoulds(a.Tree().Clusters(), b.Tree().Clusters())
	return m, nil
}

func editDistance(r ged.Result) *EditDistance {
	return &EditDistance{Value: r.Cost, Normalized: r.Normalized(), Exact: r.Exact, Explored: r.Explored}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
