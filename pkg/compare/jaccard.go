package compare

import (
	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/mulnet/pkg/assign"
	"github.com/matzehuels/mulnet/pkg/network"
)

// matchGroups pairs the groups of a with those of b maximizing total
// Jaccard similarity. Matched pairs contribute 1-J to the distance,
// |b\a|/|b| to FP and |a\b|/|a| to FN; each unmatched group contributes 1
// to the distance and to FN (a side) or FP (b side). All three are divided
// by the larger group count.
func matchGroups(a, b []network.LabelSet) (Jaccard, []assign.Pair) {
	return scoreMatching(a, b, nil)
}

// tieWeight scales the sister similarity added to the leaf similarity when
// matching reticulations. The added term stays below 1e-9 in total, so it
// only decides between leaf matchings of equal Jaccard sum.
const tieWeight = 1e-9

// matchReticulations pairs reticulations by the leaf sets below them, like
// matchGroups. Among matchings with the same total leaf similarity it picks
// the one whose sister clades agree best, so the pairing does not depend on
// the order in which reticulations were found.
func matchReticulations(leavesA, leavesB []network.LabelSet, sistersA, sistersB []network.Sisters) (Jaccard, []assign.Pair) {
	if len(leavesA) == 0 || len(leavesB) == 0 {
		return matchGroups(leavesA, leavesB)
	}
	w := tieWeight / float64(max(len(leavesA), len(leavesB)))
	tie := mat.NewDense(len(leavesA), len(leavesB), nil)
	for i := range sistersA {
		for j := range sistersB {
			nested, _ := matchGroups(sistersA[i].Clades, sistersB[j].Clades)
			tie.Set(i, j, w*(1-nested.Dist))
		}
	}
	return scoreMatching(leavesA, leavesB, tie)
}

// scoreMatching runs the assignment on the Jaccard similarities of a and b
// plus tie, when given, and scores the chosen pairs on Jaccard alone.
func scoreMatching(a, b []network.LabelSet, tie mat.Matrix) (Jaccard, []assign.Pair) {
	switch {
	case len(a) == 0 && len(b) == 0:
		return Jaccard{}, nil
	case len(a) == 0:
		return Jaccard{Dist: 1, FP: 1}, nil
	case len(b) == 0:
		return Jaccard{Dist: 1, FN: 1}, nil
	}

	sim := mat.NewDense(len(a), len(b), nil)
	for i := range a {
		for j := range b {
			sim.Set(i, j, a[i].Jaccard(b[j]))
		}
	}
	if tie != nil {
		sim.Add(sim, tie)
	}
	pairs, _ := assign.MaximizeSimilarity(sim)

	var j Jaccard
	for k, p := range pairs {
		ga, gb := a[p.Row], b[p.Col]
		pairs[k].Score = ga.Jaccard(gb)
		j.Dist += 1 - pairs[k].Score
		j.FP += fraction(gb.Minus(ga).Len(), gb.Len())
		j.FN += fraction(ga.Minus(gb).Len(), ga.Len())
	}
	j.FN += float64(len(a) - len(pairs))
	j.FP += float64(len(b) - len(pairs))
	j.Dist += float64(len(a) + len(b) - 2*len(pairs))

	denom := float64(max(len(a), len(b)))
	return Jaccard{Dist: j.Dist / denom, FP: j.FP / denom, FN: j.FN / denom}, pairs
}

// sisterDiff scores the reticulation pairs chosen by the leaf matching on
// their sister clades. Each matched pair adds the normalized result of a
// nested matching over its clades; unmatched reticulations add 1.
func sisterDiff(a, b []network.Sisters, pairs []assign.Pair) Jaccard {
	switch {
	case len(a) == 0 && len(b) == 0:
		return Jaccard{}
	case len(a) == 0:
		return Jaccard{Dist: 1, FP: 1}
	case len(b) == 0:
		return Jaccard{Dist: 1, FN: 1}
	}

	var j Jaccard
	for _, p := range pairs {
		nested, _ := matchGroups(a[p.Row].Clades, b[p.Col].Clades)
		j.Dist += nested.Dist
		j.FP += nested.FP
		j.FN += nested.FN
	}
	j.FN += float64(len(a) - len(pairs))
	j.FP += float64(len(b) - len(pairs))
	j.Dist += float64(len(a) + len(b) - 2*len(pairs))

	denom := float64(max(len(a), len(b)))
	return Jaccard{Dist: j.Dist / denom, FP: j.FP / denom, FN: j.FN / denom}
}

func fraction(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
