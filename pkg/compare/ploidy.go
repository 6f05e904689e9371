package compare

import "github.com/matzehuels/mulnet/pkg/mtree"

// ploidyDiff compares extra copies per taxon: a taxon counted c times
// carries c-1 extra copies. Taxa without extra copies on either side do not
// enter the distance.
func ploidyDiff(a, b mtree.Multiset) Ploidy {
	var (
		p              Ploidy
		sumMin, sumMax int
	)
	taxa := a.Clone()
	taxa.Merge(b)
	for taxon := range taxa {
		ca, cb := extra(a[taxon]), extra(b[taxon])
		p.TP += min(ca, cb)
		p.FP += max(0, cb-ca)
		p.FN += max(0, ca-cb)
		sumMin += min(ca, cb)
		sumMax += max(ca, cb)
	}
	if sumMax > 0 {
		p.Dist = 1 - float64(sumMin)/float64(sumMax)
	}
	return p
}

func extra(count int) int {
	return max(0, count-1)
}
