package compare

import "strings"

// robinsonFoulds counts the clusters found in exactly one tree. Clusters
// are compared as sorted label lists, so duplicated labels count.
func robinsonFoulds(a, b [][]string) RF {
	setA, setB := clusterSet(a), clusterSet(b)
	shared := 0
	for k := range setA {
		if setB[k] {
			shared++
		}
	}
	rf := RF{SizeA: len(setA), SizeB: len(setB)}
	rf.Value = rf.SizeA + rf.SizeB - 2*shared
	if total := rf.SizeA + rf.SizeB; total > 0 {
		rf.Normalized = float64(rf.Value) / float64(total)
	}
	return rf
}

func clusterSet(clusters [][]string) map[string]bool {
	set := make(map[string]bool, len(clusters))
	for _, c := range clusters {
		set[strings.Join(c, "\x00")] = true
	}
	return set
}
