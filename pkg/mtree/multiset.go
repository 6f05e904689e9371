package mtree

import (
	"maps"
	"slices"
)

// Multiset counts occurrences of taxon labels.
type Multiset map[string]int

// Add increases the count of label by n.
func (m Multiset) Add(label string, n int) {
	m[label] += n
}

// Merge adds every count of o into m.
func (m Multiset) Merge(o Multiset) {
	for k, v := range o {
		m[k] += v
	}
}

// Total returns the sum of all counts.
func (m Multiset) Total() int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

// Labels returns the distinct labels in sorted order, ignoring multiplicity.
func (m Multiset) Labels() []string {
	return slices.Sorted(maps.Keys(m))
}

// SameLabels reports whether m and o contain the same labels as plain sets.
func (m Multiset) SameLabels(o Multiset) bool {
	if len(m) != len(o) {
		return false
	}
	for k := range m {
		if _, ok := o[k]; !ok {
			return false
		}
	}
	return true
}

// Expand lists every label as many times as it is counted, sorted.
func (m Multiset) Expand() []string {
	out := make([]string, 0, m.Total())
	for _, k := range m.Labels() {
		for range m[k] {
			out = append(out, k)
		}
	}
	return out
}

// Clone returns a copy of m.
func (m Multiset) Clone() Multiset {
	return maps.Clone(m)
}
