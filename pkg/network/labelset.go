package network

import (
	"maps"
	"slices"
)

// LabelSet is a set of taxon labels.
type LabelSet map[string]struct{}

// NewLabelSet returns the set of the given labels.
func NewLabelSet(labels ...string) LabelSet {
	s := make(LabelSet, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

// Len returns the number of labels.
func (s LabelSet) Len() int { return len(s) }

// Has reports whether label is in the set.
func (s LabelSet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Sorted returns the labels in ascending order.
func (s LabelSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Minus returns the labels of s that are not in o.
func (s LabelSet) Minus(o LabelSet) LabelSet {
	out := LabelSet{}
	for l := range s {
		if !o.Has(l) {
			out[l] = struct{}{}
		}
	}
	return out
}

// Intersect returns the number of labels shared by s and o.
func (s LabelSet) Intersect(o LabelSet) int {
	n := 0
	for l := range s {
		if o.Has(l) {
			n++
		}
	}
	return n
}

// Jaccard returns |s ∩ o| / |s ∪ o|. Two empty sets are identical and score 1.
func (s LabelSet) Jaccard(o LabelSet) float64 {
	inter := s.Intersect(o)
	union := len(s) + len(o) - inter
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}
