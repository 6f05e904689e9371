package ged

import (
	"cmp"
	"context"
	"slices"
	"time"
)

const unmapped = -1

type search struct {
	ctx  context.Context
	opts Options
	a, b *graph

	useDeadline bool
	deadline    time.Time
	steps       int
	stopped     bool

	// Current partial mapping: image[a.order[k]] for k < depth.
	image  []int
	used   []bool
	usedB  int // B nodes in the image
	fixedA int // A edges with both endpoints mapped
	fixedB int // B edges between image nodes
	remA   []int
	remB   []int
	common int // label multiset intersection of remA and remB

	best     int
	explored int
	pruned   int
}

// halt reports whether the search must stop. The deadline and context are
// only consulted every checkMask+1 steps.
func (s *search) halt() bool {
	if s.stopped {
		return true
	}
	s.steps++
	if s.steps&checkMask != 0 {
		return false
	}
	if s.opts.Progress != nil {
		s.opts.Progress(s.explored, s.pruned, s.best)
	}
	if (s.useDeadline && time.Now().After(s.deadline)) || (s.ctx != nil && s.ctx.Err() != nil) {
		s.stopped = true
	}
	return s.stopped
}

// bound returns an admissible estimate of the cost still to pay.
func (s *search) bound(depth int) int {
	ra, rb := s.a.n-depth, s.b.n-s.usedB
	nodes := max(ra, rb) - s.common
	edges := (s.a.edges - s.fixedA) - (s.b.edges - s.fixedB)
	if edges < 0 {
		edges = -edges
	}
	return nodes + edges
}

func (s *search) dfs(depth, cost int) {
	if s.halt() {
		return
	}
	s.explored++

	if depth == s.a.n {
		total := cost + (s.b.n - s.usedB) + (s.b.edges - s.fixedB)
		if total < s.best {
			s.best = total
			if s.opts.Progress != nil {
				s.opts.Progress(s.explored, s.pruned, s.best)
			}
		}
		if s.opts.FirstSolution {
			s.stopped = true
		}
		return
	}
	if cost+s.bound(depth) >= s.best {
		s.pruned++
		return
	}

	u := s.a.order[depth]
	cands := s.candidates(depth, u)
	for _, c := range cands {
		if cost+c.inc+s.boundAfter(depth, u, c) >= s.best {
			s.pruned++
			continue
		}
		s.apply(u, c)
		s.dfs(depth+1, cost+c.inc)
		s.undo(u, c)
		if s.stopped {
			return
		}
	}
}

// candidate is one way to map an A node: onto B node v, or deleted when v
// is unmapped.
type candidate struct {
	v          int
	inc        int // node and edge cost paid by this step
	newA, newB int // edges fixed on either side by this step
}

// candidates lists every option for u, cheapest first. Ties keep B's node
// order with deletion last, which makes the search deterministic.
func (s *search) candidates(depth, u int) []candidate {
	out := make([]candidate, 0, s.b.n-s.usedB+1)
	for v := range s.b.n {
		if !s.used[v] {
			out = append(out, s.delta(depth, u, v))
		}
	}
	out = append(out, s.delta(depth, u, unmapped))
	slices.SortStableFunc(out, func(x, y candidate) int { return cmp.Compare(x.inc, y.inc) })
	return out
}

// delta prices mapping u onto v against the nodes already mapped.
func (s *search) delta(depth, u, v int) candidate {
	c := candidate{v: v, inc: 1}
	if v != unmapped && s.b.labels[v] == s.a.labels[u] {
		c.inc = 0
	}
	for k := 0; k < depth; k++ {
		w := s.a.order[k]
		out, in := s.a.mult(u, w), s.a.mult(w, u)
		c.newA += out + in
		mbOut, mbIn := 0, 0
		if v != unmapped && s.image[w] != unmapped {
			mbOut = s.b.mult(v, s.image[w])
			mbIn = s.b.mult(s.image[w], v)
			c.newB += mbOut + mbIn
		}
		c.inc += abs(out-mbOut) + abs(in-mbIn)
	}
	return c
}

// boundAfter evaluates the lower bound as if c had been applied.
func (s *search) boundAfter(depth, u int, c candidate) int {
	s.apply(u, c)
	b := s.bound(depth + 1)
	s.undo(u, c)
	return b
}

func (s *search) apply(u int, c candidate) {
	s.image[u] = c.v
	s.fixedA += c.newA
	s.fixedB += c.newB
	s.common -= s.shrinkA(s.a.labels[u])
	if c.v != unmapped {
		s.used[c.v] = true
		s.usedB++
		s.common -= s.shrinkB(s.b.labels[c.v])
	}
}

func (s *search) undo(u int, c candidate) {
	if c.v != unmapped {
		s.common += s.growB(s.b.labels[c.v])
		s.usedB--
		s.used[c.v] = false
	}
	s.common += s.growA(s.a.labels[u])
	s.fixedB -= c.newB
	s.fixedA -= c.newA
	s.image[u] = unmapped
}

// shrinkA removes one label l from the unmapped A side and returns the drop
// in the common label count.
func (s *search) shrinkA(l int) int {
	before := min(s.remA[l], s.remB[l])
	s.remA[l]--
	return before - min(s.remA[l], s.remB[l])
}

func (s *search) growA(l int) int {
	before := min(s.remA[l], s.remB[l])
	s.remA[l]++
	return min(s.remA[l], s.remB[l]) - before
}

func (s *search) shrinkB(l int) int {
	before := min(s.remA[l], s.remB[l])
	s.remB[l]--
	return before - min(s.remA[l], s.remB[l])
}

func (s *search) growB(l int) int {
	before := min(s.remA[l], s.remB[l])
	s.remB[l]++
	return min(s.remA[l], s.remB[l]) - before
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
