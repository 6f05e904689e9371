package ged

import (
	"context"
	"time"

	"github.com/matzehuels/mulnet/pkg/dag"
)

// DefaultTimeout bounds a search when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// checkMask sets how often, in search steps, the deadline and the progress
// callback are consulted.
const checkMask = 4095

// Options configures a search.
type Options struct {
	// Timeout stops the search and returns the incumbent. Zero means
	// DefaultTimeout; a negative value disables the limit.
	Timeout time.Duration

	// FirstSolution stops after the first complete mapping.
	FirstSolution bool

	// Progress, if set, is called when the incumbent improves and
	// periodically while searching.
	Progress func(explored, pruned, best int)
}

// Result is the outcome of a search.
type Result struct {
	Cost     int  // cost of the best edit path found
	Exact    bool // true if the search proved Cost optimal
	Explored int  // partial mappings examined
	Pruned   int  // branches cut by the lower bound

	sizeA, sizeB int
}

// Normalized returns Cost divided by max(|V_A|+|E_A|, |V_B|+|E_B|), or 0
// when both graphs are empty.
func (r Result) Normalized() float64 {
	denom := max(r.sizeA, r.sizeB)
	if denom == 0 {
		return 0
	}
	return float64(r.Cost) / float64(denom)
}

// graph is a dense view of a DAG: integer labels and an edge multiplicity
// matrix.
type graph struct {
	n      int
	labels []int
	adj    []int // adj[u*n+v] = number of u→v edges
	edges  int
	order  []int // breadth-first visiting order
}

func (g *graph) mult(u, v int) int { return g.adj[u*g.n+v] }

func newGraph(d *dag.DAG, intern map[string]int) *graph {
	nodes := d.Nodes()
	index := make(map[string]int, len(nodes))
	g := &graph{n: len(nodes), labels: make([]int, len(nodes))}
	for i, n := range nodes {
		index[n.ID] = i
		id, ok := intern[n.Label]
		if !ok {
			id = len(intern)
			intern[n.Label] = id
		}
		g.labels[i] = id
	}
	g.adj = make([]int, g.n*g.n)
	for _, e := range d.Edges() {
		g.adj[index[e.From]*g.n+index[e.To]]++
		g.edges++
	}

	seen := make([]bool, g.n)
	visit := func(start int) {
		queue := []int{start}
		seen[start] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			g.order = append(g.order, u)
			for _, c := range d.Children(nodes[u].ID) {
				if v := index[c]; !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
	}
	for _, s := range d.Sources() {
		visit(index[s.ID])
	}
	for i := range g.n {
		if !seen[i] {
			visit(i)
		}
	}
	return g
}

// Distance returns the graph edit distance between a and b. Neither graph is
// modified.
func Distance(ctx context.Context, a, b *dag.DAG, opts Options) Result {
	intern := map[string]int{}
	ga, gb := newGraph(a, intern), newGraph(b, intern)

	s := &search{
		ctx:   ctx,
		opts:  opts,
		a:     ga,
		b:     gb,
		remA:  make([]int, len(intern)),
		remB:  make([]int, len(intern)),
		image: make([]int, ga.n),
		used:  make([]bool, gb.n),
	}
	switch {
	case opts.Timeout == 0:
		s.deadline = time.Now().Add(DefaultTimeout)
		s.useDeadline = true
	case opts.Timeout > 0:
		s.deadline = time.Now().Add(opts.Timeout)
		s.useDeadline = true
	}
	for i := range s.image {
		s.image[i] = unmapped
	}
	for _, l := range ga.labels {
		s.remA[l]++
	}
	for _, l := range gb.labels {
		s.remB[l]++
	}
	s.common = commonLabels(s.remA, s.remB)

	// Deleting all of A and inserting all of B is always feasible.
	s.best = ga.n + ga.edges + gb.n + gb.edges
	s.dfs(0, 0)

	return Result{
		Cost:     s.best,
		Exact:    !s.stopped,
		Explored: s.explored,
		Pruned:   s.pruned,
		sizeA:    ga.n + ga.edges,
		sizeB:    gb.n + gb.edges,
	}
}

func commonLabels(x, y []int) int {
	c := 0
	for i := range x {
		c += min(x[i], y[i])
	}
	return c
}
