package enewick

import (
	"strconv"
	"strings"

	"github.com/matzehuels/mulnet/pkg/dag"
	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/newick"
)

// Encode writes g as extended Newick. The graph must have a single
// non-reticulate root and no cycles. Every node with more than one parent
// is written as a reticulation, whatever its kind; a labelled one keeps
// its label in front of the marker.
func Encode(g *dag.DAG) (string, error) {
	if err := g.Validate(); err != nil {
		return "", errors.Wrap(errors.ErrCodeStructural, err, "cannot encode network")
	}
	root, _ := g.Root()

	e := &encoder{g: g, marks: make(map[string]int), out: make(map[string]map[string][]dag.Edge)}
	for _, edge := range g.Edges() {
		if e.out[edge.From] == nil {
			e.out[edge.From] = make(map[string][]dag.Edge)
		}
		e.out[edge.From][edge.To] = append(e.out[edge.From][edge.To], edge)
	}
	e.write(root, dag.Edge{})
	e.b.WriteByte(';')
	return e.b.String(), nil
}

type encoder struct {
	g     *dag.DAG
	b     strings.Builder
	marks map[string]int
	out   map[string]map[string][]dag.Edge
}

func (e *encoder) write(id string, in dag.Edge) {
	n, _ := e.g.Node(id)
	retic := e.g.IsReticulation(id)
	if retic {
		if k, seen := e.marks[id]; seen {
			e.b.WriteString(marker + strconv.Itoa(k))
			e.length(in)
			return
		}
		e.marks[id] = len(e.marks) + 1
	}

	if children := e.g.Children(id); len(children) > 0 {
		e.b.WriteByte('(')
		used := map[string]int{}
		for i, c := range children {
			if i > 0 {
				e.b.WriteByte(',')
			}
			edge := e.out[id][c][used[c]]
			used[c]++
			e.write(c, edge)
		}
		e.b.WriteByte(')')
	}
	e.b.WriteString(newick.QuoteLabel(n.Label))
	if retic {
		e.b.WriteString(marker + strconv.Itoa(e.marks[id]))
	}
	e.length(in)
}

func (e *encoder) length(in dag.Edge) {
	if in.HasLength {
		e.b.WriteByte(':')
		e.b.WriteString(newick.FormatLength(in.Length))
	}
}
