package enewick

import (
	"strconv"
	"strings"

	"github.com/matzehuels/mulnet/pkg/dag"
	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/mtree"
	"github.com/matzehuels/mulnet/pkg/newick"
)

// ErrDuplicateReticulationID is the cause reported when two nodes define the
// same #H identifier.
var ErrDuplicateReticulationID = errors.New(errors.ErrCodeDuplicateReticulation, "duplicate reticulation id")

const marker = "#H"

// IsExtended reports whether s carries reticulation markers.
func IsExtended(s string) bool {
	return strings.Contains(s, marker)
}

// splitMarker separates "name#H<id>" into its parts. ok is false when the
// label has no marker or an empty id.
func splitMarker(label string) (name, id string, ok bool) {
	i := strings.LastIndex(label, marker)
	if i < 0 || i+len(marker) == len(label) {
		return label, "", false
	}
	return label[:i], label[i+len(marker):], true
}

func isReference(n *mtree.Node) (string, bool) {
	name, id, ok := splitMarker(n.Label)
	return id, ok && name == "" && n.IsLeaf()
}

type decoder struct {
	g    *dag.DAG
	ids  map[*mtree.Node]string // tree node -> ID its parent links to
	body map[*mtree.Node]string // tree node -> ID its children hang from
	defs map[string]*mtree.Node // marker id -> definition
	seq  map[byte]int
}

func (d *decoder) next(prefix byte) string {
	k := d.seq[prefix]
	d.seq[prefix] = k + 1
	return string(prefix) + strconv.Itoa(k)
}

// Decode parses extended Newick into a network. Text without markers yields
// a tree-shaped network.
func Decode(s string) (*dag.DAG, error) {
	t, err := newick.Parse(s)
	if err != nil {
		return nil, err
	}
	d := &decoder{
		g:    dag.New(),
		ids:  make(map[*mtree.Node]string),
		body: make(map[*mtree.Node]string),
		defs: make(map[string]*mtree.Node),
		seq:  make(map[byte]int),
	}

	nodes := t.Nodes()
	referenced := map[string]bool{}
	for _, n := range nodes {
		if id, ok := isReference(n); ok {
			referenced[id] = true
			continue
		}
		if _, id, ok := splitMarker(n.Label); ok {
			if _, dup := d.defs[id]; dup {
				return nil, errors.Wrap(errors.ErrCodeDuplicateReticulation, ErrDuplicateReticulationID, "#H%s is defined more than once", id)
			}
			d.defs[id] = n
		}
	}
	for _, n := range nodes {
		if id, ok := isReference(n); ok {
			if _, defined := d.defs[id]; !defined {
				return nil, parseError("reference #H%s has no definition", id)
			}
		}
	}
	for _, n := range nodes {
		if _, id, ok := splitMarker(n.Label); ok && !referenced[id] {
			return nil, parseError("definition #H%s is never referenced", id)
		}
	}

	for _, n := range nodes {
		if _, ok := isReference(n); !ok {
			d.addNode(n)
		}
	}
	for _, n := range nodes {
		p := n.Parent()
		if p == nil {
			continue
		}
		to := d.ids[n]
		if id, ok := isReference(n); ok {
			to = d.ids[d.defs[id]]
		}
		_ = d.g.AddEdge(dag.Edge{From: d.body[p], To: to, Length: n.Length, HasLength: n.HasLength})
	}

	if err := d.g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStructural, err, "invalid extended newick network")
	}
	return d.g, nil
}

// addNode creates the graph nodes for a non-reference tree node.
func (d *decoder) addNode(n *mtree.Node) {
	name, _, isDef := splitMarker(n.Label)
	if !isDef {
		id := d.next('n')
		label := ""
		if n.IsLeaf() {
			label = n.Label
		}
		_ = d.g.AddNode(dag.Node{ID: id, Label: label})
		d.ids[n], d.body[n] = id, id
		return
	}

	r := d.next('r')
	_ = d.g.AddNode(dag.Node{ID: r, Kind: dag.NodeKindReticulation})
	d.ids[n], d.body[n] = r, r

	switch {
	case n.IsLeaf():
		// B#H1: the reticulation leads to leaf B.
		leaf := d.next('n')
		_ = d.g.AddNode(dag.Node{ID: leaf, Label: name})
		_ = d.g.AddEdge(dag.Edge{From: r, To: leaf})
	case len(n.Children) > 1:
		s := d.next('s')
		_ = d.g.AddNode(dag.Node{ID: s, Kind: dag.NodeKindSynthetic})
		_ = d.g.AddEdge(dag.Edge{From: r, To: s})
		d.body[n] = s
	}
}

func parseError(format string, args ...any) error {
	return errors.New(errors.ErrCodeParse, "invalid extended newick: "+format, args...)
}
