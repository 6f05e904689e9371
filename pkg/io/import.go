package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mulnet/pkg/dag"
	"github.com/matzehuels/mulnet/pkg/dag/transform"
	"github.com/matzehuels/mulnet/pkg/errors"
)

var kindFromString = map[string]dag.NodeKind{
	"":             dag.NodeKindTree,
	"tree":         dag.NodeKindTree,
	"reticulation": dag.NodeKindReticulation,
	"synthetic":    dag.NodeKindSynthetic,
}

// ReadJSON decodes a JSON graph from r.
//
// ReadJSON returns an INVALID_FORMAT error if the JSON is malformed or names
// an unknown node kind, and the dag package's sentinel errors (wrapped with
// the offending node or edge) for duplicate IDs and dangling edges. Leaf
// labels are checked with [errors.ValidateLabel]. Node kinds are derived
// from the edges: a node with several parents is a reticulation whatever
// its "kind" says, and a "reticulation" with one parent is read as a tree
// node. Cycles are not rejected here; see [Load].
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*dag.DAG, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode network json")
	}

	g := dag.New()
	for _, n := range data.Nodes {
		kind, ok := kindFromString[n.Kind]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "node %s: unknown kind %q", n.ID, n.Kind)
		}
		if err := g.AddNode(dag.Node{ID: n.ID, Label: n.Label, Kind: kind}); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		edge := dag.Edge{From: e.From, To: e.To}
		if e.Length != nil {
			edge.Length, edge.HasLength = *e.Length, true
		}
		if err := g.AddEdge(edge); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	transform.NormalizeReticulations(g)

	for _, n := range g.Sinks() {
		if err := errors.ValidateLabel(n.Label); err != nil {
			return nil, fmt.Errorf("leaf %s: %w", n.ID, err)
		}
	}
	return g, nil
}

// ImportJSON reads the JSON graph stored at path.
func ImportJSON(path string) (*dag.DAG, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
