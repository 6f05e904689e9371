package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mulnet/pkg/dag"
	"github.com/matzehuels/mulnet/pkg/network"
)

type graph struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

type edge struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Length *float64 `json:"length,omitempty"`
}

// WriteJSON encodes g as indented JSON. Tree nodes are written without a
// kind so that the output of [ReadJSON] round-trips.
func WriteJSON(g *dag.DAG, w io.Writer) error {
	nodes := g.Nodes()
	edges := g.Edges()
	out := graph{
		Nodes: make([]node, len(nodes)),
		Edges: make([]edge, len(edges)),
	}

	for i, n := range nodes {
		nd := node{ID: n.ID, Label: n.Label}
		if n.Kind != dag.NodeKindTree {
			nd.Kind = n.Kind.String()
		}
		out.Nodes[i] = nd
	}
	for i, e := range edges {
		ed := edge{From: e.From, To: e.To}
		if e.HasLength {
			l := e.Length
			ed.Length = &l
		}
		out.Edges[i] = ed
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteNetwork encodes n as JSON.
func WriteNetwork(n *network.Network, w io.Writer) error {
	return WriteJSON(n.Graph(), w)
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *dag.DAG, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
