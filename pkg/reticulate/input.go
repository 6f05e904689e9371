package reticulate

import (
	"github.com/matzehuels/mulnet/pkg/enewick"
	"github.com/matzehuels/mulnet/pkg/mtree"
	"github.com/matzehuels/mulnet/pkg/network"
)

// Kind identifies the form an Input was given in.
type Kind int

const (
	KindNewick Kind = iota
	KindExtendedNewick
	KindTree
	KindGraph
)

// String returns the lower-case name of the input form.
func (k Kind) String() string {
	switch k {
	case KindExtendedNewick:
		return "enewick"
	case KindTree:
		return "tree"
	case KindGraph:
		return "graph"
	default:
		return "newick"
	}
}

// Input is one of the accepted input forms. Build it with Newick,
// ExtendedNewick, Text, Tree or Graph.
type Input struct {
	kind Kind
	text string
	tree *mtree.Tree
	net  *network.Network
}

// Kind returns the input form.
func (in Input) Kind() Kind { return in.kind }

// Newick wraps ordinary Newick text describing a MUL-tree.
func Newick(s string) Input { return Input{kind: KindNewick, text: s} }

// ExtendedNewick wraps Newick text with #H reticulation markers.
func ExtendedNewick(s string) Input { return Input{kind: KindExtendedNewick, text: s} }

// Text wraps s as ExtendedNewick if it contains #H markers and as Newick
// otherwise.
func Text(s string) Input {
	if enewick.IsExtended(s) {
		return ExtendedNewick(s)
	}
	return Newick(s)
}

// Tree wraps an already built MUL-tree. The tree is copied on construction.
func Tree(t *mtree.Tree) Input { return Input{kind: KindTree, tree: t} }

// Graph wraps an already built network.
func Graph(n *network.Network) Input { return Input{kind: KindGraph, net: n} }
