package reticulate

import (
	"github.com/matzehuels/mulnet/pkg/dag"
	"github.com/matzehuels/mulnet/pkg/enewick"
	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/fold"
	"github.com/matzehuels/mulnet/pkg/mtree"
	"github.com/matzehuels/mulnet/pkg/network"
	"github.com/matzehuels/mulnet/pkg/newick"
)

// WarnPartialFoldParams flags FoldParams with only one of its fields set.
const WarnPartialFoldParams network.WarningCode = "PARTIAL_FOLD_PARAMS"

// FoldParams selects the folding variant for tree inputs. Both nil means
// strict folding; both set means relaxed folding.
type FoldParams struct {
	Threshold *float64
	Normalize *bool
}

// Relaxed returns FoldParams selecting relaxed folding.
func Relaxed(threshold float64, normalize bool) FoldParams {
	return FoldParams{Threshold: &threshold, Normalize: &normalize}
}

// IsRelaxed reports whether both fields are set.
func (p FoldParams) IsRelaxed() bool { return p.Threshold != nil && p.Normalize != nil }

// IsPartial reports whether exactly one field is set.
func (p FoldParams) IsPartial() bool { return (p.Threshold == nil) != (p.Normalize == nil) }

// ReticulateTree holds a MUL-tree and its network.
type ReticulateTree struct {
	source   Kind
	tree     *mtree.Tree
	net      *network.Network
	counts   mtree.Multiset
	warnings []network.Warning
}

// New builds the paired representation from in. Parse, structural and
// duplicate-reticulation errors are returned as is; partial FoldParams only
// add a warning.
func New(in Input, params FoldParams) (*ReticulateTree, error) {
	rt := &ReticulateTree{source: in.kind}
	if params.IsPartial() {
		rt.warnings = append(rt.warnings, network.Warning{
			Code:    WarnPartialFoldParams,
			Message: "threshold and normalize must be given together; using strict folding",
		})
		params = FoldParams{}
	}

	var err error
	switch in.kind {
	case KindNewick:
		var t *mtree.Tree
		if t, err = newick.Parse(in.text); err != nil {
			return nil, err
		}
		err = rt.fromTree(t, params)
	case KindTree:
		if in.tree == nil || in.tree.Root == nil {
			return nil, fold.ErrEmptyTree
		}
		err = rt.fromTree(in.tree.Clone(), params)
	case KindExtendedNewick:
		var g *dag.DAG
		if g, err = enewick.Decode(in.text); err != nil {
			return nil, err
		}
		var n *network.Network
		if n, err = network.New(g); err != nil {
			return nil, err
		}
		err = rt.fromNetwork(n)
	case KindGraph:
		if in.net == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "network is nil")
		}
		err = rt.fromNetwork(in.net)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown input kind %d", in.kind)
	}
	if err != nil {
		return nil, err
	}
	rt.counts = rt.tree.LeafCounts()
	return rt, nil
}

func (rt *ReticulateTree) fromTree(t *mtree.Tree, params FoldParams) error {
	var (
		g   *dag.DAG
		err error
	)
	if params.IsRelaxed() {
		g, err = fold.Relaxed(t, *params.Threshold, *params.Normalize)
	} else {
		g, err = fold.Strict(t)
	}
	if err != nil {
		return err
	}
	n, err := network.New(g)
	if err != nil {
		return err
	}
	rt.tree, rt.net = t, n
	return nil
}

func (rt *ReticulateTree) fromNetwork(n *network.Network) error {
	t, err := fold.Unfold(n.Graph())
	if err != nil {
		return err
	}
	rt.tree, rt.net = t, n
	return nil
}

// Source returns the form the value was built from.
func (rt *ReticulateTree) Source() Kind { return rt.source }

// Tree returns a copy of the MUL-tree.
func (rt *ReticulateTree) Tree() *mtree.Tree { return rt.tree.Clone() }

// Network returns the network. It is immutable and may be shared.
func (rt *ReticulateTree) Network() *network.Network { return rt.net }

// LeafCounts returns the copy count of every taxon in the MUL-tree.
func (rt *ReticulateTree) LeafCounts() mtree.Multiset { return rt.counts.Clone() }

// Warnings returns the anomalies recorded during construction.
func (rt *ReticulateTree) Warnings() []network.Warning {
	return append([]network.Warning(nil), rt.warnings...)
}

// Newick returns the MUL-tree as Newick text.
func (rt *ReticulateTree) Newick() string { return newick.Format(rt.tree) }

// ExtendedNewick returns the network as extended Newick text.
func (rt *ReticulateTree) ExtendedNewick() (string, error) {
	return enewick.Encode(rt.net.Graph())
}

// Reticulations returns the IDs of the network's reticulations.
func (rt *ReticulateTree) Reticulations() []string { return rt.net.Reticulations() }

// ReticulationLeaves returns the leaf label set of every reticulation.
func (rt *ReticulateTree) ReticulationLeaves() []network.LabelSet {
	return rt.net.ReticulationLeaves()
}

// ReticulationSisters returns the sister clades of every reticulation.
func (rt *ReticulateTree) ReticulationSisters() ([]network.Sisters, []network.Warning) {
	return rt.net.ReticulationSisters()
}
