// Package mtree provides multi-labeled trees (MUL-trees) and the canonical
// form analysis used to fold them into phylogenetic networks.
//
// # Overview
//
// A MUL-tree is a rooted tree whose leaves carry taxon labels, where the same
// label may appear on several leaves. A taxon with more than one leaf carries
// extra genome copies, typically from whole-genome duplication. Internal
// nodes are unlabeled for the algorithms in this module; a label read from
// Newick text is kept for display only.
//
// Build trees by hand with [NewLeaf] and [NewInternal], or parse them with
// the newick package:
//
//	t := mtree.New(mtree.NewInternal(
//	    mtree.NewInternal(mtree.NewLeaf("A"), mtree.NewLeaf("A")),
//	    mtree.NewLeaf("B"),
//	))
//	t.LeafCounts() // {A: 2, B: 1}
//
// # Canonical Forms
//
// [Analyze] computes, in one bottom-up pass, three facts per node:
//
//   - Height: 0 for a leaf, one more than the tallest child otherwise
//   - Multiset: the counting map of leaf labels below the node
//   - Canonical: a string that is equal for two subtrees iff they are
//     isomorphic as labeled trees (child order and branch lengths ignored)
//
// The canonical form of a leaf is its label; an internal node renders as
// "(" + sorted child forms joined by "," + ")".
//
// A [Profile] is transient: it describes one tree at one moment and is
// discarded once folding completes.
package mtree
