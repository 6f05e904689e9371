// Package fold converts between MUL-trees and phylogenetic networks.
//
// # Folding
//
// A MUL-tree records every genome copy as a separate leaf. Folding merges
// repeated subtrees into a single subtree below a reticulation node, giving
// the network a polyploid lineage implies. [Strict] merges subtrees whose
// canonical forms are identical (the HOLM algorithm):
//
//  1. Build the naive DAG, one node per tree node.
//  2. Walk heights from the root's height down to the leaves.
//  3. At each height group the surviving nodes by canonical form. In every
//     group with two or more members, insert a reticulation above the first
//     member and redirect each other member's parent edge to it, deleting the
//     now redundant copy.
//  4. Splice out structural helpers with one parent and one child.
//
// A group of k copies produces a chain of k-1 reticulations, so every
// reticulation has exactly two parents and one child.
//
// [Relaxed] uses the same sweep but merges subtrees whose leaf label sets
// match and whose graph edit distance is within a threshold. It is lossy:
// unfolding a relaxed network need not reproduce the input tree.
//
// # Unfolding
//
// [Unfold] rebuilds the MUL-tree by copying the child subtree of every
// reticulation at each point it is referenced.
//
// # Identifiers
//
// Node IDs are assigned per call from a registry: "n<k>" for nodes derived
// from the tree, "r<k>" for reticulations and "s<k>" for structural helpers.
// No state is shared between calls, and the input tree is never modified.
package fold
