// Package transform provides graph transformations applied to a network
// after it has been built.
//
// # Simplification
//
// [Simplify] splices out structural helper nodes that ended up with exactly
// one parent and one child. Folding and extended-Newick decoding both insert
// such helpers; genuine reticulations are never touched.
//
// # Heights
//
// [Heights] computes, for every node, the longest distance to a leaf below
// it. It is the network counterpart of the tree height used by the folding
// engine and drives the level-by-level layout of rendered networks.
//
// # Reticulation Kinds
//
// [NormalizeReticulations] makes node kinds agree with in-degree. Networks
// read from JSON or built by hand may omit or misstate the kind; every
// consumer treats a node with more than one parent as a reticulation.
package transform
