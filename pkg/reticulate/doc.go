// Package reticulate pairs a MUL-tree with the network it folds into.
//
// A [ReticulateTree] is built once from exactly one input form and derives
// the other form eagerly:
//
//   - [Newick] text or a [Tree] is folded into a network
//   - [ExtendedNewick] text or a [Graph] is unfolded into a MUL-tree
//
// [Text] chooses between the two text forms by looking for #H markers.
//
// Both representations are read-only after construction, so a value can be
// compared from several goroutines at once.
//
// # Folding Parameters
//
// [FoldParams] selects the folding variant for tree inputs. Leaving both
// fields nil selects strict folding; setting both selects relaxed folding.
// Setting only one is a usage error: it is recorded as a
// [WarnPartialFoldParams] warning and strict folding is used.
package reticulate
