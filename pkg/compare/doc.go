// Package compare computes the distance metrics between two phylogenetic
// networks.
//
// # Metrics
//
// [Compare] fills a [Metrics] record with:
//
//   - RetCountDiff: absolute difference of the reticulation counts
//   - Ploidy: per-taxon agreement on extra genome copies (TP, FP, FN) and a
//     Jaccard-style distance over the copy counts
//   - RetLeaves: reticulations matched by the leaf sets below them, using an
//     optimal assignment that maximizes total Jaccard similarity
//   - RetSisters: the same reticulation matching, scored on sister clades
//     with a second assignment per matched pair. When several matchings
//     reach the same leaf similarity, the one with the closest sister
//     clades is used.
//   - EditDistance and EditDistanceMulTree: graph edit distance between the
//     networks and between the MUL-trees
//   - RF: Robinson-Foulds distance over MUL-tree clusters
//
// A is treated as the reference and B as the estimate: FP counts what B has
// and A lacks, FN the reverse.
//
// Degenerate inputs (no reticulations on one or both sides) have defined
// values and never fail. [Metrics.Flatten] turns the record into the flat
// "metric.field" map that result caches and exports store.
package compare
