// Package network provides the read-only view of a finished phylogenetic
// network and the structural queries the comparison metrics are built on.
//
// A [Network] is created from a [dag.DAG] once construction is done. [New]
// validates and copies the graph, so later changes to the builder never leak
// into the view and a Network can be shared between goroutines.
//
// # Queries
//
//   - [Network.Reticulations]: nodes with more than one incoming edge
//   - [Network.ReticulationLeaves]: leaf labels below each reticulation
//   - [Network.ReticulationSisters]: for each parent of a reticulation, the
//     leaf labels of that parent's other children
//
// A reticulation without exactly two parents does not abort the sister
// query. It is reported as a [Warning] and the parents present are used.
//
// [dag.DAG]: github.com/matzehuels/mulnet/pkg/dag
package network
