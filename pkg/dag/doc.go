// Package dag provides the directed acyclic graph that represents a
// phylogenetic network while it is being built.
//
// # Overview
//
// A phylogenetic network is a DAG with a single root (in-degree 0). Its nodes
// partition into:
//
//   - leaves: out-degree 0, carrying a taxon label
//   - tree nodes: in-degree at most 1, unlabeled
//   - reticulation nodes: in-degree above 1, one child, unlabeled
//
// Reticulations model hybridization or whole-genome duplication: the child
// subtree is stored once and referenced by both parents, never duplicated.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [DAG.AddNode] and edges with
// [DAG.AddEdge]:
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "root"})
//	g.AddNode(dag.Node{ID: "r0", Kind: dag.NodeKindReticulation})
//	g.AddNode(dag.Node{ID: "a", Label: "A"})
//	g.AddEdge(dag.Edge{From: "root", To: "r0"})
//	g.AddEdge(dag.Edge{From: "root", To: "r0"})
//	g.AddEdge(dag.Edge{From: "r0", To: "a"})
//
// Parallel edges are allowed: a reticulation whose two parents are the same
// node records two edges between them. Use [DAG.Validate] to check that the
// graph is acyclic and has exactly one non-reticulate root.
//
// # Node Kinds
//
//   - [NodeKindTree]: leaves and tree nodes
//   - [NodeKindReticulation]: merge points with two parents
//   - [NodeKindSynthetic]: structural helpers inserted while decoding or
//     folding; the folding engine splices away those with one parent and one
//     child
//
// Nodes derived from a MUL-tree keep an [Node.Origin] back-reference to the
// tree node they came from. Reticulations have no single originating tree
// node and leave Origin nil.
//
// # Ordering
//
// [DAG.Nodes], [DAG.Sources] and [DAG.Sinks] return nodes in insertion
// order, so algorithms that walk the graph are deterministic.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. The network package wraps a
// finished DAG in a read-only view that can be shared.
//
// # Related Packages
//
// The [transform] subpackage provides simplification and height computation.
//
// [transform]: github.com/matzehuels/mulnet/pkg/dag/transform
package dag
