// Package pkg provides the core libraries for mulnet, a toolkit for
// polyploid phylogenetic networks.
//
// # Overview
//
// A MUL-tree (multi-labelled tree) lists a taxon once per genome copy; a
// phylogenetic network records the same history with reticulation nodes
// where lineages merge. mulnet moves between the two and scores inferred
// networks against a reference. The pkg directory is organized into three
// areas:
//
//  1. Model and codecs: [mtree], [newick], [dag], [enewick], [network]
//  2. Algorithms: [fold], [reticulate], [assign], [ged], [compare]
//  3. Orchestration: [pipeline], [cache], [io], [store], [server]
//
// # Architecture
//
// The typical data flow:
//
//	Newick / extended Newick / JSON graph
//	         ↓
//	    [io] package (load and classify inputs)
//	         ↓
//	    [reticulate] package (fold trees, unfold networks)
//	         ↓
//	    [compare] package (reticulation, RF and edit distance metrics)
//	         ↓
//	    [pipeline] Record → [store] sink
//
// # Quick Start
//
// Fold a MUL-tree and compare it against a reference network:
//
//	tree, _ := reticulate.New(reticulate.Text("((A,A),B);"), reticulate.FoldParams{})
//	ref, _ := reticulate.New(reticulate.Text("(((A)#H1,#H1),B);"), reticulate.FoldParams{})
//
//	s, _ := tree.ExtendedNewick() // (((A)#H1,#H1),B);
//
//	m, _ := compare.Compare(ctx, ref, tree, compare.Options{})
//	fmt.Println(m.RF.Value, m.EditDistance.Value)
//
// # Main Packages
//
// [mtree] - MUL-tree model with canonical forms and leaf multisets.
//
// [newick] - Ordinary Newick reader and writer. Duplicate taxon names are
// allowed.
//
// [dag] - Mutable directed graph used to build networks, with
// [dag/transform] for simplification, heights and reticulation kinds.
//
// [fold] - Strict folding of identical subtrees, relaxed folding of similar
// ones, and unfolding back to a MUL-tree.
//
// [enewick] - Extended Newick with #H reticulation markers.
//
// [network] - Immutable network with reticulation queries.
//
// [reticulate] - A MUL-tree and its network kept side by side.
//
// [assign] and [ged] - Optimal assignment and anytime graph edit distance.
//
// [compare] - Pairwise comparison metrics.
//
// [pipeline] - Load → build → compare runner shared by the CLI and the HTTP
// server, with caching and concurrent batches.
//
// [render/nodelink] - Graphviz drawings of networks.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                  # All tests
//	go test ./pkg/fold/...             # Specific package
//	go test -run Example ./pkg/...     # Examples only
//
// Redis and MongoDB tests run when MULNET_TEST_REDIS_URL and
// MULNET_TEST_MONGO_URI are set.
//
// [mtree]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/mtree
// [newick]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/newick
// [dag]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/dag/transform
// [enewick]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/enewick
// [network]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/network
// [fold]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/fold
// [reticulate]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/reticulate
// [assign]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/assign
// [ged]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/ged
// [compare]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/compare
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/io
// [store]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/server
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/mulnet/pkg/render/nodelink
package pkg
