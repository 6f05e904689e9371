// Package nodelink draws phylogenetic networks as node-link diagrams.
//
// # Usage
//
// Convert a network to DOT, then render it:
//
//	dot := nodelink.ToDOT(n, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Appearance
//
// The root sits at the top (rankdir=TB). Leaves are boxes carrying their
// taxon labels, tree nodes are small dots, and reticulations are grey
// dashed diamonds whose incoming edges are dashed. With Options.Detailed,
// node IDs and branch lengths are added as labels.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering; no Graphviz installation is required.
package nodelink
