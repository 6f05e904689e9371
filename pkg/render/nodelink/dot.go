package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mulnet/pkg/network"
	"github.com/matzehuels/mulnet/pkg/newick"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds node IDs to internal nodes and lengths to edges.
	Detailed bool
}

// ToDOT converts a network to Graphviz DOT format. Nodes and edges are
// written in the network's order so the output is deterministic.
func ToDOT(n *network.Network, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	for _, nd := range n.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", nd.ID, strings.Join(nodeAttrs(n, nd.ID, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range n.Edges() {
		var attrs []string
		if n.IsReticulation(e.To) {
			attrs = append(attrs, "style=dashed", "color=grey40")
		}
		if opts.Detailed && e.HasLength {
			attrs = append(attrs, fmt.Sprintf("label=%q", newick.FormatLength(e.Length)), "fontsize=12")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *network.Network, id string, opts Options) []string {
	switch {
	case n.IsReticulation(id):
		label := ""
		if opts.Detailed {
			label = id
		}
		return []string{
			fmt.Sprintf("label=%q", label),
			"shape=diamond", "style=\"filled,dashed\"", "fillcolor=lightgrey",
			"width=0.3", "height=0.3", "fontsize=10",
		}
	case len(n.Children(id)) == 0:
		return []string{fmt.Sprintf("label=%q", n.Label(id))}
	case opts.Detailed:
		return []string{fmt.Sprintf("label=%q", id), "shape=circle", "fontsize=10", "width=0.3"}
	default:
		return []string{"label=\"\"", "shape=point", "width=0.08"}
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg tag with one whose
// width and height match the viewBox, so the drawing scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
