package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/mulnet/pkg/network"
	"github.com/matzehuels/mulnet/pkg/reticulate"
)

func build(t *testing.T, text string) *network.Network {
	t.Helper()
	rt, err := reticulate.New(reticulate.Text(text), reticulate.FoldParams{})
	if err != nil {
		t.Fatalf("reticulate.New(%q): %v", text, err)
	}
	return rt.Network()
}

func TestToDOT_Basic(t *testing.T) {
	n := build(t, "(A,B);")
	dot := ToDOT(n, Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, want := range []string{`label="A"`, `label="B"`, "shape=point"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s", want)
		}
	}
	if strings.Count(dot, "->") != 2 {
		t.Errorf("ToDOT() edges = %d, want 2", strings.Count(dot, "->"))
	}
}

func TestToDOT_Reticulation(t *testing.T) {
	n := build(t, "((A,A),B);")
	ret := n.Reticulations()
	if len(ret) != 1 {
		t.Fatalf("reticulations = %v, want 1", ret)
	}
	dot := ToDOT(n, Options{})

	if !strings.Contains(dot, "shape=diamond") {
		t.Error("ToDOT() reticulation missing diamond shape")
	}
	if !strings.Contains(dot, "lightgrey") {
		t.Error("ToDOT() reticulation missing lightgrey fill")
	}
	// Both parent edges of the reticulation are dashed.
	if got := strings.Count(dot, `-> "`+ret[0]+`" [style=dashed`); got != 2 {
		t.Errorf("dashed edges into reticulation = %d, want 2\n%s", got, dot)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	n := build(t, "((A:1.5,B:2):0.5,C:3);")
	dot := ToDOT(n, Options{Detailed: true})

	if !strings.Contains(dot, `label="1.5"`) {
		t.Errorf("ToDOT() detailed output missing branch length:\n%s", dot)
	}
	if !strings.Contains(dot, "shape=circle") {
		t.Error("ToDOT() detailed output should label internal nodes")
	}
	if strings.Contains(ToDOT(n, Options{}), `label="1.5"`) {
		t.Error("ToDOT() simple output should omit branch lengths")
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	n := build(t, "(((A,B),(A,B)),C);")
	if ToDOT(n, Options{}) != ToDOT(n, Options{}) {
		t.Error("ToDOT() output is not deterministic")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT(build(t, "((A,A),B);"), Options{})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("RenderSVG() output is not SVG")
	}
}

func TestRenderSVG_BadDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG() should reject malformed DOT")
	}
}
