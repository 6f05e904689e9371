package newick

import (
	"strconv"
	"strings"

	"github.com/matzehuels/mulnet/pkg/mtree"
)

// Format writes t as a Newick string terminated by ';'. Internal labels and
// branch lengths are written when present.
func Format(t *mtree.Tree) string {
	if t == nil || t.Root == nil {
		return ";"
	}
	var b strings.Builder
	writeNode(&b, t.Root)
	b.WriteByte(';')
	return b.String()
}

func writeNode(b *strings.Builder, n *mtree.Node) {
	if !n.IsLeaf() {
		b.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				b.WriteByte(',')
			}
			writeNode(b, c)
		}
		b.WriteByte(')')
	}
	b.WriteString(QuoteLabel(n.Label))
	if n.HasLength {
		b.WriteByte(':')
		b.WriteString(FormatLength(n.Length))
	}
}

// QuoteLabel returns label, single-quoted if it contains characters that
// the Newick grammar reserves.
func QuoteLabel(label string) string {
	if !strings.ContainsAny(label, delimiters+" \t\r\n") {
		return label
	}
	return "'" + strings.ReplaceAll(label, "'", "''") + "'"
}

// FormatLength renders a branch length with the shortest exact
// representation.
func FormatLength(l float64) string {
	return strconv.FormatFloat(l, 'g', -1, 64)
}
