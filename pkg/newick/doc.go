// Package newick reads and writes trees in the Newick format.
//
// The grammar follows the PHYLIP conventions: nested parentheses, optional
// node labels, and optional ":length" branch lengths. In addition:
//
//   - labels may be single-quoted ('Homo sapiens'), with '' escaping a quote
//   - extra colon fields (":length:support:probability", as written by
//     PhyloNet-style tools) are accepted and ignored past the length
//   - [bracketed comments] are skipped wherever whitespace is allowed
//
// Every leaf must carry a label and the tree must end with ';'. Malformed
// text fails with an error carrying the byte offset; characters are never
// silently dropped.
//
// Internal node labels are kept on the parsed [mtree.Node]; the extended
// Newick codec relies on them to find "#H" reticulation markers.
package newick
