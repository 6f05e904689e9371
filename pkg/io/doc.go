// Package io reads and writes phylogenetic networks as files.
//
// # JSON Format
//
// Networks that already exist as graphs are exchanged as two arrays:
//
//	{
//	  "nodes": [
//	    {"id": "root"},
//	    {"id": "h", "kind": "reticulation"},
//	    {"id": "a", "label": "A"},
//	    {"id": "b", "label": "B"}
//	  ],
//	  "edges": [
//	    {"from": "root", "to": "h"},
//	    {"from": "root", "to": "h"},
//	    {"from": "h", "to": "a", "length": 0.5},
//	    {"from": "root", "to": "b"}
//	  ]
//	}
//
// Node fields:
//   - id: unique identifier (required)
//   - label: taxon name; only meaningful on leaves
//   - kind: "reticulation" or "synthetic"; informational, since a node is a
//     reticulation exactly when it has more than one incoming edge
//
// Edges may repeat: two edges between the same pair of nodes describe both
// copies of a duplicated subtree hanging from one parent.
//
// # Loading Inputs
//
// [LoadFile] is the entry point used by the command line tool and the
// comparison runner. It accepts JSON graphs (by ".json" extension or a
// leading '{') and Newick or extended Newick text otherwise, and returns a
// [Source] holding the raw bytes (for content hashing) and a
// [reticulate.Input] ready to build.
//
// JSON graphs containing cycles are rejected with a STRUCTURAL_ERROR; no
// edge supplied by the user is ever dropped.
package io
