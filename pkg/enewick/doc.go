// Package enewick reads and writes extended Newick, the Newick dialect that
// marks reticulations with "#H<id>" labels.
//
// # Notation
//
// A reticulation appears once as a definition and at least once more as a
// reference:
//
//	((A,(B)#H1),(#H1,C));
//
// A node carrying "#H<id>" is a definition when it has children or a name
// before the marker ("B#H1" names the single leaf below the reticulation).
// A childless bare "#H<id>" is a reference; [Decode] drops it and connects
// its parent to the definition instead, keeping the reference's branch
// length.
//
// # Encoding
//
// [Encode] numbers reticulations #H1, #H2, ... in order of first encounter
// in a depth-first walk. The first occurrence is written in full as
// "(child)#Hk" and later ones as a bare "#Hk".
package enewick
