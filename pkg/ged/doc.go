// Package ged computes the graph edit distance between two networks.
//
// # Cost Model
//
// An edit path transforms graph A into graph B with unit-cost operations:
//
//   - deleting a node of A or inserting a node of B costs 1
//   - substituting a node costs 0 when the display labels are equal and 1
//     otherwise
//   - deleting or inserting an edge costs 1; parallel edges count once each
//
// Display labels are the taxon labels of leaves. Internal nodes and
// reticulations are unlabeled and match each other freely.
//
// # Search
//
// [Distance] runs a depth-first branch and bound over node mappings. Nodes of
// A are visited in breadth-first order from the root; for each one the search
// tries the options that add the least cost first, with deletion last among
// equals. The first complete mapping becomes the incumbent and later
// branches are pruned with an admissible lower bound made of:
//
//   - a node term: max(|RA|, |RB|) minus the size of the label multiset
//     intersection of the unmapped nodes
//   - an edge term: the difference between the numbers of edges not yet
//     fixed on either side
//
// The search is anytime. When [Options.Timeout] expires, the context is
// cancelled or [Options.FirstSolution] is set, the best mapping found so far
// is returned with [Result.Exact] false. Worst-case running time is
// factorial in the number of nodes.
package ged
