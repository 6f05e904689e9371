// Package assign solves the linear assignment problem with the Hungarian
// (Kuhn-Munkres) algorithm in O(n³).
//
// Rectangular inputs are padded to a square with zero-cost dummy rows or
// columns, so exactly min(rows, cols) real pairs are always matched.
package assign
