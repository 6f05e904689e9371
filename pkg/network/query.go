package network

import "fmt"

// WarningCode identifies a recoverable anomaly.
type WarningCode string

// WarnParentCount flags a reticulation that does not have exactly two
// parents.
const WarnParentCount WarningCode = "PARENT_COUNT"

// Warning describes a recoverable anomaly found while reading a network.
// Callers decide whether it should fail a batch.
type Warning struct {
	Code    WarningCode
	Node    string
	Parents int
	Message string
}

func (w Warning) String() string { return string(w.Code) + ": " + w.Message }

// Sisters holds the sister clades of one reticulation, one per parent edge.
type Sisters struct {
	Reticulation string
	Clades       []LabelSet
}

// Reticulations returns the IDs of nodes with in-degree above one, in
// insertion order.
func (n *Network) Reticulations() []string {
	out := make([]string, len(n.retic))
	copy(out, n.retic)
	return out
}

// Leaves returns the IDs of nodes without children.
func (n *Network) Leaves() []string {
	var out []string
	for _, node := range n.g.Sinks() {
		out = append(out, node.ID)
	}
	return out
}

// ReticulationLeaves returns, for every reticulation in Reticulations
// order, the labels of the leaves reachable from it.
func (n *Network) ReticulationLeaves() []LabelSet {
	out := make([]LabelSet, len(n.retic))
	for i, r := range n.retic {
		out[i] = n.leavesBelow(r, "")
	}
	return out
}

// ReticulationSisters returns the sister clades of every reticulation. For
// each parent edge, the clade is the set of leaves reachable from the
// parent's other children without passing through the reticulation.
//
// A reticulation without exactly two parent edges yields a WarnParentCount
// warning; its clades are still computed from the parents present.
func (n *Network) ReticulationSisters() ([]Sisters, []Warning) {
	var warnings []Warning
	out := make([]Sisters, len(n.retic))
	for i, r := range n.retic {
		parents := n.g.Parents(r)
		if len(parents) != 2 {
			warnings = append(warnings, Warning{
				Code:    WarnParentCount,
				Node:    r,
				Parents: len(parents),
				Message: fmt.Sprintf("reticulation %s has %d parents, expected 2", r, len(parents)),
			})
		}
		s := Sisters{Reticulation: r, Clades: make([]LabelSet, len(parents))}
		for j, p := range parents {
			clade := LabelSet{}
			for _, c := range n.g.Children(p) {
				if c == r {
					continue
				}
				for l := range n.leavesBelow(c, r) {
					clade[l] = struct{}{}
				}
			}
			s.Clades[j] = clade
		}
		out[i] = s
	}
	return out, warnings
}

// leavesBelow collects leaf labels reachable from start, never entering
// blocked.
func (n *Network) leavesBelow(start, blocked string) LabelSet {
	out := LabelSet{}
	if start == blocked {
		return out
	}
	seen := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		children := n.g.Children(id)
		if len(children) == 0 {
			node, _ := n.g.Node(id)
			out[node.Label] = struct{}{}
			continue
		}
		for _, c := range children {
			if c != blocked && !seen[c] {
				seen[c] = true
				stack = append(stack, c)
			}
		}
	}
	return out
}
