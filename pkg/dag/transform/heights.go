package transform

import "github.com/matzehuels/mulnet/pkg/dag"

// Heights returns the longest distance from every node to a leaf below it.
// Leaves are at height 0.
//
// Heights walks the graph bottom-up with Kahn's algorithm: sinks start the
// queue and a parent is enqueued once all of its children are done. Each
// parent is assigned one plus the maximum height of its children.
//
// Nodes on a cycle never reach zero remaining out-degree and keep height 0.
// Call [dag.DAG.Validate] first on untrusted input.
//
// Time complexity is O(V + E).
func Heights(g *dag.DAG) map[string]int {
	nodes := g.Nodes()
	outDegree := make(map[string]int, len(nodes))
	heights := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.OutDegree(n.ID)
		outDegree[n.ID] = degree
		heights[n.ID] = 0
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, parent := range g.Parents(curr) {
			if h := heights[curr] + 1; h > heights[parent] {
				heights[parent] = h
			}
			outDegree[parent]--
			if outDegree[parent] == 0 {
				queue = append(queue, parent)
			}
		}
	}

	return heights
}

// Levels groups node IDs by height, lowest first. Within a level IDs keep
// the graph's insertion order.
func Levels(g *dag.DAG) [][]string {
	heights := Heights(g)
	top := 0
	for _, h := range heights {
		top = max(top, h)
	}
	if g.NodeCount() == 0 {
		return nil
	}
	levels := make([][]string, top+1)
	for _, n := range g.Nodes() {
		h := heights[n.ID]
		levels[h] = append(levels[h], n.ID)
	}
	return levels
}
