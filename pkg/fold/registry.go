package fold

import "strconv"

// registry hands out node IDs scoped to one folding run.
type registry struct {
	next map[byte]int
}

func newRegistry() *registry {
	return &registry{next: make(map[byte]int)}
}

func (r *registry) id(prefix byte) string {
	k := r.next[prefix]
	r.next[prefix] = k + 1
	return string(prefix) + strconv.Itoa(k)
}

// Prefixes used by the registry.
const (
	prefixNode         = 'n'
	prefixReticulation = 'r'
	prefixSynthetic    = 's'
)
