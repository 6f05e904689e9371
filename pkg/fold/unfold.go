package fold

import (
	"github.com/matzehuels/mulnet/pkg/dag"
	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/mtree"
)

// ErrReticulateRoot is the cause reported when the only root of a network is
// a reticulation.
var ErrReticulateRoot = dag.ErrReticulateRoot

// Unfold rebuilds the MUL-tree encoded by g. A reticulation is any node
// with more than one parent. A reticulation with a single
// child is transparent: its child subtree is copied at every reference, and
// the copy takes the length of the edge entering the reticulation.
//
// The graph must be acyclic with exactly one root that is not a
// reticulation; otherwise a STRUCTURAL_ERROR wrapping the dag sentinel is
// returned.
func Unfold(g *dag.DAG) (*mtree.Tree, error) {
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStructural, err, "cannot unfold network")
	}
	root, _ := g.Root()
	u := &unfolder{g: g, out: make(map[string]map[string][]dag.Edge)}
	for _, e := range g.Edges() {
		if u.out[e.From] == nil {
			u.out[e.From] = make(map[string][]dag.Edge)
		}
		u.out[e.From][e.To] = append(u.out[e.From][e.To], e)
	}
	return mtree.New(u.expand(root, dag.Edge{})), nil
}

type unfolder struct {
	g   *dag.DAG
	out map[string]map[string][]dag.Edge // from -> to -> parallel edges
}

func (u *unfolder) expand(id string, in dag.Edge) *mtree.Node {
	n, _ := u.g.Node(id)
	children := u.g.Children(id)
	if u.g.IsReticulation(id) && len(children) == 1 {
		return u.expand(children[0], in)
	}

	out := &mtree.Node{Label: n.Label}
	if in.HasLength {
		out.SetLength(in.Length)
	}
	// Children repeats a child once per parallel edge; pair each occurrence
	// with its own edge so lengths follow the right copy.
	used := map[string]int{}
	for _, c := range children {
		e := u.out[id][c][used[c]]
		used[c]++
		out.AddChild(u.expand(c, e))
	}
	return out
}
