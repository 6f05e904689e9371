package fold

import (
	"github.com/matzehuels/mulnet/pkg/dag"
	"github.com/matzehuels/mulnet/pkg/dag/transform"
	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/mtree"
)

// ErrEmptyTree is returned when folding a nil tree or a tree without a root.
var ErrEmptyTree = errors.New(errors.ErrCodeInvalidInput, "tree is empty")

// Strict folds t into a network by merging subtrees with identical
// canonical forms. Heights are processed from the root down to the leaves;
// a group whose first member is the root is skipped.
//
// For a tree without accidental isomorphisms across heights, Unfold of the
// result is isomorphic to t.
func Strict(t *mtree.Tree) (*dag.DAG, error) {
	if t == nil || t.Root == nil {
		return nil, ErrEmptyTree
	}
	b := newBuilder(t)
	p := mtree.Analyze(t)
	levels := p.ByHeight()

	for h := p.Height(t.Root); h >= 0; h-- {
		for _, group := range p.GroupByCanonical(levels[h]) {
			b.merge(b.present(group))
		}
	}
	transform.Simplify(b.g)
	return b.g, nil
}
