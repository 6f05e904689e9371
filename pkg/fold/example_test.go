package fold_test

import (
	"fmt"

	"github.com/matzehuels/mulnet/pkg/fold"
	"github.com/matzehuels/mulnet/pkg/newick"
)

func ExampleStrict() {
	tree, _ := newick.Parse("((A,A),B);")
	g, _ := fold.Strict(tree)

	for _, n := range g.Nodes() {
		if n.IsReticulation() {
			fmt.Println("reticulation", n.ID, "parents:", g.Parents(n.ID))
		}
	}

	back, _ := fold.Unfold(g)
	fmt.Println(newick.Format(back))
	// Output:
	// reticulation r0 parents: [n1 n1]
	// ((A,A),B);
}
