package reticulate_test

import (
	"fmt"

	"github.com/matzehuels/mulnet/pkg/reticulate"
)

func ExampleNew() {
	rt, err := reticulate.New(reticulate.Newick("((A,A),B);"), reticulate.FoldParams{})
	if err != nil {
		fmt.Println(err)
		return
	}
	s, _ := rt.ExtendedNewick()
	fmt.Println(s)
	fmt.Println("Reticulations:", len(rt.Reticulations()))
	fmt.Println("Copies of A:", rt.LeafCounts()["A"])
	// Output:
	// (((A)#H1,#H1),B);
	// Reticulations: 1
	// Copies of A: 2
}
