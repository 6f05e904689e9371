package enewick_test

import (
	"fmt"

	"github.com/matzehuels/mulnet/pkg/enewick"
	"github.com/matzehuels/mulnet/pkg/fold"
	"github.com/matzehuels/mulnet/pkg/newick"
)

func ExampleDecode() {
	g, err := enewick.Decode("((A,(B)#H1),(#H1,C));")
	if err != nil {
		fmt.Println(err)
		return
	}
	back, _ := fold.Unfold(g)
	fmt.Println(newick.Format(back))
	// Output:
	// ((A,B),(B,C));
}

func ExampleEncode() {
	tree, _ := newick.Parse("((A,A),B);")
	g, _ := fold.Strict(tree)
	s, _ := enewick.Encode(g)
	fmt.Println(s)
	// Output:
	// (((A)#H1,#H1),B);
}
