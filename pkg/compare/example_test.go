package compare_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/mulnet/pkg/compare"
	"github.com/matzehuels/mulnet/pkg/reticulate"
)

func ExampleCompare() {
	a, _ := reticulate.New(reticulate.Newick("((sp1,sp1),sp2);"), reticulate.FoldParams{})
	b, _ := reticulate.New(reticulate.Newick("(((sp1,sp1),sp1),sp2);"), reticulate.FoldParams{})

	m, _ := compare.Compare(context.Background(), a, b, compare.Options{SkipEditDistance: true})
	fmt.Println("ret_count_diff:", m.RetCountDiff)
	fmt.Printf("ploidy TP=%d FP=%d FN=%d dist=%.2f\n", m.Ploidy.TP, m.Ploidy.FP, m.Ploidy.FN, m.Ploidy.Dist)
	// Output:
	// ret_count_diff: 1
	// ploidy TP=1 FP=1 FN=0 dist=0.50
}
