package assign

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Unassigned marks a row matched to a padding column.
const Unassigned = -1

// Pair is one matched row and column with its input score.
type Pair struct {
	Row, Col int
	Score    float64
}

// Minimize returns, for every row of cost, the column assigned to it so that
// the total cost is minimal. Rows left over when cost has more rows than
// columns get Unassigned.
func Minimize(cost mat.Matrix) []int {
	rows, cols := cost.Dims()
	if rows == 0 || cols == 0 {
		out := make([]int, rows)
		for i := range out {
			out[i] = Unassigned
		}
		return out
	}
	n := max(rows, cols)

	// Potentials-based formulation over a 1-indexed square matrix; index 0
	// is a virtual column used while augmenting.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)   // p[j]: row matched to column j
	way := make([]int, n+1) // way[j]: previous column on the augmenting path
	at := func(i, j int) float64 {
		if i > rows || j > cols {
			return 0
		}
		return cost.At(i-1, j-1)
	}

	minv := make([]float64, n+1)
	used := make([]bool, n+1)
	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = math.Inf(1)
			used[j] = false
		}
		for {
			used[j0] = true
			i0, delta, j1 := p[j0], math.Inf(1), 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				if cur := at(i0, j) - u[i0] - v[j]; cur < minv[j] {
					minv[j], way[j] = cur, j0
				}
				if minv[j] < delta {
					delta, j1 = minv[j], j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	out := make([]int, rows)
	for i := range out {
		out[i] = Unassigned
	}
	for j := 1; j <= cols; j++ {
		if i := p[j]; i >= 1 && i <= rows {
			out[i-1] = j - 1
		}
	}
	return out
}

// MaximizeSimilarity matches rows to columns maximizing the summed score of
// sim. It returns the matched pairs in row order and their total score.
func MaximizeSimilarity(sim mat.Matrix) ([]Pair, float64) {
	rows, cols := sim.Dims()
	if rows == 0 || cols == 0 {
		return nil, 0
	}
	cost := mat.NewDense(rows, cols, nil)
	cost.Scale(-1, sim)

	var (
		pairs []Pair
		total float64
	)
	for i, j := range Minimize(cost) {
		if j == Unassigned {
			continue
		}
		s := sim.At(i, j)
		pairs = append(pairs, Pair{Row: i, Col: j, Score: s})
		total += s
	}
	return pairs, total
}
