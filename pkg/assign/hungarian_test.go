package assign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func totalCost(cost *mat.Dense, a []int) float64 {
	sum := 0.0
	for i, j := range a {
		if j != Unassigned {
			sum += cost.At(i, j)
		}
	}
	return sum
}

func TestMinimize(t *testing.T) {
	tests := []struct {
		name string
		r, c int
		data []float64
		want float64
	}{
		{"identity", 3, 3, []float64{0, 1, 1, 1, 0, 1, 1, 1, 0}, 0},
		{"classic", 3, 3, []float64{4, 1, 3, 2, 0, 5, 3, 2, 2}, 5},
		{"wide", 2, 3, []float64{5, 1, 9, 2, 8, 1}, 2},
		{"tall", 3, 2, []float64{5, 1, 2, 8, 0, 0}, 1},
		{"negative", 2, 2, []float64{-1, -5, -3, -2}, -8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost := mat.NewDense(tt.r, tt.c, tt.data)
			a := Minimize(cost)
			assert.Len(t, a, tt.r)
			assert.InDelta(t, tt.want, totalCost(cost, a), 1e-9)

			seen := map[int]bool{}
			matched := 0
			for _, j := range a {
				if j == Unassigned {
					continue
				}
				assert.False(t, seen[j], "column %d assigned twice", j)
				seen[j] = true
				matched++
			}
			assert.Equal(t, min(tt.r, tt.c), matched)
		})
	}
}

func TestMinimize_Tall(t *testing.T) {
	cost := mat.NewDense(3, 2, []float64{5, 1, 2, 8, 0, 0})
	a := Minimize(cost)
	unassigned := 0
	for _, j := range a {
		if j == Unassigned {
			unassigned++
		}
	}
	assert.Equal(t, 1, unassigned)
}

func TestMaximizeSimilarity(t *testing.T) {
	// Rows {x,y} and {z}; one column {x,y,w}.
	sim := mat.NewDense(2, 1, []float64{2.0 / 3.0, 0})
	pairs, total := MaximizeSimilarity(sim)

	assert.Equal(t, []Pair{{Row: 0, Col: 0, Score: 2.0 / 3.0}}, pairs)
	assert.InDelta(t, 2.0/3.0, total, 1e-12)
}

// noCols is a 2×0 matrix; mat.Dense cannot represent zero dimensions.
type noCols struct{}

func (noCols) Dims() (int, int)    { return 2, 0 }
func (noCols) At(i, j int) float64 { panic("no elements") }
func (m noCols) T() mat.Matrix     { return mat.Transpose{Matrix: m} }

func TestMaximizeSimilarity_Empty(t *testing.T) {
	pairs, total := MaximizeSimilarity(noCols{})
	assert.Empty(t, pairs)
	assert.Zero(t, total)
	assert.Equal(t, []int{Unassigned, Unassigned}, Minimize(noCols{}))
}
