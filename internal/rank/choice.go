package rank

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// chooser draws items with probability proportional to their weight.
type chooser struct {
	items      []string
	cumulative []float64
}

func newChooser(items []string, weights []float64) chooser {
	cum := make([]float64, len(weights))
	floats.CumSum(cum, weights)
	return chooser{items: items, cumulative: cum}
}

// pick draws u uniformly from [0, total) and returns the first item whose
// cumulative weight exceeds u.
func (c chooser) pick(rng *rand.Rand) string {
	total := c.cumulative[len(c.cumulative)-1]
	u := rng.Float64() * total
	i := sort.Search(len(c.cumulative), func(i int) bool {
		return c.cumulative[i] > u
	})
	if i == len(c.items) {
		// Only reachable through rounding in the last cumulative weight.
		i = len(c.items) - 1
	}
	return c.items[i]
}
