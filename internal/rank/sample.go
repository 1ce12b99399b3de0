package rank

import (
	"fmt"
	"math/rand/v2"

	"github.com/papapumpkin/linkrank/internal/linkgraph"
)

// Sample estimates PageRank by walking opts.Samples pages of a random surfer
// driven by Transition, starting from a uniformly chosen page. Each page's
// rank is the fraction of the walk spent on it, so pages never visited are
// absent from the table.
//
// All randomness comes from rng; the same seed and graph give the same table.
func Sample(g *linkgraph.Graph, opts Options, rng *rand.Rand) (Table, error) {
	if g == nil || g.Len() == 0 {
		return nil, fmt.Errorf("%w: empty graph", ErrInvalidInput)
	}
	if err := validateDamping(opts.Damping); err != nil {
		return nil, err
	}
	if opts.Samples < 1 {
		return nil, fmt.Errorf("%w: samples must be at least 1, got %d", ErrInvalidInput, opts.Samples)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidInput)
	}

	pages := g.Pages()
	// Transition is a pure function of the page, so each page's chooser is
	// built at most once per walk.
	choosers := make(map[string]chooser, len(pages))
	next := func(page string) (string, error) {
		c, ok := choosers[page]
		if !ok {
			dist, err := Transition(g, page, opts.Damping)
			if err != nil {
				return "", err
			}
			weights := make([]float64, len(pages))
			for i, p := range pages {
				weights[i] = dist[p]
			}
			c = newChooser(pages, weights)
			choosers[page] = c
		}
		return c.pick(rng), nil
	}

	visits := make(map[string]int, len(pages))
	current := pages[rng.IntN(len(pages))]
	visits[current]++

	for i := 1; i < opts.Samples; i++ {
		var err error
		current, err = next(current)
		if err != nil {
			return nil, err
		}
		visits[current]++
	}

	n := float64(opts.Samples)
	table := make(Table, len(visits))
	for p, count := range visits {
		table[p] = float64(count) / n
	}
	return table, nil
}
