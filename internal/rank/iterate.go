package rank

import (
	"fmt"
	"math"

	"github.com/papapumpkin/linkrank/internal/linkgraph"
)

// Iterate computes PageRank by repeatedly applying
//
//	PR(p) = (1-d)/N + d * (Σ PR(q)/L(q) over q linking to p + Σ PR(q)/N over dangling q)
//
// to every page at once, starting from the uniform distribution, until the
// change between sweeps falls below opts.Epsilon as measured by
// opts.Criterion. Dangling pages are treated as linking to every page,
// themselves included, so no rank leaks out of the graph.
//
// Returns ErrDidNotConverge if opts.MaxIterations sweeps are not enough.
func Iterate(g *linkgraph.Graph, opts Options) (Table, error) {
	if g == nil || g.Len() == 0 {
		return nil, fmt.Errorf("%w: empty graph", ErrInvalidInput)
	}
	initial := make(Table, g.Len())
	u := 1 / float64(g.Len())
	for _, p := range g.Pages() {
		initial[p] = u
	}
	return iterate(g, opts, initial)
}

// IterateFrom is Iterate starting from initial instead of the uniform
// distribution. initial must hold a non-negative rank for exactly the pages
// of g.
func IterateFrom(g *linkgraph.Graph, opts Options, initial Table) (Table, error) {
	if g == nil || g.Len() == 0 {
		return nil, fmt.Errorf("%w: empty graph", ErrInvalidInput)
	}
	if len(initial) != g.Len() {
		return nil, fmt.Errorf("%w: initial table has %d pages, graph has %d",
			ErrInvalidInput, len(initial), g.Len())
	}
	start := make(Table, len(initial))
	for p, r := range initial {
		if !g.Has(p) {
			return nil, fmt.Errorf("%w: initial table names unknown page %q", ErrInvalidInput, p)
		}
		if !(r >= 0) {
			return nil, fmt.Errorf("%w: initial rank of %q is %g", ErrInvalidInput, p, r)
		}
		start[p] = r
	}
	return iterate(g, opts, start)
}

func iterate(g *linkgraph.Graph, opts Options, rank Table) (Table, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	pages := g.Pages()
	n := float64(len(pages))
	base := (1 - opts.Damping) / n
	dangling := g.Dangling()

	// Reverse links and out-degrees never change between sweeps.
	inbound := make(map[string][]string, len(pages))
	outDeg := make(map[string]float64, len(pages))
	for _, p := range pages {
		inbound[p] = g.Inbound(p)
		outDeg[p] = float64(g.OutDegree(p))
	}

	var delta float64
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		// Rank held by dangling pages is spread over every page.
		var danglingSum float64
		for _, q := range dangling {
			danglingSum += rank[q]
		}
		danglingShare := danglingSum / n

		next := make(Table, len(pages))
		for _, p := range pages {
			var sum float64
			for _, q := range inbound[p] {
				sum += rank[q] / outDeg[q]
			}
			next[p] = base + opts.Damping*(sum+danglingShare)
		}

		if opts.Renormalize {
			normalize(next)
		}

		delta = measure(opts.Criterion, rank, next, pages)
		rank = next

		if opts.OnSweep != nil {
			opts.OnSweep(Sweep{Iteration: iter, Delta: delta})
		}
		if delta < opts.Epsilon {
			return rank, nil
		}
	}

	return nil, fmt.Errorf("%w: %d iterations, last delta %g (%s)",
		ErrDidNotConverge, opts.MaxIterations, delta, opts.Criterion)
}

// measure compares two successive tables.
func measure(c Criterion, prev, next Table, pages []string) float64 {
	var out float64
	for _, p := range pages {
		d := math.Abs(next[p] - prev[p])
		switch c {
		case CriterionTotalVariation:
			out += d
		default:
			out = math.Max(out, d)
		}
	}
	return out
}

func normalize(t Table) {
	sum := t.Sum()
	if sum == 0 {
		return
	}
	for p := range t {
		t[p] /= sum
	}
}
