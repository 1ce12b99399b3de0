package rank

import (
	"fmt"

	"github.com/papapumpkin/linkrank/internal/linkgraph"
)

// Transition returns the probability distribution of a random surfer's next
// page given that it is on page.
//
// A dangling page jumps to every page with equal probability. Otherwise
// every page receives (1-damping)/N for the random jump, and each page that
// page links to additionally receives damping/outdegree. Linked pages keep
// their share of the random jump so the weights sum to 1 and the chain is
// the one Iterate solves; giving them damping/outdegree alone would leave
// (1-damping)*outdegree/N of the mass unassigned.
func Transition(g *linkgraph.Graph, page string, damping float64) (Distribution, error) {
	if g == nil || g.Len() == 0 {
		return nil, fmt.Errorf("%w: empty graph", ErrInvalidInput)
	}
	if !g.Has(page) {
		return nil, fmt.Errorf("%w: unknown page %q", ErrInvalidInput, page)
	}
	if err := validateDamping(damping); err != nil {
		return nil, err
	}

	pages := g.Pages()
	n := float64(len(pages))
	dist := make(Distribution, len(pages))

	if g.IsDangling(page) {
		for _, p := range pages {
			dist[p] = 1 / n
		}
		return dist, nil
	}

	jump := (1 - damping) / n
	for _, p := range pages {
		dist[p] = jump
	}
	follow := damping / float64(g.OutDegree(page))
	for _, p := range g.Links(page) {
		dist[p] += follow
	}
	return dist, nil
}
