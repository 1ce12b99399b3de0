package rank

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Distribution maps each page to the probability of visiting it next.
type Distribution map[string]float64

// Table maps pages to their estimated PageRank.
type Table map[string]float64

// Pages returns the pages present in the table, sorted.
func (t Table) Pages() []string {
	out := make([]string, 0, len(t))
	for p := range t {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Sum returns the total rank in the table.
func (t Table) Sum() float64 {
	return floats.Sum(t.values())
}

// values returns the table's values in sorted page order so that
// floating-point sums are reproducible.
func (t Table) values() []float64 {
	pages := t.Pages()
	vals := make([]float64, len(pages))
	for i, p := range pages {
		vals[i] = t[p]
	}
	return vals
}

// Ranking returns pages ordered by descending rank, ties broken by page ID.
func (t Table) Ranking() []string {
	pages := t.Pages()
	sort.SliceStable(pages, func(i, j int) bool {
		return t[pages[i]] > t[pages[j]]
	})
	return pages
}
