package rank

import (
	"testing"

	"github.com/papapumpkin/linkrank/internal/linkgraph"
)

// --- Test fixtures ---

func mustGraph(t *testing.T, links map[string][]string) *linkgraph.Graph {
	t.Helper()
	g, err := linkgraph.FromLinks(links)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// buildPair creates A ⇄ B.
func buildPair(t *testing.T) *linkgraph.Graph {
	return mustGraph(t, map[string][]string{"A": {"B"}, "B": {"A"}})
}

// buildTriangle creates A → B → C → A.
func buildTriangle(t *testing.T) *linkgraph.Graph {
	return mustGraph(t, map[string][]string{"A": {"B"}, "B": {"C"}, "C": {"A"}})
}

// buildDangling creates A → D where D links nowhere.
func buildDangling(t *testing.T) *linkgraph.Graph {
	return mustGraph(t, map[string][]string{"A": {"D"}, "D": nil})
}

// buildCorpus0 is a four page site:
//
//	1 → 2
//	2 → 1, 3
//	3 → 2, 4
//	4 → 2
func buildCorpus0(t *testing.T) *linkgraph.Graph {
	return mustGraph(t, map[string][]string{
		"1.html": {"2.html"},
		"2.html": {"1.html", "3.html"},
		"3.html": {"2.html", "4.html"},
		"4.html": {"2.html"},
	})
}

// buildMixed has a hub, a dangling page, and a page nobody links to.
func buildMixed(t *testing.T) *linkgraph.Graph {
	return mustGraph(t, map[string][]string{
		"hub":    {"a", "b", "sink"},
		"a":      {"hub"},
		"b":      {"a", "hub"},
		"sink":   nil,
		"orphan": {"hub", "sink"},
	})
}
