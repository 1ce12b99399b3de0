// Package linkgraph models a corpus of pages and the hyperlinks between
// them. A Graph is built once through a Builder and is read-only afterwards,
// so it may be shared freely between goroutines.
package linkgraph

import (
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyPageID is returned when a page is registered with an empty ID.
var ErrEmptyPageID = errors.New("empty page id")

// Graph is an immutable directed link graph. Every outbound target is
// itself a page of the graph and no page links to itself.
type Graph struct {
	pages []string // sorted
	// outbound maps page → set of linked pages (forward edges).
	outbound map[string]map[string]bool
	// inbound maps page → set of pages linking to it (backward edges).
	inbound map[string]map[string]bool
}

// Builder accumulates pages and raw links. Links may name targets that are
// never registered as pages; those are dropped by Build.
type Builder struct {
	links map[string]map[string]bool
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{links: make(map[string]map[string]bool)}
}

// AddPage registers a page. Registering the same page twice is a no-op.
func (b *Builder) AddPage(id string) error {
	if id == "" {
		return ErrEmptyPageID
	}
	if _, ok := b.links[id]; !ok {
		b.links[id] = make(map[string]bool)
	}
	return nil
}

// AddLink records a link from one page to another, registering from as a
// page if needed. The target does not have to be a page yet.
func (b *Builder) AddLink(from, to string) error {
	if err := b.AddPage(from); err != nil {
		return err
	}
	if to == "" {
		return fmt.Errorf("%w: link target from %s", ErrEmptyPageID, from)
	}
	b.links[from][to] = true
	return nil
}

// Build restricts every page's links to the registered pages, drops self
// links, and returns the resulting Graph. The Builder may keep being used;
// the Graph does not share state with it.
func (b *Builder) Build() *Graph {
	g := &Graph{
		pages:    make([]string, 0, len(b.links)),
		outbound: make(map[string]map[string]bool, len(b.links)),
		inbound:  make(map[string]map[string]bool, len(b.links)),
	}
	for id := range b.links {
		g.pages = append(g.pages, id)
		g.outbound[id] = make(map[string]bool)
		g.inbound[id] = make(map[string]bool)
	}
	sort.Strings(g.pages)

	for from, targets := range b.links {
		for to := range targets {
			if to == from {
				continue
			}
			if _, ok := b.links[to]; !ok {
				continue
			}
			g.outbound[from][to] = true
			g.inbound[to][from] = true
		}
	}
	return g
}

// FromLinks builds a Graph from a page → targets mapping. The keys define
// the corpus.
func FromLinks(links map[string][]string) (*Graph, error) {
	b := NewBuilder()
	for page := range links {
		if err := b.AddPage(page); err != nil {
			return nil, err
		}
	}
	for page, targets := range links {
		for _, to := range targets {
			if err := b.AddLink(page, to); err != nil {
				return nil, err
			}
		}
	}
	return b.Build(), nil
}

// Len returns the number of pages.
func (g *Graph) Len() int {
	return len(g.pages)
}

// Pages returns all page IDs, sorted lexicographically.
func (g *Graph) Pages() []string {
	out := make([]string, len(g.pages))
	copy(out, g.pages)
	return out
}

// Has reports whether id is a page of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.outbound[id]
	return ok
}

// Links returns the pages id links to, sorted. Unknown pages have no links.
func (g *Graph) Links(id string) []string {
	return sortedKeys(g.outbound[id])
}

// LinksTo reports whether from links directly to to.
func (g *Graph) LinksTo(from, to string) bool {
	return g.outbound[from][to]
}

// Inbound returns the pages linking to id, sorted.
func (g *Graph) Inbound(id string) []string {
	return sortedKeys(g.inbound[id])
}

// OutDegree returns the number of pages id links to.
func (g *Graph) OutDegree(id string) int {
	return len(g.outbound[id])
}

// IsDangling reports whether id is a page with no outbound links.
func (g *Graph) IsDangling(id string) bool {
	return g.Has(id) && len(g.outbound[id]) == 0
}

// Dangling returns every page with no outbound links, sorted.
func (g *Graph) Dangling() []string {
	var out []string
	for _, id := range g.pages {
		if len(g.outbound[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// EdgeCount returns the total number of links in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, targets := range g.outbound {
		n += len(targets)
	}
	return n
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
