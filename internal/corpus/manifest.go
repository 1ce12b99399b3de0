package corpus

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/linkrank/internal/linkgraph"
)

// Manifest is the TOML form of a link graph:
//
//	[pages]
//	"1.html" = ["2.html"]
//	"2.html" = ["1.html", "3.html"]
//	"3.html" = []
type Manifest struct {
	Pages map[string][]string `toml:"pages"`
}

// LoadManifest reads a TOML manifest and builds its graph. As with Crawl,
// links to pages missing from the manifest and self links are dropped.
func LoadManifest(path string) (*linkgraph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: reading manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest builds a graph from manifest bytes.
func ParseManifest(data []byte) (*linkgraph.Graph, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("corpus: parsing manifest: %w", err)
	}
	if len(m.Pages) == 0 {
		return nil, fmt.Errorf("%w: manifest has no [pages] entries", ErrEmptyCorpus)
	}
	g, err := linkgraph.FromLinks(m.Pages)
	if err != nil {
		return nil, fmt.Errorf("corpus: manifest: %w", err)
	}
	return g, nil
}

// MarshalManifest renders g as a manifest.
func MarshalManifest(g *linkgraph.Graph) ([]byte, error) {
	m := Manifest{Pages: make(map[string][]string, g.Len())}
	for _, p := range g.Pages() {
		m.Pages[p] = g.Links(p)
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("corpus: encoding manifest: %w", err)
	}
	return data, nil
}
