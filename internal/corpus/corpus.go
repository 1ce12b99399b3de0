// Package corpus turns files on disk into a linkgraph.Graph: either a
// directory of HTML pages whose anchors are crawled, or a TOML manifest that
// lists each page's links directly.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/papapumpkin/linkrank/internal/linkgraph"
)

// ErrEmptyCorpus is returned when a source yields no pages.
var ErrEmptyCorpus = errors.New("corpus has no pages")

// ErrUnsupportedSource is returned by Load for paths that are neither a
// directory nor a .toml manifest.
var ErrUnsupportedSource = errors.New("unsupported corpus source")

// Load reads the corpus at path. A directory is crawled for HTML pages; a
// file ending in .toml is read as a manifest.
func Load(path string) (*linkgraph.Graph, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	if info.IsDir() {
		return Crawl(path)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadManifest(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
}
