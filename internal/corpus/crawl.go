package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/papapumpkin/linkrank/internal/linkgraph"
)

// hrefPattern matches the href of an anchor tag.
var hrefPattern = regexp.MustCompile(`<a\s+(?:[^>]*?)href="([^"]*)"`)

// Crawl reads every .html file directly inside dir and links each page to
// the other pages of the directory its anchors point at. Page IDs are file
// names; links leaving the directory are dropped.
func Crawl(dir string) (*linkgraph.Graph, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("corpus: reading %s: %w", dir, err)
	}

	b := linkgraph.NewBuilder()
	pages := 0
	for _, e := range entries {
		if e.IsDir() || !IsPageFile(e.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("corpus: reading %s: %w", e.Name(), err)
		}
		if err := b.AddPage(e.Name()); err != nil {
			return nil, fmt.Errorf("corpus: %s: %w", e.Name(), err)
		}
		for _, href := range ExtractLinks(string(data)) {
			if err := b.AddLink(e.Name(), href); err != nil {
				return nil, fmt.Errorf("corpus: %s: %w", e.Name(), err)
			}
		}
		pages++
	}
	if pages == 0 {
		return nil, fmt.Errorf("%w: no .html files in %s", ErrEmptyCorpus, dir)
	}
	return b.Build(), nil
}

// ExtractLinks returns the distinct non-empty hrefs of the anchor tags in
// contents, in order of first appearance.
func ExtractLinks(contents string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range hrefPattern.FindAllStringSubmatch(contents, -1) {
		href := m[1]
		if href == "" || seen[href] {
			continue
		}
		seen[href] = true
		out = append(out, href)
	}
	return out
}

// IsPageFile reports whether name is an HTML page of a corpus directory.
func IsPageFile(name string) bool {
	return strings.HasSuffix(name, ".html")
}
