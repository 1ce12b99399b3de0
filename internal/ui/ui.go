// Package ui renders rank tables and run status for the terminal. Results
// go to Out; progress and diagnostics go to Err with ANSI styling.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/papapumpkin/linkrank/internal/rank"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	yellow = "\033[33m"
	green  = "\033[32m"
	red    = "\033[31m"
	cyan   = "\033[36m"
)

// Printer writes rank tables to Out and status lines to Err.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

// New returns a Printer on stdout and stderr.
func New() *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr}
}

// RankTable prints a titled table with one "  page: rank" line per page in
// lexicographic order, ranks to four decimal places.
func (p *Printer) RankTable(title string, table rank.Table) {
	fmt.Fprintln(p.Out, title)
	for _, page := range table.Pages() {
		fmt.Fprintf(p.Out, "  %s: %.4f\n", page, table[page])
	}
}

// SamplingResults prints the sampling estimate, titled with the walk length.
func (p *Printer) SamplingResults(samples int, table rank.Table) {
	p.RankTable(fmt.Sprintf("PageRank Results from Sampling (n = %d)", samples), table)
}

// IterationResults prints the iterative estimate.
func (p *Printer) IterationResults(table rank.Table) {
	p.RankTable("PageRank Results from Iteration", table)
}

// CorpusLoaded summarizes the graph read from source.
func (p *Printer) CorpusLoaded(source string, pages, links, dangling int) {
	fmt.Fprintf(p.Err, dim+"corpus %s: %d page(s), %d link(s), %d dangling"+reset+"\n",
		source, pages, links, dangling)
}

// Sweep reports one pass of the iterative estimator.
func (p *Printer) Sweep(s rank.Sweep) {
	fmt.Fprintf(p.Err, dim+"  sweep %3d  delta %.6g"+reset+"\n", s.Iteration, s.Delta)
}

// Converged reports how many sweeps the iterative estimator needed.
func (p *Printer) Converged(sweeps int, criterion rank.Criterion) {
	fmt.Fprintf(p.Err, green+"✓ converged"+reset+dim+" after %d sweep(s) (%s delta)"+reset+"\n", sweeps, criterion)
}

// Watching announces the directory being watched.
func (p *Printer) Watching(dir string) {
	fmt.Fprintf(p.Err, bold+cyan+"◆ watching %s"+reset+dim+" (ctrl-c to stop)"+reset+"\n", dir)
}

// CorpusChanged announces a change that triggers a re-rank.
func (p *Printer) CorpusChanged(kind, file string) {
	fmt.Fprintf(p.Err, "\n"+yellow+"↻ %s %s"+reset+"\n", kind, file)
}

// Info prints a dimmed informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.Err, dim+"%s"+reset+"\n", msg)
}

// Error prints a non-fatal error.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.Err, red+bold+"error: "+reset+"%s\n", msg)
}
