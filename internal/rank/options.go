// Package rank estimates PageRank over a linkgraph.Graph, either by
// simulating a random surfer or by iterating the PageRank equation to a
// fixed point.
package rank

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned for empty graphs, unknown pages, and option
// values outside their allowed range.
var ErrInvalidInput = errors.New("invalid input")

// ErrDidNotConverge is returned when the iterative estimator reaches its
// iteration cap without meeting the convergence criterion.
var ErrDidNotConverge = errors.New("did not converge")

// Criterion selects how successive rank tables are compared.
type Criterion int

const (
	// CriterionMaxDelta stops once every page changed by less than Epsilon.
	CriterionMaxDelta Criterion = iota
	// CriterionTotalVariation stops once the summed absolute change across
	// all pages is below Epsilon.
	CriterionTotalVariation
)

func (c Criterion) String() string {
	switch c {
	case CriterionMaxDelta:
		return "max"
	case CriterionTotalVariation:
		return "total"
	default:
		return fmt.Sprintf("Criterion(%d)", int(c))
	}
}

// ParseCriterion maps "max" and "total" (case-insensitive) to a Criterion.
func ParseCriterion(s string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "":
		return CriterionMaxDelta, nil
	case "total":
		return CriterionTotalVariation, nil
	default:
		return 0, fmt.Errorf("%w: unknown criterion %q", ErrInvalidInput, s)
	}
}

// Sweep describes one completed pass of the iterative estimator.
type Sweep struct {
	Iteration int     // 1-based
	Delta     float64 // measured by the configured Criterion
}

// Options configures both estimators.
type Options struct {
	Damping       float64 // probability of following a link; typically 0.85
	Samples       int     // random-walk length for Sample
	Epsilon       float64 // convergence threshold for Iterate
	MaxIterations int     // safety cap for Iterate
	Criterion     Criterion
	Renormalize   bool // rescale ranks to sum to 1 after every sweep

	// OnSweep, if set, is called after every sweep of Iterate.
	OnSweep func(Sweep)
}

// DefaultOptions returns damping 0.85, 10000 samples, epsilon 0.001,
// a 1000 iteration cap, per-page convergence and renormalization.
func DefaultOptions() Options {
	return Options{
		Damping:       0.85,
		Samples:       10000,
		Epsilon:       0.001,
		MaxIterations: 1000,
		Criterion:     CriterionMaxDelta,
		Renormalize:   true,
	}
}

// Validate reports the first option outside its allowed range.
func (o Options) Validate() error {
	if err := validateDamping(o.Damping); err != nil {
		return err
	}
	if o.Samples < 1 {
		return fmt.Errorf("%w: samples must be at least 1, got %d", ErrInvalidInput, o.Samples)
	}
	if !(o.Epsilon > 0) {
		return fmt.Errorf("%w: epsilon must be positive, got %g", ErrInvalidInput, o.Epsilon)
	}
	if o.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrInvalidInput, o.MaxIterations)
	}
	switch o.Criterion {
	case CriterionMaxDelta, CriterionTotalVariation:
	default:
		return fmt.Errorf("%w: unknown criterion %d", ErrInvalidInput, int(o.Criterion))
	}
	return nil
}

func validateDamping(d float64) error {
	// The negated form also rejects NaN.
	if !(d >= 0 && d <= 1) {
		return fmt.Errorf("%w: damping must be in [0, 1], got %g", ErrInvalidInput, d)
	}
	return nil
}
