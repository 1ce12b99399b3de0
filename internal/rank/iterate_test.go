package rank

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papapumpkin/linkrank/internal/linkgraph"
)

// tight returns options converging far below the default threshold so
// results can be compared against closed-form values.
func tight() Options {
	opts := DefaultOptions()
	opts.Epsilon = 1e-12
	return opts
}

func TestIterate_Pair(t *testing.T) {
	t.Parallel()
	table, err := Iterate(buildPair(t), DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 0.5, table["A"], 1e-9)
	assert.InDelta(t, 0.5, table["B"], 1e-9)
}

func TestIterate_Triangle(t *testing.T) {
	t.Parallel()
	table, err := Iterate(buildTriangle(t), DefaultOptions())
	require.NoError(t, err)
	for _, p := range []string{"A", "B", "C"} {
		assert.InDelta(t, 1.0/3, table[p], 1e-9, "rank of %s", p)
	}
}

func TestIterate_Corpus0(t *testing.T) {
	t.Parallel()
	table, err := Iterate(buildCorpus0(t), tight())
	require.NoError(t, err)

	want := Table{"1.html": 0.2199, "2.html": 0.4292, "3.html": 0.2199, "4.html": 0.1310}
	for p, w := range want {
		assert.InDelta(t, w, table[p], 1e-4, "rank of %s", p)
	}
	assert.Equal(t, []string{"2.html", "1.html", "3.html", "4.html"}, table.Ranking())
}

func TestIterate_DanglingConservesMass(t *testing.T) {
	t.Parallel()
	for _, renormalize := range []bool{true, false} {
		opts := tight()
		opts.Renormalize = renormalize
		table, err := Iterate(buildDangling(t), opts)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, table.Sum(), 1e-9, "renormalize=%v", renormalize)
		assert.InDelta(t, 20.0/57, table["A"], 1e-9)
		assert.InDelta(t, 37.0/57, table["D"], 1e-9)
	}
}

func TestIterate_BoundsAndSum(t *testing.T) {
	t.Parallel()
	for name, g := range map[string]*linkgraph.Graph{
		"pair":     buildPair(t),
		"triangle": buildTriangle(t),
		"dangling": buildDangling(t),
		"corpus0":  buildCorpus0(t),
		"mixed":    buildMixed(t),
	} {
		for _, c := range []Criterion{CriterionMaxDelta, CriterionTotalVariation} {
			opts := DefaultOptions()
			opts.Criterion = c
			table, err := Iterate(g, opts)
			require.NoError(t, err, "%s/%s", name, c)
			require.Len(t, table, g.Len())
			assert.InDelta(t, 1.0, table.Sum(), 1e-3, "%s/%s", name, c)
			for p, r := range table {
				assert.GreaterOrEqual(t, r, 0.0, "%s/%s %s", name, c, p)
				assert.LessOrEqual(t, r, 1.0, "%s/%s %s", name, c, p)
			}
		}
	}
}

func TestIterate_SinglePage(t *testing.T) {
	t.Parallel()
	g := mustGraph(t, map[string][]string{"only": nil})
	table, err := Iterate(g, DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, table["only"], 1e-12)
}

func TestIterate_Deterministic(t *testing.T) {
	t.Parallel()
	g := buildMixed(t)
	a, err := Iterate(g, DefaultOptions())
	require.NoError(t, err)
	b, err := Iterate(g, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestIterateFrom_ConvergedIsStable(t *testing.T) {
	t.Parallel()
	g := buildMixed(t)
	opts := DefaultOptions()
	first, err := Iterate(g, opts)
	require.NoError(t, err)

	var sweeps int
	opts.OnSweep = func(Sweep) { sweeps++ }
	second, err := IterateFrom(g, opts, first)
	require.NoError(t, err)

	assert.Equal(t, 1, sweeps, "a converged table should pass on the first sweep")
	for _, p := range g.Pages() {
		assert.InDelta(t, first[p], second[p], opts.Epsilon, "rank of %s", p)
	}
}

func TestIterateFrom_RejectsBadInitial(t *testing.T) {
	t.Parallel()
	g := buildPair(t)
	tests := []struct {
		name    string
		initial Table
	}{
		{"missing page", Table{"A": 1}},
		{"unknown page", Table{"A": 0.5, "Z": 0.5}},
		{"negative rank", Table{"A": 1.5, "B": -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IterateFrom(g, DefaultOptions(), tt.initial)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("IterateFrom error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestIterate_OnSweepReportsProgress(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	var got []Sweep
	opts.OnSweep = func(s Sweep) { got = append(got, s) }

	_, err := Iterate(buildCorpus0(t), opts)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	for i, s := range got {
		assert.Equal(t, i+1, s.Iteration)
	}
	last := got[len(got)-1]
	assert.Less(t, last.Delta, opts.Epsilon)
	for _, s := range got[:len(got)-1] {
		assert.GreaterOrEqual(t, s.Delta, opts.Epsilon)
	}
}

func TestIterate_TotalVariationNeedsMoreSweepsThanMax(t *testing.T) {
	t.Parallel()
	g := buildMixed(t)
	count := func(c Criterion) int {
		opts := DefaultOptions()
		opts.Criterion = c
		n := 0
		opts.OnSweep = func(Sweep) { n++ }
		_, err := Iterate(g, opts)
		require.NoError(t, err)
		return n
	}
	assert.GreaterOrEqual(t, count(CriterionTotalVariation), count(CriterionMaxDelta))
}

func TestIterate_DidNotConverge(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	opts.MaxIterations = 2
	opts.Epsilon = 1e-15

	_, err := Iterate(buildCorpus0(t), opts)
	if !errors.Is(err, ErrDidNotConverge) {
		t.Fatalf("Iterate error = %v, want ErrDidNotConverge", err)
	}
}

func TestIterate_Errors(t *testing.T) {
	t.Parallel()
	_, err := Iterate(linkgraph.NewBuilder().Build(), DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Iterate(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidInput)

	opts := DefaultOptions()
	opts.Epsilon = 0
	_, err = Iterate(buildPair(t), opts)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
