package rank

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultOptions_Valid(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Fatalf("DefaultOptions().Validate() = %v", err)
	}
	if opts.Damping != 0.85 || opts.Samples != 10000 || opts.Epsilon != 0.001 || opts.MaxIterations != 1000 {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if opts.Criterion != CriterionMaxDelta || !opts.Renormalize {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"damping above one", func(o *Options) { o.Damping = 1.01 }},
		{"damping NaN", func(o *Options) { o.Damping = math.NaN() }},
		{"zero samples", func(o *Options) { o.Samples = 0 }},
		{"zero epsilon", func(o *Options) { o.Epsilon = 0 }},
		{"NaN epsilon", func(o *Options) { o.Epsilon = math.NaN() }},
		{"zero iterations", func(o *Options) { o.MaxIterations = 0 }},
		{"unknown criterion", func(o *Options) { o.Criterion = Criterion(9) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			if err := opts.Validate(); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestParseCriterion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Criterion
		wantErr bool
	}{
		{"max", CriterionMaxDelta, false},
		{"", CriterionMaxDelta, false},
		{"TOTAL", CriterionTotalVariation, false},
		{" total ", CriterionTotalVariation, false},
		{"sum", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCriterion(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("ParseCriterion(%q) error = %v, want ErrInvalidInput", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCriterion(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseCriterion(%q) = %v, want %v", tt.in, got, tt.want)
			}
			back, err := ParseCriterion(got.String())
			if err != nil || back != got {
				t.Errorf("ParseCriterion(%q) = %v, %v; want %v", got.String(), back, err, got)
			}
		})
	}
}

func TestTable_Ranking(t *testing.T) {
	t.Parallel()
	table := Table{"b": 0.3, "a": 0.3, "c": 0.4}
	got := table.Ranking()
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Ranking() = %v, want %v", got, want)
		}
	}
}
