package cmd

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/linkrank/internal/config"
	"github.com/papapumpkin/linkrank/internal/corpus"
	"github.com/papapumpkin/linkrank/internal/linkgraph"
	"github.com/papapumpkin/linkrank/internal/rank"
	"github.com/papapumpkin/linkrank/internal/telemetry"
	"github.com/papapumpkin/linkrank/internal/ui"
)

// session bundles what one invocation needs to rank a corpus.
type session struct {
	cfg     config.Config
	opts    rank.Options
	printer *ui.Printer
	em      *telemetry.Emitter
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	printer := ui.New()
	printer.Out = cmd.OutOrStdout()
	printer.Err = cmd.ErrOrStderr()

	var em *telemetry.Emitter
	if cfg.TelemetryPath != "" {
		em, err = telemetry.NewEmitter(cfg.TelemetryPath)
		if err != nil {
			return nil, err
		}
	}
	return &session{cfg: cfg, opts: opts, printer: printer, em: em}, nil
}

func (s *session) Close() error {
	return s.em.Close()
}

func runRank(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.rankCorpus(args[0])
}

// rankCorpus loads the corpus at source and prints both estimates.
func (s *session) rankCorpus(source string) error {
	run := telemetry.NewRun(s.em)
	_ = run.Emit(telemetry.KindRunStart, "", map[string]any{
		"source":    source,
		"damping":   s.opts.Damping,
		"samples":   s.opts.Samples,
		"epsilon":   s.opts.Epsilon,
		"criterion": s.opts.Criterion.String(),
	})

	g, err := corpus.Load(source)
	if err != nil {
		_ = run.Emit(telemetry.KindFailed, "", map[string]any{"error": err.Error()})
		return err
	}
	_ = run.Emit(telemetry.KindCorpusLoad, "", map[string]any{
		"pages":    g.Len(),
		"links":    g.EdgeCount(),
		"dangling": len(g.Dangling()),
	})
	if s.cfg.Verbose {
		s.printer.CorpusLoaded(source, g.Len(), g.EdgeCount(), len(g.Dangling()))
	}

	sampled, iterated, err := s.estimate(run, g)
	if err != nil {
		_ = run.Emit(telemetry.KindFailed, "", map[string]any{"error": err.Error()})
		return err
	}

	s.printer.SamplingResults(s.opts.Samples, sampled)
	s.printer.IterationResults(iterated)
	_ = run.Emit(telemetry.KindRunDone, "", nil)
	return nil
}

// estimate runs both estimators side by side. Each owns its table and the
// sampler owns its random source; only the read-only graph is shared.
func (s *session) estimate(run *telemetry.Run, g *linkgraph.Graph) (rank.Table, rank.Table, error) {
	seed := s.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	iterOpts := s.opts
	sweeps := 0
	iterOpts.OnSweep = func(sw rank.Sweep) {
		sweeps = sw.Iteration
		_ = run.Emit(telemetry.KindSweep, telemetry.EstimatorIteration, map[string]any{
			"iteration": sw.Iteration,
			"delta":     sw.Delta,
		})
		if s.cfg.Verbose {
			s.printer.Sweep(sw)
		}
	}

	var (
		wg                 sync.WaitGroup
		sampled, iterated  rank.Table
		sampleErr, iterErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		sampled, sampleErr = rank.Sample(g, s.opts, rng)
	}()
	go func() {
		defer wg.Done()
		iterated, iterErr = rank.Iterate(g, iterOpts)
	}()
	wg.Wait()

	if sampleErr != nil {
		return nil, nil, fmt.Errorf("sampling: %w", sampleErr)
	}
	_ = run.Emit(telemetry.KindSampled, telemetry.EstimatorSampling, map[string]any{
		"seed":    seed,
		"samples": s.opts.Samples,
		"visited": len(sampled),
	})

	if iterErr != nil {
		return nil, nil, fmt.Errorf("iteration: %w", iterErr)
	}
	_ = run.Emit(telemetry.KindConverged, telemetry.EstimatorIteration, map[string]any{
		"iterations": sweeps,
	})
	if s.cfg.Verbose {
		s.printer.Converged(sweeps, s.opts.Criterion)
		s.printer.Info(fmt.Sprintf("sampling seed %d", seed))
	}
	return sampled, iterated, nil
}
