// Package telemetry provides a JSONL event stream for estimation runs. Each
// run start, iterative sweep, estimator result, and failure is recorded as a
// structured JSON event tagged with a run ID, so runs can be inspected and
// compared after the fact.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event kinds identify the type of telemetry event.
const (
	KindRunStart   = "run_start"
	KindRunDone    = "run_done"
	KindSweep      = "sweep"
	KindConverged  = "converged"
	KindSampled    = "sampled"
	KindFailed     = "failed"
	KindCorpusLoad = "corpus_load"
)

// Estimator names used in Event.Estimator.
const (
	EstimatorSampling  = "sampling"
	EstimatorIteration = "iteration"
)

// Event represents a single telemetry record. Each event carries a timestamp,
// a kind tag, the run it belongs to, and optionally the estimator that
// produced it along with arbitrary structured data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	RunID     string    `json:"run,omitempty"`
	Estimator string    `json:"estimator,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter appends run events to a JSONL file, one JSON object per line.
// The two estimators of a run may emit at the same time, so writes are
// serialized. A nil *Emitter discards everything, which is how runs without
// --telemetry behave.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
}

// NewEmitter opens path for appending, creating it if needed, so successive
// runs accumulate in one file.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file: f,
		enc:  json.NewEncoder(f),
	}, nil
}

// Emit appends evt as one line.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode %s event: %w", evt.Kind, err)
	}
	return nil
}

// Close releases the file. Events are written unbuffered, so nothing is lost
// if Close is skipped on a fatal error.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close %s: %w", e.file.Name(), err)
	}
	return nil
}

// Run stamps events for one estimation run. A Run over a nil Emitter
// records nothing.
type Run struct {
	ID string

	em  *Emitter
	now func() time.Time
}

// NewRun starts a run with a fresh random ID.
func NewRun(em *Emitter) *Run {
	return &Run{ID: uuid.NewString(), em: em, now: time.Now}
}

// Emit records an event of the given kind for this run.
func (r *Run) Emit(kind, estimator string, data any) error {
	return r.em.Emit(Event{
		Timestamp: r.now().UTC(),
		Kind:      kind,
		RunID:     r.ID,
		Estimator: estimator,
		Data:      data,
	})
}
