package inmemory

import (
	"sync"
	"time"
)

type Snapshot struct {
	GenerationTotal   uint64            `json:"generation_total"`
	GenerationSuccess uint64            `json:"generation_success"`
	GenerationFailure uint64            `json:"generation_failure"`
	ByTemplate        map[string]uint64 `json:"by_template"`
	ByFailureReason   map[string]uint64 `json:"by_failure_reason"`
	AvgElapsedMS      float64           `json:"avg_elapsed_ms"`
	MaxElapsedMS      int64             `json:"max_elapsed_ms"`
}

type Recorder struct {
	mu         sync.Mutex
	success    uint64
	failure    uint64
	elapsed    time.Duration
	maxElapsed time.Duration
	byTemplate map[string]uint64
	byReason   map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byTemplate: map[string]uint64{},
		byReason:   map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(template string, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byTemplate[template]++
	r.elapsed += elapsed
	r.maxElapsed = max(r.maxElapsed, elapsed)
}

func (r *Recorder) RecordFailure(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
	r.byReason[reason]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		GenerationSuccess: r.success,
		GenerationFailure: r.failure,
		GenerationTotal:   r.success + r.failure,
		ByTemplate:        make(map[string]uint64, len(r.byTemplate)),
		ByFailureReason:   make(map[string]uint64, len(r.byReason)),
		MaxElapsedMS:      r.maxElapsed.Milliseconds(),
	}
	if r.success > 0 {
		out.AvgElapsedMS = float64(r.elapsed.Milliseconds()) / float64(r.success)
	}
	for k, v := range r.byTemplate {
		out.ByTemplate[k] = v
	}
	for k, v := range r.byReason {
		out.ByFailureReason[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
