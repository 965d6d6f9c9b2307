package inmemory

import (
	"testing"
	"time"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("duel", 100*time.Millisecond)
	r.RecordSuccess("duel", 300*time.Millisecond)
	r.RecordSuccess("islands", 200*time.Millisecond)
	r.RecordFailure("lack_of_space")

	s := r.Snapshot()
	if s.GenerationTotal != 4 {
		t.Fatalf("expected total 4, got %d", s.GenerationTotal)
	}
	if s.GenerationSuccess != 3 {
		t.Fatalf("expected success 3, got %d", s.GenerationSuccess)
	}
	if s.GenerationFailure != 1 {
		t.Fatalf("expected failure 1, got %d", s.GenerationFailure)
	}
	if s.ByTemplate["duel"] != 2 || s.ByTemplate["islands"] != 1 {
		t.Fatalf("unexpected template counts %+v", s.ByTemplate)
	}
	if s.ByFailureReason["lack_of_space"] != 1 {
		t.Fatalf("expected lack_of_space count 1")
	}
	if s.AvgElapsedMS != 200 {
		t.Fatalf("expected avg 200ms, got %v", s.AvgElapsedMS)
	}
	if s.MaxElapsedMS != 300 {
		t.Fatalf("expected max 300ms, got %d", s.MaxElapsedMS)
	}
}

func TestRecorderSnapshotIsACopy(t *testing.T) {
	r := NewRecorder()
	r.RecordFailure("composition")
	s := r.Snapshot()
	s.ByFailureReason["composition"] = 99

	if got := r.Snapshot().ByFailureReason["composition"]; got != 1 {
		t.Fatalf("expected recorder untouched, got %d", got)
	}
}
