package memory

import (
	"context"
	"sync"

	"scenariogen/internal/app/ports"
)

type Store struct {
	mu   sync.RWMutex
	maps map[string]ports.MapBundle
}

func NewStore() *Store {
	return &Store{
		maps: make(map[string]ports.MapBundle),
	}
}

type txKey struct{}

func withTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, true)
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// read runs fn under the read lock unless ctx already holds the store lock.
func (s *Store) read(ctx context.Context, fn func()) {
	if !inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}
