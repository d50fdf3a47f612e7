// Package memory is an in-process run store used by tests and by the front
// end when persistence is disabled.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/spacehole-rogue/battlepath/internal/run"
	"github.com/spacehole-rogue/battlepath/internal/store"
)

// Store keeps deep copies so callers cannot mutate saved runs.
type Store struct {
	mu     sync.Mutex
	runs   map[string]*run.State
	latest string
	saves  int
}

// New creates an empty store.
func New() *Store {
	return &Store{runs: make(map[string]*run.State)}
}

func (s *Store) Load(_ context.Context, id string) (*run.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return st.Clone(), nil
}

func (s *Store) Latest(ctx context.Context) (*run.State, error) {
	s.mu.Lock()
	id := s.latest
	s.mu.Unlock()
	if id == "" {
		return nil, store.ErrNotFound
	}
	return s.Load(ctx, id)
}

func (s *Store) Save(_ context.Context, st *run.State) error {
	if st == nil || st.ID == "" {
		return fmt.Errorf("run id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[st.ID] = st.Clone()
	s.latest = st.ID
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *Store) Close() error { return nil }

var _ store.Store = (*Store)(nil)
