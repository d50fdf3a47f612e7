// Package store persists run state between sessions.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spacehole-rogue/battlepath/internal/run"
)

// ErrNotFound is returned when no saved run matches.
var ErrNotFound = errors.New("run not found")

// Store saves and loads run state. Implementations must be safe to call from
// one goroutine at a time; the session never calls them concurrently.
type Store interface {
	// Load returns the run with the given id.
	Load(ctx context.Context, id string) (*run.State, error)
	// Latest returns the most recently saved run.
	Latest(ctx context.Context) (*run.State, error)
	// Save upserts a run.
	Save(ctx context.Context, st *run.State) error
	Close() error
}

// Encode serializes a run for the SQL backends.
func Encode(st *run.State) ([]byte, error) {
	if st == nil || st.ID == "" {
		return nil, fmt.Errorf("run id is required")
	}
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode run: %w", err)
	}
	return data, nil
}

// Decode is the inverse of Encode.
func Decode(data []byte) (*run.State, error) {
	var st run.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return &st, nil
}
