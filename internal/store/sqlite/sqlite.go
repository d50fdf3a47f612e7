// Package sqlite stores runs in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spacehole-rogue/battlepath/internal/run"
	"github.com/spacehole-rogue/battlepath/internal/store"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	seed       INTEGER NOT NULL,
	wave       INTEGER NOT NULL,
	state_json BLOB NOT NULL,
	rev        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_rev ON runs(rev DESC);
`

// Store is a SQLite-backed run store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Load(ctx context.Context, id string) (*run.State, error) {
	row := s.db.QueryRowContext(ctx, `SELECT state_json FROM runs WHERE id = ?`, id)
	return scan(row, id)
}

func (s *Store) Latest(ctx context.Context) (*run.State, error) {
	row := s.db.QueryRowContext(ctx, `SELECT state_json FROM runs ORDER BY rev DESC LIMIT 1`)
	return scan(row, "")
}

// Save upserts the run and bumps its revision so Latest finds it.
func (s *Store) Save(ctx context.Context, st *run.State) error {
	data, err := store.Encode(st)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, seed, wave, state_json, rev)
		 VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(rev), 0) + 1 FROM runs))
		 ON CONFLICT(id) DO UPDATE SET
		    wave = excluded.wave,
		    state_json = excluded.state_json,
		    rev = excluded.rev`,
		st.ID, st.Seed, st.Selection.Wave, data,
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

func scan(row *sql.Row, id string) (*run.State, error) {
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("load run: %w", err)
	}
	return store.Decode(data)
}

var _ store.Store = (*Store)(nil)
