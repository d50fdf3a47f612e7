// Package postgres stores runs in PostgreSQL for shared deployments.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spacehole-rogue/battlepath/internal/run"
	"github.com/spacehole-rogue/battlepath/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS battlepath_runs (
	id         TEXT PRIMARY KEY,
	seed       BIGINT NOT NULL,
	wave       INTEGER NOT NULL,
	state_json JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	rev        BIGSERIAL
);
CREATE INDEX IF NOT EXISTS idx_battlepath_runs_rev ON battlepath_runs(rev DESC);
`

// Store is a PostgreSQL-backed run store.
type Store struct {
	db *sql.DB
}

// DSNFromEnv builds a connection string from the standard PG* variables.
func DSNFromEnv() string {
	host := getEnv("PGHOST", "127.0.0.1")
	port := getEnv("PGPORT", "5432")
	user := getEnv("PGUSER", "battlepath")
	dbname := getEnv("PGDATABASE", "battlepath")
	if password := os.Getenv("PGPASSWORD"); password != "" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable",
		host, port, user, dbname)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// Open connects using dsn, or DSNFromEnv when dsn is empty.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = DSNFromEnv()
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Load(ctx context.Context, id string) (*run.State, error) {
	row := s.db.QueryRowContext(ctx, `SELECT state_json FROM battlepath_runs WHERE id = $1`, id)
	return scan(row, id)
}

func (s *Store) Latest(ctx context.Context) (*run.State, error) {
	row := s.db.QueryRowContext(ctx, `SELECT state_json FROM battlepath_runs ORDER BY rev DESC LIMIT 1`)
	return scan(row, "")
}

func (s *Store) Save(ctx context.Context, st *run.State) error {
	data, err := store.Encode(st)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO battlepath_runs (id, seed, wave, state_json)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
		    wave = EXCLUDED.wave,
		    state_json = EXCLUDED.state_json,
		    updated_at = now(),
		    rev = nextval(pg_get_serial_sequence('battlepath_runs', 'rev'))`,
		st.ID, st.Seed, st.Selection.Wave, string(data),
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
