package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/spacehole-rogue/battlepath/internal/run"
	"github.com/spacehole-rogue/battlepath/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNFromEnv(t *testing.T) {
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPORT", "6543")
	t.Setenv("PGUSER", "runner")
	t.Setenv("PGDATABASE", "paths")
	t.Setenv("PGPASSWORD", "")
	assert.Equal(t, "host=db.internal port=6543 user=runner dbname=paths sslmode=disable", DSNFromEnv())

	t.Setenv("PGPASSWORD", "s3cret")
	assert.Equal(t, "host=db.internal port=6543 user=runner password=s3cret dbname=paths sslmode=disable", DSNFromEnv())
}

func TestDSNDefaults(t *testing.T) {
	for _, k := range []string{"PGHOST", "PGPORT", "PGUSER", "PGDATABASE", "PGPASSWORD"} {
		t.Setenv(k, "")
	}
	assert.Equal(t, "host=127.0.0.1 port=5432 user=battlepath dbname=battlepath sslmode=disable", DSNFromEnv())
}

// TestRoundTrip needs a live server; set BATTLEPATH_TEST_PG_DSN to run it.
func TestRoundTrip(t *testing.T) {
	dsn := os.Getenv("BATTLEPATH_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("BATTLEPATH_TEST_PG_DSN not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()

	st := run.New(99)
	st.Money = 40
	require.NoError(t, s.Save(ctx, st))
	st.Money = 80
	require.NoError(t, s.Save(ctx, st))

	got, err := s.Load(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, got.Money)

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.ID, latest.ID)

	_, err = s.Load(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
