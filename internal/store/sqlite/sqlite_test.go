package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spacehole-rogue/battlepath/internal/path"
	"github.com/spacehole-rogue/battlepath/internal/rng"
	"github.com/spacehole-rogue/battlepath/internal/run"
	"github.com/spacehole-rogue/battlepath/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(p)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s, p
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestRunRoundTrip(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	src := rng.New(42)
	src.Int(10)
	state, err := src.State()
	require.NoError(t, err)

	st := run.New(42)
	st.Selection = path.Selection{Wave: 4, SelectedPath: "n3"}
	st.Money = 230
	st.PermaMoney = 12
	st.MajorBossWave = 3
	st.RecordRival(2)
	st.FacingBoss = true
	st.RNGState = state
	st.RNGDraws = src.Draws()
	require.NoError(t, s.Save(ctx, st))

	got, err := s.Load(ctx, st.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(st, got); diff != "" {
		t.Errorf("run mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveUpdatesInPlace(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	a, b := run.New(1), run.New(2)
	require.NoError(t, s.Save(ctx, a))
	require.NoError(t, s.Save(ctx, b))

	a.Selection.Wave = 9
	require.NoError(t, s.Save(ctx, a))

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, latest.ID)
	assert.Equal(t, 9, latest.Selection.Wave)

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(p)
	require.NoError(t, err)
	st := run.New(5)
	require.NoError(t, s.Save(ctx, st))
	require.NoError(t, s.Close())

	s, err = Open(p)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.ID, got.ID)
}

func TestMissingRun(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()
	_, err := s.Load(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Latest(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
