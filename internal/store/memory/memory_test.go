package memory

import (
	"context"
	"testing"

	"github.com/spacehole-rogue/battlepath/internal/run"
	"github.com/spacehole-rogue/battlepath/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	st := run.New(7)
	st.RecordRival(3)
	require.NoError(t, s.Save(ctx, st))
	st.RivalWaves[0] = 99
	st.Money = 500

	got, err := s.Load(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, got.RivalWaves)
	assert.Zero(t, got.Money)
	assert.Equal(t, 1, s.Saves())
}

func TestLatestTracksLastSave(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.Latest(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	a, b := run.New(1), run.New(2)
	require.NoError(t, s.Save(ctx, a))
	require.NoError(t, s.Save(ctx, b))
	require.NoError(t, s.Save(ctx, a))

	got, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func TestLoadMissing(t *testing.T) {
	_, err := New().Load(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveRequiresID(t *testing.T) {
	assert.Error(t, New().Save(context.Background(), &run.State{}))
}
