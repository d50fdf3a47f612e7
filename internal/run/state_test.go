package run

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartsAtWaveOne(t *testing.T) {
	s := New(5)
	assert.Equal(t, 1, s.Selection.Wave)
	assert.Empty(t, s.Selection.SelectedPath)
	_, err := uuid.Parse(s.ID)
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, New(5).ID)
}

func TestRecordRivalDeduplicates(t *testing.T) {
	s := New(1)
	s.RecordRival(4)
	s.RecordRival(9)
	s.RecordRival(4)
	assert.Equal(t, []int{4, 9}, s.RivalWaves)
}

func TestCloneIsDeep(t *testing.T) {
	s := New(1)
	s.RecordRival(3)
	s.RNGState = []byte{1, 2, 3}
	c := s.Clone()
	c.RivalWaves[0] = 99
	c.RNGState[0] = 42
	c.Selection.Wave = 7
	assert.Equal(t, []int{3}, s.RivalWaves)
	assert.Equal(t, byte(1), s.RNGState[0])
	assert.Equal(t, 1, s.Selection.Wave)
}
