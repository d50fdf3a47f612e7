package outcome

import (
	"testing"

	"github.com/spacehole-rogue/battlepath/internal/path"
	"github.com/spacehole-rogue/battlepath/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableScenarioB(t *testing.T) {
	table, err := NewTable(
		Entry[string]{Weight: 1, Value: "MONEY"},
		Entry[string]{Weight: 1, Value: "WILD_POKEMON"},
	)
	require.NoError(t, err)

	assert.Equal(t, "MONEY", table.Pick(&scripted{draws: []int{0}}))
	assert.Equal(t, "WILD_POKEMON", table.Pick(&scripted{draws: []int{1}}))
	assert.Equal(t, "MONEY", table.Pick(&scripted{draws: []int{2}}))
	assert.Equal(t, "MONEY", table.At(-1))
}

func TestTablePickDrawsOverTotal(t *testing.T) {
	table, err := NewTable(Entry[int]{Weight: 3, Value: 1}, Entry[int]{Weight: 4, Value: 2})
	require.NoError(t, err)
	src := &scripted{draws: []int{0}}
	table.Pick(src)
	assert.Equal(t, []int{7}, src.asked)
}

func TestBreakpointsScenarioC(t *testing.T) {
	table, err := FromBreakpoints([]int{750, 900, 950, 975, 1000}, []int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.Equal(t, 1000, table.Total())

	cases := map[int]int{
		0: 1, 749: 1,
		750: 2, 899: 2,
		900: 3, 949: 3,
		950: 4, 974: 4,
		975: 5, 999: 5,
	}
	for draw, tier := range cases {
		assert.Equal(t, tier, table.At(draw), "draw %d", draw)
	}

	counts := make(map[int]int)
	for draw := 0; draw < 1000; draw++ {
		counts[table.At(draw)]++
	}
	assert.Equal(t, map[int]int{1: 750, 2: 150, 3: 50, 4: 25, 5: 25}, counts)
}

func TestTableValidation(t *testing.T) {
	_, err := NewTable[int]()
	require.ErrorIs(t, err, ErrEmptyTable)

	_, err = NewTable(Entry[int]{Weight: 0, Value: 1})
	require.ErrorIs(t, err, ErrEmptyTable)

	_, err = NewTable(Entry[int]{Weight: -1, Value: 1}, Entry[int]{Weight: 5, Value: 2})
	require.Error(t, err)

	_, err = FromBreakpoints([]int{10, 5}, []int{1, 2})
	require.Error(t, err)

	_, err = FromBreakpoints([]int{10}, []int{1, 2})
	require.Error(t, err)
}

func TestTableZeroWeightRowIsNeverDrawn(t *testing.T) {
	table, err := NewTable(Entry[string]{Weight: 0, Value: "never"}, Entry[string]{Weight: 2, Value: "always"})
	require.NoError(t, err)
	assert.Equal(t, "always", table.At(0))
	assert.Equal(t, "always", table.At(1))
}

func TestTableIsDeterministicPerSeed(t *testing.T) {
	table, err := NewTable(DefaultMysteryTable...)
	require.NoError(t, err)

	a, b := rng.New(1234), rng.New(1234)
	for i := 0; i < 200; i++ {
		require.Equal(t, table.Pick(a), table.Pick(b))
	}
}

func TestTableFrequenciesConverge(t *testing.T) {
	table, err := NewTable(DefaultMysteryTable...)
	require.NoError(t, err)

	const draws = 200000
	src := rng.New(20240601)
	counts := make(map[path.NodeType]int)
	for i := 0; i < draws; i++ {
		counts[table.Pick(src)]++
	}
	for _, e := range table.Entries() {
		want := float64(e.Weight) / float64(table.Total())
		got := float64(counts[e.Value]) / draws
		assert.InDelta(t, want, got, 0.01, e.Value.String())
	}
}
