package party

import (
	"testing"

	"github.com/spacehole-rogue/battlepath/internal/outcome"
	"github.com/spacehole-rogue/battlepath/internal/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stats(total int) Stats {
	// spread evenly; HP takes the remainder
	each := total / 6
	return Stats{HP: total - 5*each, Attack: each, Defense: each, SpAttack: each, SpDefense: each, Speed: each}
}

func TestStrongestPicksHighestTotal(t *testing.T) {
	r := NewRoster()
	require.True(t, r.Add("pidgey", []string{"normal", "flying"}, stats(251)))
	require.True(t, r.Add("gyarados", []string{"water", "flying"}, stats(540)))
	require.True(t, r.Add("rattata", []string{"normal"}, stats(253)))

	m, ok := r.Strongest()
	require.True(t, ok)
	assert.Equal(t, "gyarados", m.Species)
	assert.Equal(t, 1, m.Slot)
	assert.Equal(t, 540, m.BaseStats)
}

func TestStrongestTieGoesToEarlierSlot(t *testing.T) {
	r := NewRoster()
	r.Add("snorlax", []string{"normal"}, stats(540))
	r.Add("gengar", []string{"ghost", "poison"}, stats(540))

	m, ok := r.Strongest()
	require.True(t, ok)
	assert.Equal(t, "snorlax", m.Species)
}

func TestStrongestSkipsFainted(t *testing.T) {
	r := NewRoster()
	r.Add("mewtwo", []string{"psychic"}, stats(680))
	r.Add("eevee", []string{"normal"}, stats(325))
	require.True(t, r.SetHP(0, 0))

	m, ok := r.Strongest()
	require.True(t, ok)
	assert.Equal(t, "eevee", m.Species)

	require.True(t, r.SetHP(1, -5))
	_, ok = r.Strongest()
	assert.False(t, ok)
}

func TestRemoveKeepsOrderDense(t *testing.T) {
	r := NewRoster()
	r.Add("a", nil, stats(300))
	r.Add("b", nil, stats(300))
	r.Add("c", nil, stats(300))
	require.True(t, r.Remove(0))
	assert.False(t, r.Remove(5))

	members := r.Members()
	require.Len(t, members, 2)
	assert.Equal(t, "b", members[0].Species)
	assert.Equal(t, 0, members[0].Slot)
	assert.Equal(t, "c", members[1].Species)
	assert.Equal(t, 1, members[1].Slot)

	m, _ := r.Strongest()
	assert.Equal(t, "b", m.Species)
}

func TestPartyIsBounded(t *testing.T) {
	r := NewRoster()
	for i := 0; i < MaxSize; i++ {
		require.True(t, r.Add("x", nil, stats(300)))
	}
	assert.False(t, r.Add("overflow", nil, stats(300)))
	assert.Equal(t, MaxSize, r.Len())
}

func TestRosterDrivesDynamicMode(t *testing.T) {
	r := NewRoster()
	r.Add("charizard", []string{"fire", "flying"}, stats(534))
	mode := &path.DynamicMode{TypeExtraDamage: path.Target{Enabled: true}, PokemonNerf: path.Target{Enabled: true}}

	got := outcome.ResolveDynamicMode(mode, r)
	assert.Equal(t, "fire", got.ExtraDamageType)
	assert.Equal(t, "charizard", got.NerfedSpecies)
}
