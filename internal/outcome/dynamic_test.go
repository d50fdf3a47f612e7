package outcome

import (
	"testing"

	"github.com/spacehole-rogue/battlepath/internal/path"
	"github.com/stretchr/testify/assert"
)

func TestPartyStrongestSkipsFaintedAndBreaksTiesBySlot(t *testing.T) {
	party := Party{
		{Slot: 0, Species: "bulbasaur", Types: []string{"grass"}, BaseStats: 318},
		{Slot: 1, Species: "mewtwo", Types: []string{"psychic"}, BaseStats: 680, Fainted: true},
		{Slot: 2, Species: "snorlax", Types: []string{"normal"}, BaseStats: 540},
		{Slot: 3, Species: "gengar", Types: []string{"ghost", "poison"}, BaseStats: 540},
	}
	m, ok := party.Strongest()
	assert.True(t, ok)
	assert.Equal(t, "snorlax", m.Species)

	_, ok = Party{{Fainted: true}}.Strongest()
	assert.False(t, ok)
}

func TestResolveDynamicModeFillsPlaceholders(t *testing.T) {
	party := Party{
		{Slot: 0, Species: "gengar", Types: []string{"ghost", "poison"}, BaseStats: 500},
		{Slot: 1, Species: "pidgey", Types: []string{"normal", "flying"}, BaseStats: 251},
	}
	mode := &path.DynamicMode{
		Flags:           []string{"noItems"},
		TypeExtraDamage: path.Target{Enabled: true},
		PokemonNerf:     path.Target{Enabled: true},
	}

	got := ResolveDynamicMode(mode, party)
	assert.Equal(t, ResolvedDynamicMode{Flags: []string{"noItems"}, ExtraDamageType: "ghost", NerfedSpecies: "gengar"}, got)
	assert.True(t, got.Active())

	// the shared node is untouched
	assert.True(t, mode.TypeExtraDamage.Unresolved())
	assert.True(t, mode.PokemonNerf.Unresolved())
}

func TestResolveDynamicModeKeepsFixedValues(t *testing.T) {
	mode := &path.DynamicMode{
		TypeExtraDamage: path.Target{Enabled: true, Value: "fire"},
		PokemonNerf:     path.Target{Enabled: false, Value: "ignored"},
	}
	got := ResolveDynamicMode(mode, Party{{Species: "gengar", Types: []string{"ghost"}, BaseStats: 500}})
	assert.Equal(t, "fire", got.ExtraDamageType)
	assert.Empty(t, got.NerfedSpecies)
}

func TestResolveDynamicModeWithoutParty(t *testing.T) {
	mode := &path.DynamicMode{PokemonNerf: path.Target{Enabled: true}}
	assert.Equal(t, ResolvedDynamicMode{}, ResolveDynamicMode(mode, Party{}))
	assert.Equal(t, ResolvedDynamicMode{}, ResolveDynamicMode(mode, nil))
	assert.False(t, ResolveDynamicMode(nil, Party{}).Active())
}
