package outcome

import (
	"slices"

	"github.com/spacehole-rogue/battlepath/internal/path"
)

// Member is the view of a party member the path subsystem needs.
type Member struct {
	Slot      int // party order
	Species   string
	Types     []string
	BaseStats int // sum of base stats
	Fainted   bool
}

// StrengthEvaluator finds the strongest living party member.
type StrengthEvaluator interface {
	Strongest() (Member, bool)
}

// Stronger reports whether a beats b: higher base-stat sum, then earlier slot.
func Stronger(a, b Member) bool {
	if a.BaseStats != b.BaseStats {
		return a.BaseStats > b.BaseStats
	}
	return a.Slot < b.Slot
}

// ResolvedDynamicMode is a node's dynamic mode with placeholders filled in.
type ResolvedDynamicMode struct {
	Flags           []string
	ExtraDamageType string // empty when the modifier is off
	NerfedSpecies   string // empty when the modifier is off
}

// Active reports whether any modifier applies.
func (r ResolvedDynamicMode) Active() bool {
	return len(r.Flags) > 0 || r.ExtraDamageType != "" || r.NerfedSpecies != ""
}

// ResolveDynamicMode projects a node's dynamic mode against the current party.
// It never writes to the node and never draws randomness, so it is safe for
// hover previews. With no living member the placeholders stay empty.
func ResolveDynamicMode(m *path.DynamicMode, eval StrengthEvaluator) ResolvedDynamicMode {
	if m == nil {
		return ResolvedDynamicMode{}
	}
	out := ResolvedDynamicMode{Flags: slices.Clone(m.Flags)}
	if m.TypeExtraDamage.Enabled {
		out.ExtraDamageType = m.TypeExtraDamage.Value
	}
	if m.PokemonNerf.Enabled {
		out.NerfedSpecies = m.PokemonNerf.Value
	}
	if !m.NeedsResolution() || eval == nil {
		return out
	}

	strongest, ok := eval.Strongest()
	if !ok {
		return out
	}
	if m.TypeExtraDamage.Unresolved() && len(strongest.Types) > 0 {
		out.ExtraDamageType = strongest.Types[0]
	}
	if m.PokemonNerf.Unresolved() {
		out.NerfedSpecies = strongest.Species
	}
	return out
}

// Party is a StrengthEvaluator over a plain slice.
type Party []Member

// Strongest implements StrengthEvaluator.
func (p Party) Strongest() (Member, bool) {
	var best Member
	found := false
	for _, m := range p {
		if m.Fainted {
			continue
		}
		if !found || Stronger(m, best) {
			best, found = m, true
		}
	}
	return best, found
}
