// Package party stores the player's active roster as ECS entities and answers
// the strength queries the battle path needs for dynamic-mode targeting.
package party

import (
	"slices"

	"github.com/mlange-42/ark/ecs"
	"github.com/spacehole-rogue/battlepath/internal/outcome"
)

// MaxSize is the number of party slots.
const MaxSize = 6

// Slot is the member's position in party order.
type Slot struct {
	Index int
}

// Species identifies what the member is.
type Species struct {
	Name  string
	Types []string // primary type first
}

// Stats holds base stats and current health.
type Stats struct {
	HP, Attack, Defense, SpAttack, SpDefense, Speed int

	CurrentHP int
}

// Total is the base-stat sum used to rank members.
func (s *Stats) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpAttack + s.SpDefense + s.Speed
}

// Fainted reports whether the member can no longer fight.
func (s *Stats) Fainted() bool { return s.CurrentHP <= 0 }

// Roster is the active party. Members live in an ark world; party order is
// kept explicitly so removals keep slots dense.
type Roster struct {
	world   *ecs.World
	members *ecs.Map3[Slot, Species, Stats]
	slots   *ecs.Map[Slot]
	stats   *ecs.Map[Stats]
	filter  *ecs.Filter3[Slot, Species, Stats]
	order   []ecs.Entity
}

// NewRoster creates an empty party.
func NewRoster() *Roster {
	w := ecs.NewWorld(MaxSize)
	return &Roster{
		world:   w,
		members: ecs.NewMap3[Slot, Species, Stats](w),
		slots:   ecs.NewMap[Slot](w),
		stats:   ecs.NewMap[Stats](w),
		filter:  ecs.NewFilter3[Slot, Species, Stats](w),
	}
}

// Add appends a member at full health. Returns false when the party is full.
func (r *Roster) Add(name string, types []string, base Stats) bool {
	if len(r.order) >= MaxSize {
		return false
	}
	base.CurrentHP = base.HP
	e := r.members.NewEntity(
		&Slot{Index: len(r.order)},
		&Species{Name: name, Types: slices.Clone(types)},
		&base,
	)
	r.order = append(r.order, e)
	return true
}

// Remove drops the member at a slot and closes the gap.
func (r *Roster) Remove(slot int) bool {
	if slot < 0 || slot >= len(r.order) {
		return false
	}
	r.world.RemoveEntity(r.order[slot])
	r.order = slices.Delete(r.order, slot, slot+1)
	for i, e := range r.order {
		r.slots.Get(e).Index = i
	}
	return true
}

// SetHP sets a member's current health, clamped to its base HP.
func (r *Roster) SetHP(slot, hp int) bool {
	if slot < 0 || slot >= len(r.order) {
		return false
	}
	s := r.stats.Get(r.order[slot])
	s.CurrentHP = min(max(hp, 0), s.HP)
	return true
}

// Len returns the party size.
func (r *Roster) Len() int { return len(r.order) }

// Members returns every member in party order.
func (r *Roster) Members() []outcome.Member {
	out := make([]outcome.Member, len(r.order))
	query := r.filter.Query()
	for query.Next() {
		slot, sp, st := query.Get()
		out[slot.Index] = toMember(slot, sp, st)
	}
	return out
}

// Strongest implements outcome.StrengthEvaluator: the living member with the
// highest base-stat sum, ties going to the earlier slot.
func (r *Roster) Strongest() (outcome.Member, bool) {
	var best outcome.Member
	found := false
	query := r.filter.Query()
	for query.Next() {
		slot, sp, st := query.Get()
		if st.Fainted() {
			continue
		}
		m := toMember(slot, sp, st)
		if !found || outcome.Stronger(m, best) {
			best, found = m, true
		}
	}
	return best, found
}

func toMember(slot *Slot, sp *Species, st *Stats) outcome.Member {
	return outcome.Member{
		Slot:      slot.Index,
		Species:   sp.Name,
		Types:     slices.Clone(sp.Types),
		BaseStats: st.Total(),
		Fainted:   st.Fainted(),
	}
}
