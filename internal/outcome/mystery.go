package outcome

import (
	"fmt"

	"github.com/spacehole-rogue/battlepath/internal/path"
	"github.com/spacehole-rogue/battlepath/internal/rng"
)

// DefaultMysteryTable is the stock outcome table for mystery nodes. Order
// matters for reproducibility.
var DefaultMysteryTable = []Entry[path.NodeType]{
	{Weight: 20, Value: path.NodeMoney},
	{Weight: 20, Value: path.NodeWildPokemon},
	{Weight: 15, Value: path.NodeTrainerBattle},
	{Weight: 12, Value: path.NodeItemGeneral},
	{Weight: 8, Value: path.NodeItemBerry},
	{Weight: 8, Value: path.NodeItemPokeball},
	{Weight: 5, Value: path.NodeItemTM},
	{Weight: 4, Value: path.NodePermaItem},
	{Weight: 3, Value: path.NodePermaMoney},
	{Weight: 2, Value: path.NodeEggVoucher},
	{Weight: 2, Value: path.NodeRecoveryBoss},
	{Weight: 1, Value: path.NodeRivalBattle},
}

// MysteryResolver picks a concrete node type for a mystery node.
type MysteryResolver struct {
	table *Table[path.NodeType]
	rng   rng.Source
}

// NewMysteryResolver validates the table: it must not contain node types that
// cannot be dispatched directly.
func NewMysteryResolver(entries []Entry[path.NodeType], src rng.Source) (*MysteryResolver, error) {
	for i, e := range entries {
		switch e.Value.Family() {
		case path.FamilyMystery, path.FamilyMarker:
			return nil, fmt.Errorf("mystery table row %d: %s cannot be a mystery outcome", i, e.Value)
		}
	}
	t, err := NewTable(entries...)
	if err != nil {
		return nil, fmt.Errorf("mystery table: %w", err)
	}
	return &MysteryResolver{table: t, rng: src}, nil
}

// Resolve draws one outcome from the run's stream.
func (m *MysteryResolver) Resolve() path.NodeType {
	return m.table.Pick(m.rng)
}

// Table exposes the underlying table.
func (m *MysteryResolver) Table() *Table[path.NodeType] { return m.table }
