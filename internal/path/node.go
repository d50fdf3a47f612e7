package path

import (
	"maps"
	"slices"
)

// Columns is the number of fixed layout columns a wave is drawn across.
const Columns = 4

// Position is the layout-only placement of a node within its wave.
type Position struct {
	X int `json:"x"`
}

// Target is a dynamic-mode modifier that may need a value picked from the
// player's party when the node is chosen.
type Target struct {
	Enabled bool   `json:"enabled"`
	Value   string `json:"value,omitempty"`
}

// Unresolved reports whether the target is a placeholder still waiting for a
// value.
func (t Target) Unresolved() bool { return t.Enabled && t.Value == "" }

// DynamicMode bundles optional challenge modifiers attached to a node.
type DynamicMode struct {
	Flags           []string `json:"flags,omitempty"`
	TypeExtraDamage Target   `json:"typeExtraDamage"`
	PokemonNerf     Target   `json:"pokemonNerf"`
}

// NeedsResolution reports whether any targeting field is a placeholder.
func (m *DynamicMode) NeedsResolution() bool {
	if m == nil {
		return false
	}
	return m.TypeExtraDamage.Unresolved() || m.PokemonNerf.Unresolved()
}

// HasFlag reports whether a named modifier is set.
func (m *DynamicMode) HasFlag(name string) bool {
	if m == nil {
		return false
	}
	return slices.Contains(m.Flags, name)
}

// BattleConfig carries generator-supplied battle parameters through to the
// battle engine untouched.
type BattleConfig struct {
	Trainer      string `json:"trainer,omitempty"`
	Level        int    `json:"level,omitempty"`
	Double       bool   `json:"double,omitempty"`
	BossSegments int    `json:"bossSegments,omitempty"`
}

// Node is a single encounter or reward choice anchored at one wave.
type Node struct {
	ID          string            `json:"id"`
	Wave        int               `json:"wave"`
	Type        NodeType          `json:"nodeType"`
	Position    Position          `json:"position"`
	Connections []string          `json:"connections"`
	Dynamic     *DynamicMode      `json:"dynamicMode,omitempty"`
	Battle      *BattleConfig     `json:"battleConfig,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// ConnectsTo reports whether the node has an edge to id.
func (n *Node) ConnectsTo(id string) bool {
	return slices.Contains(n.Connections, id)
}

// Selectable reports whether the node type can ever be chosen.
func (n *Node) Selectable() bool {
	return n.Type != NodeConvergencePoint
}

// clone returns a deep copy so the graph never shares memory with its input.
func (n *Node) clone() *Node {
	c := *n
	c.Connections = slices.Clone(n.Connections)
	if n.Dynamic != nil {
		d := *n.Dynamic
		d.Flags = slices.Clone(n.Dynamic.Flags)
		c.Dynamic = &d
	}
	if n.Battle != nil {
		b := *n.Battle
		c.Battle = &b
	}
	c.Metadata = maps.Clone(n.Metadata)
	return &c
}
