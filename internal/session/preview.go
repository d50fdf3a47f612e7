package session

import (
	"github.com/spacehole-rogue/battlepath/internal/outcome"
	"github.com/spacehole-rogue/battlepath/internal/path"
)

// Preview describes a node for the hover panel.
type Preview struct {
	ID        string
	Wave      int
	Type      path.NodeType
	Label     string
	Family    path.Family
	Reachable bool
	Dynamic   outcome.ResolvedDynamicMode
	Battle    *path.BattleConfig
	Hidden    bool // view-only mode conceals the node; identifying fields are blank
}

// Preview projects a node's dynamic mode against the current party. It draws
// no randomness and leaves the node untouched, so it may run every frame.
// Nodes concealed by view-only mode come back with only their id and wave.
func (s *Session) Preview(id string) (Preview, bool) {
	if s.graph == nil {
		return Preview{}, false
	}
	n, ok := s.graph.Node(id)
	if !ok {
		return Preview{}, false
	}
	if s.nav.Hidden(id) {
		return Preview{ID: n.ID, Wave: n.Wave, Family: path.FamilyMarker, Hidden: true}, true
	}
	p := Preview{
		ID:        n.ID,
		Wave:      n.Wave,
		Type:      n.Type,
		Label:     path.NodeTypeLabel(n.Type),
		Family:    n.Type.Family(),
		Reachable: s.nav.Reachable(n.ID),
		Dynamic:   outcome.ResolveDynamicMode(n.Dynamic, s.opts.Party),
	}
	if n.Battle != nil {
		b := *n.Battle
		p.Battle = &b
	}
	return p, true
}
