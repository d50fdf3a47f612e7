package path

// Selection is the only mutable traversal state: the wave being chosen from
// and the id of the last accepted node.
type Selection struct {
	Wave         int    `json:"battlePathWave"`
	SelectedPath string `json:"selectedPath,omitempty"`
}

// NewSelection returns the state at the start of a run.
func NewSelection() Selection {
	return Selection{Wave: 1}
}

// Commit records an accepted node. The wave advances by exactly one unless the
// node sits on the final wave, which ends the path. Returns whether the wave
// advanced.
func (s *Selection) Commit(n *Node, totalWaves int) bool {
	s.SelectedPath = n.ID
	if n.Wave >= totalWaves {
		return false
	}
	s.Wave++
	return true
}

// Complete reports whether the final wave has been chosen.
func (s Selection) Complete(g *Graph) bool {
	if s.SelectedPath == "" {
		return false
	}
	n, ok := g.Node(s.SelectedPath)
	return ok && n.Wave >= g.TotalWaves
}
