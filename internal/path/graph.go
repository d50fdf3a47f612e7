package path

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// DefaultMaxWaveGap is how far ahead an edge may reach before it is flagged.
const DefaultMaxWaveGap = 10

var (
	ErrEmptyGraph  = errors.New("graph has no nodes")
	ErrDuplicateID = errors.New("duplicate node id")
	ErrInvalidWave = errors.New("node wave out of range")
	ErrMissingID   = errors.New("node id is empty")
	ErrInvalidType = errors.New("invalid node type")
)

// IssueKind classifies a generator-integrity problem found at ingestion.
type IssueKind uint8

const (
	IssueDanglingEdge     IssueKind = iota // target id does not exist (edge dropped)
	IssueBackwardEdge                      // target is in an earlier wave (edge dropped)
	IssueSameWaveEdge                      // target is in the same wave (edge dropped)
	IssueLongEdge                          // target is implausibly far ahead (edge kept, suspect)
	IssueDuplicateEdge                     // repeated connection (deduplicated)
	IssueDuplicateColumn                   // several nodes of one wave share a column
	IssueColumnOutOfRange                  // column clamped into 0..Columns-1
	IssueEmptyWave                         // no nodes at this wave
)

func (k IssueKind) String() string {
	switch k {
	case IssueDanglingEdge:
		return "dangling_edge"
	case IssueBackwardEdge:
		return "backward_edge"
	case IssueSameWaveEdge:
		return "same_wave_edge"
	case IssueLongEdge:
		return "long_edge"
	case IssueDuplicateEdge:
		return "duplicate_edge"
	case IssueDuplicateColumn:
		return "duplicate_column"
	case IssueColumnOutOfRange:
		return "column_out_of_range"
	case IssueEmptyWave:
		return "empty_wave"
	default:
		return "unknown"
	}
}

// Issue is one integrity warning. They are never fatal.
type Issue struct {
	Kind   IssueKind
	NodeID string
	Wave   int
	Target string
}

func (i Issue) String() string {
	if i.Target != "" {
		return fmt.Sprintf("%s: node %s (wave %d) -> %s", i.Kind, i.NodeID, i.Wave, i.Target)
	}
	if i.NodeID != "" {
		return fmt.Sprintf("%s: node %s (wave %d)", i.Kind, i.NodeID, i.Wave)
	}
	return fmt.Sprintf("%s: wave %d", i.Kind, i.Wave)
}

// BuildOptions tunes graph ingestion.
type BuildOptions struct {
	MaxWaveGap int // 0 means DefaultMaxWaveGap
	Logger     *slog.Logger
}

type edge struct{ from, to string }

// Graph is the read-only node/edge store for one run.
type Graph struct {
	TotalWaves int

	nodes   map[string]*Node
	waves   map[int][]*Node
	suspect map[edge]struct{}
	issues  []Issue
}

// NewGraph ingests generator output. Structural errors (duplicate or empty
// ids, waves outside 1..totalWaves) fail the build; connection and layout
// problems are repaired or flagged and reported through Issues. After a
// successful build every remaining connection points at an existing node in
// a strictly later wave.
//
// A totalWaves of zero takes the highest node wave.
func NewGraph(totalWaves int, nodes []*Node, opts BuildOptions) (*Graph, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyGraph
	}
	maxGap := opts.MaxWaveGap
	if maxGap <= 0 {
		maxGap = DefaultMaxWaveGap
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	if totalWaves <= 0 {
		for _, n := range nodes {
			totalWaves = max(totalWaves, n.Wave)
		}
	}

	g := &Graph{
		TotalWaves: totalWaves,
		nodes:      make(map[string]*Node, len(nodes)),
		waves:      make(map[int][]*Node),
		suspect:    make(map[edge]struct{}),
	}

	for _, src := range nodes {
		if src.ID == "" {
			return nil, ErrMissingID
		}
		if _, dup := g.nodes[src.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, src.ID)
		}
		if src.Wave < 1 || src.Wave > totalWaves {
			return nil, fmt.Errorf("%w: node %s has wave %d (total %d)", ErrInvalidWave, src.ID, src.Wave, totalWaves)
		}
		if src.Type >= nodeTypeCount {
			return nil, fmt.Errorf("%w: node %s", ErrInvalidType, src.ID)
		}
		n := src.clone()
		if n.Position.X < 0 || n.Position.X >= Columns {
			g.issues = append(g.issues, Issue{Kind: IssueColumnOutOfRange, NodeID: n.ID, Wave: n.Wave})
			n.Position.X = min(max(n.Position.X, 0), Columns-1)
		}
		g.nodes[n.ID] = n
		g.waves[n.Wave] = append(g.waves[n.Wave], n)
	}

	for w := 1; w <= totalWaves; w++ {
		row := g.waves[w]
		if len(row) == 0 {
			g.issues = append(g.issues, Issue{Kind: IssueEmptyWave, Wave: w})
			continue
		}
		seen := make(map[int]bool, Columns)
		for _, n := range row {
			if seen[n.Position.X] {
				g.issues = append(g.issues, Issue{Kind: IssueDuplicateColumn, NodeID: n.ID, Wave: w})
			}
			seen[n.Position.X] = true
			g.sanitizeEdges(n, maxGap)
		}
	}

	for _, is := range g.issues {
		log.Warn("battle path integrity", "issue", is.Kind.String(), "node", is.NodeID, "wave", is.Wave, "target", is.Target)
	}
	return g, nil
}

// sanitizeEdges drops edges that can never be traversed and flags suspect ones.
func (g *Graph) sanitizeEdges(n *Node, maxGap int) {
	kept := n.Connections[:0]
	seen := make(map[string]bool, len(n.Connections))
	for _, to := range n.Connections {
		if seen[to] {
			g.issues = append(g.issues, Issue{Kind: IssueDuplicateEdge, NodeID: n.ID, Wave: n.Wave, Target: to})
			continue
		}
		seen[to] = true

		target, ok := g.nodes[to]
		switch {
		case !ok:
			g.issues = append(g.issues, Issue{Kind: IssueDanglingEdge, NodeID: n.ID, Wave: n.Wave, Target: to})
			continue
		case target.Wave < n.Wave:
			g.issues = append(g.issues, Issue{Kind: IssueBackwardEdge, NodeID: n.ID, Wave: n.Wave, Target: to})
			continue
		case target.Wave == n.Wave:
			g.issues = append(g.issues, Issue{Kind: IssueSameWaveEdge, NodeID: n.ID, Wave: n.Wave, Target: to})
			continue
		case target.Wave-n.Wave > maxGap:
			g.issues = append(g.issues, Issue{Kind: IssueLongEdge, NodeID: n.ID, Wave: n.Wave, Target: to})
			g.suspect[edge{n.ID, to}] = struct{}{}
		}
		kept = append(kept, to)
	}
	n.Connections = slices.Clip(kept)
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Wave returns the nodes of a wave in generator order. The slice is owned by
// the graph and must not be modified.
func (g *Graph) Wave(w int) []*Node {
	return g.waves[w]
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Issues returns the integrity warnings found at ingestion.
func (g *Graph) Issues() []Issue {
	return slices.Clone(g.issues)
}

// Suspect reports whether the edge from -> to was flagged at ingestion.
func (g *Graph) Suspect(from, to string) bool {
	_, ok := g.suspect[edge{from, to}]
	return ok
}

// Predecessors returns the nodes in wave-1 of n that connect to n.
func (g *Graph) Predecessors(n *Node) []*Node {
	var out []*Node
	for _, p := range g.waves[n.Wave-1] {
		if p.ConnectsTo(n.ID) {
			out = append(out, p)
		}
	}
	return out
}
