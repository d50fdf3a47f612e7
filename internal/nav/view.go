package nav

import (
	"github.com/spacehole-rogue/battlepath/internal/path"
)

// State is how a node is highlighted.
type State uint8

const (
	StateUnreachable State = iota
	StateReachable
	StateSelected
	StatePast
)

func (s State) String() string {
	switch s {
	case StateReachable:
		return "reachable"
	case StateSelected:
		return "selected"
	case StatePast:
		return "past"
	default:
		return "unreachable"
	}
}

// View messages.
const (
	MessageNoGraph  = "no path available"
	MessageNoPath   = "no path forward"
	MessageComplete = "path complete"
)

// NodeView is one drawn node.
type NodeView struct {
	ID      string
	Wave    int
	Type    path.NodeType
	At      Point
	State   State
	Label   string // empty when hidden
	Cursor  bool
	Dynamic bool // carries challenge modifiers; never set when hidden
	Hidden  bool // view-only mode conceals what the node is
}

// EdgeView is one drawn connection.
type EdgeView struct {
	From, To string
	A, B     Point
	Suspect  bool // flagged at ingestion; drawn in the invalid style
	Taken    bool // leads out of the selected node
}

// WaveMark labels a visible row.
type WaveMark struct {
	Wave int
	Y    float64
}

// View is a snapshot of everything the front end needs to draw the window.
type View struct {
	Nodes       []NodeView
	Edges       []EdgeView
	Waves       []WaveMark
	Message     string
	CurrentWave int
	TotalWaves  int
	FirstWave   int // first wave inside the window
	LastWave    int // last revealed wave
	Scroll      int
	MaxScroll   int
	ViewOnly    bool
}

// View builds the current snapshot. It draws no randomness and changes no
// state.
func (e *Engine) View() View {
	if e.graph == nil {
		return View{Message: MessageNoGraph, ViewOnly: e.cfg.ViewOnly}
	}

	first, last := e.firstWave(), e.lastWave()
	v := View{
		CurrentWave: e.currentWave(),
		TotalWaves:  e.graph.TotalWaves,
		Scroll:      e.scroll,
		MaxScroll:   e.MaxScroll(),
		ViewOnly:    e.cfg.ViewOnly,
	}
	switch {
	case e.sel.Complete(e.graph):
		v.Message = MessageComplete
	case len(e.reachable) == 0:
		v.Message = MessageNoPath
	}

	from := first + e.scroll/e.cfg.RowHeight
	to := min(from+e.cfg.Rows, last)
	if e.scroll%e.cfg.RowHeight == 0 {
		to = min(from+e.cfg.Rows-1, last)
	}
	v.FirstWave, v.LastWave = from, last

	at := make(map[string]Point)
	for w := from; w <= to; w++ {
		y := float64(e.cfg.Top + (w-first)*e.cfg.RowHeight - e.scroll)
		v.Waves = append(v.Waves, WaveMark{Wave: w, Y: y})
		row := e.row(w)
		xs := e.cfg.columnX(row)
		for i, n := range row {
			p := Point{X: xs[i], Y: y}
			at[n.ID] = p
			nv := NodeView{
				ID:     n.ID,
				Wave:   n.Wave,
				At:     p,
				State:  e.state(n),
				Cursor: e.cursor == Cursor{Wave: w, Index: i},
				Hidden: e.hidden(n),
			}
			if !nv.Hidden {
				nv.Type = n.Type
				nv.Label = path.NodeTypeLabel(n.Type)
				nv.Dynamic = n.Dynamic != nil
			}
			v.Nodes = append(v.Nodes, nv)
		}
	}

	for w := from; w <= to; w++ {
		for _, n := range e.row(w) {
			for _, id := range n.Connections {
				b, ok := at[id]
				if !ok {
					continue
				}
				v.Edges = append(v.Edges, EdgeView{
					From:    n.ID,
					To:      id,
					A:       at[n.ID],
					B:       b,
					Suspect: e.graph.Suspect(n.ID, id),
					Taken:   n.ID == e.sel.SelectedPath,
				})
			}
		}
	}
	return v
}

func (e *Engine) state(n *path.Node) State {
	switch {
	case n.ID == e.sel.SelectedPath:
		return StateSelected
	case e.reachable[n.ID]:
		return StateReachable
	case n.Wave < e.currentWave():
		return StatePast
	default:
		return StateUnreachable
	}
}

// hidden reports whether view-only mode conceals n: only past, selected and
// reachable nodes are identified.
func (e *Engine) hidden(n *path.Node) bool {
	return e.cfg.ViewOnly && e.state(n) == StateUnreachable
}

// Hidden reports whether the node with the given id is concealed in the
// current presentation.
func (e *Engine) Hidden(id string) bool {
	if e.graph == nil {
		return false
	}
	n, ok := e.graph.Node(id)
	return ok && e.hidden(n)
}
