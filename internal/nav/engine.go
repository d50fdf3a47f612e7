package nav

import (
	"log/slog"

	"github.com/spacehole-rogue/battlepath/internal/path"
)

// Direction is a cursor move.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Cursor addresses a node by wave and left-to-right index within the wave.
type Cursor struct {
	Wave  int
	Index int
}

// Engine holds the presentation state of the path screen: which waves are in
// the window, the scroll offset and the cursor. Rows run top to bottom, so
// Down moves toward later waves.
type Engine struct {
	cfg Config
	log *slog.Logger

	validator *path.Validator
	graph     *path.Graph
	sel       path.Selection

	rows      map[int][]*path.Node
	reachable map[string]bool

	cursor Cursor
	home   Cursor
	scroll int
}

// New creates an engine with no graph loaded.
func New(cfg Config, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{cfg: cfg.withDefaults(), log: log, cursor: Cursor{Index: -1}, home: Cursor{Index: -1}}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetViewOnly toggles the read-only presentation.
func (e *Engine) SetViewOnly(on bool) { e.cfg.ViewOnly = on }

// Load binds a graph through its validator and refreshes against sel.
// A nil validator clears the engine.
func (e *Engine) Load(v *path.Validator, sel path.Selection) {
	e.validator = v
	e.graph = nil
	e.rows = nil
	if v != nil {
		e.graph = v.Graph()
		e.rows = make(map[int][]*path.Node, e.graph.TotalWaves)
	}
	e.Refresh(sel)
}

// Refresh recomputes reachability for sel, resets scroll and puts the cursor
// on the pre-highlighted node of the current wave.
func (e *Engine) Refresh(sel path.Selection) {
	e.sel = sel
	e.scroll = 0
	e.reachable = make(map[string]bool)
	e.cursor = Cursor{Index: -1}
	e.home = e.cursor
	if e.graph == nil {
		return
	}
	for _, n := range e.validator.Available(sel) {
		e.reachable[n.ID] = true
	}

	w := e.currentWave()
	row := e.row(w)
	e.cursor = Cursor{Wave: w, Index: -1}
	for i, n := range row {
		if e.reachable[n.ID] {
			e.cursor.Index = i
			break
		}
	}
	if e.cursor.Index < 0 && len(row) > 0 {
		e.cursor.Index = 0
	}
	e.home = e.cursor
	e.follow()
}

// Graph returns the loaded graph, or nil.
func (e *Engine) Graph() *path.Graph { return e.graph }

// Selection returns the selection the engine last refreshed against.
func (e *Engine) Selection() path.Selection { return e.sel }

// Cursor returns the cursor position.
func (e *Engine) Cursor() Cursor { return e.cursor }

// Hovered returns the node under the cursor.
func (e *Engine) Hovered() (*path.Node, bool) {
	row := e.row(e.cursor.Wave)
	if e.cursor.Index < 0 || e.cursor.Index >= len(row) {
		return nil, false
	}
	return row[e.cursor.Index], true
}

// Reachable reports whether a node may be chosen now.
func (e *Engine) Reachable(id string) bool { return e.reachable[id] }

// AtHome reports whether the cursor rests on the pre-highlighted node.
func (e *Engine) AtHome() bool { return e.cursor == e.home }

// ReturnHome moves the cursor back to the pre-highlighted node.
func (e *Engine) ReturnHome() {
	e.cursor = e.home
	e.follow()
}

// Focus moves the cursor onto a node by id if it is within the revealed range.
func (e *Engine) Focus(id string) bool {
	if e.graph == nil {
		return false
	}
	n, ok := e.graph.Node(id)
	if !ok || n.Wave < e.firstWave() || n.Wave > e.lastWave() {
		return false
	}
	for i, r := range e.row(n.Wave) {
		if r.ID == id {
			e.cursor = Cursor{Wave: n.Wave, Index: i}
			e.follow()
			return true
		}
	}
	return false
}

func (e *Engine) currentWave() int {
	return min(max(e.sel.Wave, 1), e.graph.TotalWaves)
}

// row returns a wave's nodes left to right, cached per graph.
func (e *Engine) row(w int) []*path.Node {
	if e.graph == nil {
		return nil
	}
	if r, ok := e.rows[w]; ok {
		return r
	}
	r := orderRow(e.graph.Wave(w))
	e.rows[w] = r
	return r
}

// firstWave is the top of the scrollable band.
func (e *Engine) firstWave() int {
	cur := e.currentWave()
	return max(segmentStart(cur, e.cfg.SegmentSize), cur-e.cfg.LookBehind, 1)
}

// lastWave is the last revealed wave: bounded by the reveal distance, the end
// of the current segment and the path itself.
func (e *Engine) lastWave() int {
	cur := e.currentWave()
	return min(cur+e.cfg.RevealAhead-1, segmentEnd(cur, e.cfg.SegmentSize), e.graph.TotalWaves)
}

// MaxScroll is the largest scroll offset that still keeps revealed waves on
// screen.
func (e *Engine) MaxScroll() int {
	if e.graph == nil {
		return 0
	}
	span := e.lastWave() - e.firstWave() + 1
	return max(span-e.cfg.Rows, 0) * e.cfg.RowHeight
}

// Scroll moves the window by delta units, clamped to [0, MaxScroll].
func (e *Engine) Scroll(delta int) {
	e.scroll = min(max(e.scroll+delta, 0), e.MaxScroll())
}

// ScrollOffset returns the current scroll offset.
func (e *Engine) ScrollOffset() int { return e.scroll }

// follow scrolls just enough to keep the cursor's row inside the window.
func (e *Engine) follow() {
	if e.graph == nil || e.cursor.Index < 0 {
		return
	}
	top := (e.cursor.Wave - e.firstWave()) * e.cfg.RowHeight
	bottom := top + e.cfg.RowHeight
	window := e.cfg.Rows * e.cfg.RowHeight
	switch {
	case top < e.scroll:
		e.scroll = top
	case bottom > e.scroll+window:
		e.scroll = bottom - window
	}
	e.scroll = min(max(e.scroll, 0), e.MaxScroll())
}

// Move shifts the cursor. Left and Right step within the row. Up and Down
// jump to the adjacent wave, preferring nodes connected to the current one.
// Returns whether the cursor moved.
func (e *Engine) Move(d Direction) bool {
	row := e.row(e.cursor.Wave)
	if len(row) == 0 {
		return false
	}
	before := e.cursor
	switch d {
	case Left:
		e.cursor.Index = max(e.cursor.Index-1, 0)
	case Right:
		e.cursor.Index = min(e.cursor.Index+1, len(row)-1)
	case Up:
		e.vertical(e.cursor.Wave - 1)
	case Down:
		e.vertical(e.cursor.Wave + 1)
	}
	e.follow()
	return e.cursor != before
}

func (e *Engine) vertical(target int) {
	row := e.row(e.cursor.Wave)
	e.cursor.Index = min(max(e.cursor.Index, 0), len(row)-1)
	if target < e.firstWave() || target > e.lastWave() {
		return
	}
	next := e.row(target)
	if len(next) == 0 {
		return
	}

	cur := row[e.cursor.Index]
	connected := func(n *path.Node) bool {
		if target > cur.Wave {
			return cur.ConnectsTo(n.ID)
		}
		return n.ConnectsTo(cur.ID)
	}
	best := nearest(next, cur.Position.X, e.cursor.Index, connected)
	if best < 0 {
		best = nearest(next, cur.Position.X, e.cursor.Index, nil)
	}
	e.cursor = Cursor{Wave: target, Index: best}
}

// nearest scores row candidates by column distance, then index distance, then
// lower index. A nil filter admits every candidate. Returns -1 when nothing
// passes the filter.
func nearest(row []*path.Node, col, index int, filter func(*path.Node) bool) int {
	best := -1
	var bestCol, bestIdx int
	for i, n := range row {
		if filter != nil && !filter(n) {
			continue
		}
		dc := abs(n.Position.X - col)
		di := abs(i - index)
		if best < 0 || dc < bestCol || (dc == bestCol && di < bestIdx) {
			best, bestCol, bestIdx = i, dc, di
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
