package render

import (
	"fmt"
	"math"

	"github.com/spacehole-rogue/battlepath/internal/nav"
	"github.com/spacehole-rogue/battlepath/internal/outcome"
	"github.com/spacehole-rogue/battlepath/internal/session"
)

// Layout places the path screen on the cell grid.
type Layout struct {
	Cols, Rows int

	PathTop    int // first row of the scrolling window
	PathHeight int // rows in the window
	WaveX      int // column of the wave numbers
	LabelWidth int

	PanelX     int // right-hand preview and party panel
	CommsY     int
	CommsLines int
}

// DefaultLayout fits the window described by cfg into a cols x rows grid.
func DefaultLayout(cols, rows int, cfg nav.Config) Layout {
	return Layout{
		Cols:       cols,
		Rows:       rows,
		PathTop:    cfg.Top,
		PathHeight: cfg.Rows * cfg.RowHeight,
		WaveX:      1,
		LabelWidth: 9,
		PanelX:     cols - 20,
		CommsY:     cfg.Top + cfg.Rows*cfg.RowHeight + 1,
		CommsLines: max(rows-(cfg.Top+cfg.Rows*cfg.RowHeight+1)-3, 1),
	}
}

// Frame is everything drawn in one frame.
type Frame struct {
	Title   string
	View    nav.View
	Preview *session.Preview
	Party   []outcome.Member
	Money   int
	Perma   int
	Notices []session.Notice
	Help    string
}

// CellAt converts a layout point to the cell it falls in.
func CellAt(p nav.Point) (x, y int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// Draw clears buf and renders f.
func Draw(buf *CellBuffer, l Layout, f Frame) {
	buf.Clear()
	buf.WriteString(2, 0, f.Title, ColorWhite, ColorBlack)
	if f.View.TotalWaves > 0 {
		status := fmt.Sprintf("Wave %d/%d", f.View.CurrentWave, f.View.TotalWaves)
		buf.WriteString(l.PanelX, 0, status, ColorHeading, ColorBlack)
	}

	drawWaves(buf, l, f.View)
	drawNodes(buf, l, f.View)
	if f.View.Message != "" {
		x := max((l.PanelX-len(f.View.Message))/2, 0)
		buf.WriteString(x, l.PathTop+l.PathHeight/2, f.View.Message, ColorWarn, ColorBlack)
	}
	drawScrollMarks(buf, l, f.View)

	y := drawPreview(buf, l.PanelX, 2, f.Preview)
	y = drawParty(buf, l.PanelX, y+1, f.Party)
	buf.WriteString(l.PanelX, y+1, fmt.Sprintf("Money  %d", f.Money), ColorYellow, ColorBlack)
	buf.WriteString(l.PanelX, y+2, fmt.Sprintf("Perma  %d", f.Perma), ColorLightMagenta, ColorBlack)

	drawComms(buf, l, f.Notices)
	if f.Help != "" {
		buf.WriteString(2, l.Rows-1, f.Help, ColorMuted, ColorBlack)
	}
}

func inWindow(l Layout, y int) bool {
	return y >= l.PathTop && y < l.PathTop+l.PathHeight
}

func drawWaves(buf *CellBuffer, l Layout, v nav.View) {
	for _, w := range v.Waves {
		y := int(math.Round(w.Y))
		if !inWindow(l, y) {
			continue
		}
		clr := uint8(ColorMuted)
		if w.Wave == v.CurrentWave {
			clr = ColorHeading
		}
		buf.WriteString(l.WaveX, y, fmt.Sprintf("%3d", w.Wave), clr, ColorBlack)
	}
}

func drawNodes(buf *CellBuffer, l Layout, v nav.View) {
	for i, n := range v.Nodes {
		x, y := CellAt(n.At)
		if !inWindow(l, y) {
			continue
		}
		glyph, fg, bg := NodeVisuals(n)
		buf.Set(x, y, glyph, fg, bg)
		if n.Dynamic {
			buf.Set(x+1, y, '!', ColorWarn, ColorBlack)
		}
		if n.Label == "" || !inWindow(l, y+1) {
			continue
		}
		label := fitLabel(n.Label, labelRoom(v.Nodes, i, l.LabelWidth))
		lx := x - (len(label)-1)/2
		lfg := fg
		if n.State == nav.StateSelected {
			lfg = ColorLightGreen
		}
		buf.WriteString(lx, y+1, label, lfg, ColorBlack)
	}
}

// labelRoom shrinks a label so it does not run into a fanned neighbour.
func labelRoom(nodes []nav.NodeView, i, width int) int {
	me := nodes[i]
	for j, o := range nodes {
		if j == i || o.Wave != me.Wave {
			continue
		}
		d := int(math.Abs(o.At.X - me.At.X))
		if d < width+1 {
			width = min(width, d-1)
		}
	}
	return max(width, 1)
}

func fitLabel(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width]
}

func drawScrollMarks(buf *CellBuffer, l Layout, v nav.View) {
	if v.Scroll > 0 {
		buf.Set(l.WaveX+1, l.PathTop-1, '^', ColorText, ColorBlack)
	}
	if v.Scroll < v.MaxScroll {
		buf.Set(l.WaveX+1, l.PathTop+l.PathHeight, 'v', ColorText, ColorBlack)
	}
}

func drawPreview(buf *CellBuffer, x, y int, p *session.Preview) int {
	buf.WriteString(x, y, "--- Node ---", ColorHeading, ColorBlack)
	y++
	if p == nil {
		buf.WriteString(x, y, "nothing selected", ColorMuted, ColorBlack)
		return y + 1
	}
	if p.Hidden {
		buf.WriteString(x, y, "unknown", ColorMuted, ColorBlack)
		buf.WriteString(x, y+1, fmt.Sprintf("wave %d", p.Wave), ColorText, ColorBlack)
		buf.WriteString(x, y+2, "out of reach", ColorMuted, ColorBlack)
		return y + 3
	}
	buf.WriteString(x, y, p.Label, FamilyColor(p.Family), ColorBlack)
	y++
	buf.WriteString(x, y, fmt.Sprintf("wave %d", p.Wave), ColorText, ColorBlack)
	y++
	if p.Reachable {
		buf.WriteString(x, y, "reachable", ColorLightGreen, ColorBlack)
	} else {
		buf.WriteString(x, y, "out of reach", ColorMuted, ColorBlack)
	}
	y++
	if p.Battle != nil && p.Battle.Level > 0 {
		buf.WriteString(x, y, fmt.Sprintf("level %d", p.Battle.Level), ColorText, ColorBlack)
		y++
	}
	if t := p.Dynamic.ExtraDamageType; t != "" {
		buf.WriteString(x, y, "weak: "+t, ColorWarn, ColorBlack)
		y++
	}
	if s := p.Dynamic.NerfedSpecies; s != "" {
		buf.WriteString(x, y, "nerf: "+s, ColorWarn, ColorBlack)
		y++
	}
	for _, flag := range p.Dynamic.Flags {
		buf.WriteString(x, y, "rule: "+flag, ColorWarn, ColorBlack)
		y++
	}
	return y
}

func drawParty(buf *CellBuffer, x, y int, members []outcome.Member) int {
	buf.WriteString(x, y, "--- Party ---", ColorHeading, ColorBlack)
	y++
	for _, m := range members {
		clr := uint8(ColorText)
		if m.Fainted {
			clr = ColorMuted
		}
		buf.WriteString(x, y, fmt.Sprintf("%-10s %3d", m.Species, m.BaseStats), clr, ColorBlack)
		y++
	}
	return y
}

func drawComms(buf *CellBuffer, l Layout, notices []session.Notice) {
	buf.WriteString(2, l.CommsY, "--- Comms ---", ColorHeading, ColorBlack)
	if len(notices) > l.CommsLines {
		notices = notices[len(notices)-l.CommsLines:]
	}
	for i, n := range notices {
		buf.WriteString(2, l.CommsY+1+i, n.Text, NoticeColor(n.Kind), ColorBlack)
	}
}
