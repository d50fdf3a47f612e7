// Package nav decides what part of a battle path is on screen, where each node
// is drawn and which node the cursor rests on. It never mutates the selection.
package nav

import (
	"cmp"
	"slices"

	"github.com/spacehole-rogue/battlepath/internal/path"
)

// Config sizes the scrolling window. Distances are in layout units; the front
// end decides how many pixels a unit is.
type Config struct {
	Rows          int // waves shown at once
	RowHeight     int
	ColumnSpacing int
	FanSpacing    int // horizontal offset between nodes sharing a column
	Left, Top     int
	RevealAhead   int // waves revealed from the current one
	SegmentSize   int // waves per segment; the reveal never crosses a segment end
	LookBehind    int // past waves kept above the current one; negative keeps none
	ViewOnly      bool
}

// DefaultConfig is the layout used by the demo front end.
func DefaultConfig() Config {
	return Config{
		Rows:          8,
		RowHeight:     4,
		ColumnSpacing: 16,
		FanSpacing:    4,
		Left:          8,
		Top:           3,
		RevealAhead:   30,
		SegmentSize:   500,
		LookBehind:    2,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Rows <= 0 {
		c.Rows = d.Rows
	}
	if c.RowHeight <= 0 {
		c.RowHeight = d.RowHeight
	}
	if c.ColumnSpacing <= 0 {
		c.ColumnSpacing = d.ColumnSpacing
	}
	if c.FanSpacing <= 0 {
		c.FanSpacing = d.FanSpacing
	}
	if c.RevealAhead <= 0 {
		c.RevealAhead = d.RevealAhead
	}
	if c.SegmentSize <= 0 {
		c.SegmentSize = d.SegmentSize
	}
	if c.LookBehind == 0 {
		c.LookBehind = d.LookBehind
	}
	c.LookBehind = max(c.LookBehind, 0)
	return c
}

// Point is a layout position.
type Point struct {
	X, Y float64
}

// orderRow returns a wave's nodes left to right. Nodes sharing a column keep
// generator order.
func orderRow(nodes []*path.Node) []*path.Node {
	row := slices.Clone(nodes)
	slices.SortStableFunc(row, func(a, b *path.Node) int {
		return cmp.Compare(a.Position.X, b.Position.X)
	})
	return row
}

// columnX returns the x of each node in an ordered row. k nodes sharing a
// column are spread symmetrically around the column's base x.
func (c Config) columnX(row []*path.Node) []float64 {
	xs := make([]float64, len(row))
	for start := 0; start < len(row); {
		col := row[start].Position.X
		end := start
		for end < len(row) && row[end].Position.X == col {
			end++
		}
		k := end - start
		base := float64(c.Left + col*c.ColumnSpacing)
		for i := 0; i < k; i++ {
			xs[start+i] = base + (float64(i)-float64(k-1)/2)*float64(c.FanSpacing)
		}
		start = end
	}
	return xs
}

func segmentStart(wave, size int) int {
	return (wave-1)/size*size + 1
}

func segmentEnd(wave, size int) int {
	return segmentStart(wave, size) + size - 1
}
