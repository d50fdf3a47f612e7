// Package render draws the battle path screen into a character-cell buffer.
// It has no windowing dependency; internal/screen puts the buffer on screen.
package render

import "strings"

// Cell represents a single character cell on screen.
type Cell struct {
	Glyph byte  // CP437 code (0-255)
	FG    uint8 // Foreground color index (0-15)
	BG    uint8 // Background color index (0-15)
}

// CellBuffer is a 2D grid of character cells.
type CellBuffer struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewCellBuffer creates a new cell buffer filled with blank cells.
func NewCellBuffer(cols, rows int) *CellBuffer {
	cells := make([]Cell, cols*rows)
	for i := range cells {
		cells[i] = Cell{Glyph: ' ', FG: ColorWhite, BG: ColorBlack}
	}
	return &CellBuffer{Cols: cols, Rows: rows, Cells: cells}
}

// Set writes a single cell at (x, y). Out-of-bounds writes are ignored.
func (b *CellBuffer) Set(x, y int, glyph byte, fg, bg uint8) {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		b.Cells[y*b.Cols+x] = Cell{Glyph: glyph, FG: fg, BG: bg}
	}
}

// Get reads a single cell at (x, y). Out-of-bounds reads return a blank cell.
func (b *CellBuffer) Get(x, y int) Cell {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		return b.Cells[y*b.Cols+x]
	}
	return Cell{}
}

// Clear resets all cells to blank (space on black).
func (b *CellBuffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = Cell{Glyph: ' ', FG: ColorWhite, BG: ColorBlack}
	}
}

// WriteString writes a string starting at (x, y). Each rune occupies one cell.
// Returns the number of cells written.
func (b *CellBuffer) WriteString(x, y int, s string, fg, bg uint8) int {
	offset := 0
	for _, ch := range s {
		if ch > 255 {
			ch = '?'
		}
		b.Set(x+offset, y, byte(ch), fg, bg)
		offset++
	}
	return offset
}

// Fill paints a rectangle with one glyph.
func (b *CellBuffer) Fill(x, y, w, h int, glyph byte, fg, bg uint8) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			b.Set(xx, yy, glyph, fg, bg)
		}
	}
}

// Text returns row y as a string with trailing blanks trimmed. Used by tests
// and the headless dump.
func (b *CellBuffer) Text(y int) string {
	if y < 0 || y >= b.Rows {
		return ""
	}
	row := make([]byte, b.Cols)
	for x := range row {
		g := b.Cells[y*b.Cols+x].Glyph
		if g == 0 {
			g = ' '
		}
		row[x] = g
	}
	return strings.TrimRight(string(row), " ")
}
