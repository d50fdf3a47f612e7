package screen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/spacehole-rogue/battlepath/internal/nav"
	"github.com/spacehole-rogue/battlepath/internal/render"
)

// GridRenderer draws a CellBuffer to an Ebitengine screen.
type GridRenderer struct {
	Atlas   *FontAtlas
	CellW   int
	CellH   int
	bgPixel *ebiten.Image // 1x1 white pixel for backgrounds
}

// NewGridRenderer creates a renderer with the given atlas and cell size.
func NewGridRenderer(atlas *FontAtlas, cellW, cellH int) *GridRenderer {
	bgPixel := ebiten.NewImage(1, 1)
	bgPixel.Fill(color.White)
	return &GridRenderer{
		Atlas:   atlas,
		CellW:   cellW,
		CellH:   cellH,
		bgPixel: bgPixel,
	}
}

// Draw renders the whole buffer.
func (r *GridRenderer) Draw(screen *ebiten.Image, buf *render.CellBuffer) {
	scaleX := float64(r.CellW) / float64(GlyphWidth)
	scaleY := float64(r.CellH) / float64(GlyphHeight)

	var op ebiten.DrawImageOptions
	for y := 0; y < buf.Rows; y++ {
		for x := 0; x < buf.Cols; x++ {
			cell := buf.Cells[y*buf.Cols+x]
			px := float64(x * r.CellW)
			py := float64(y * r.CellH)

			if cell.BG != render.ColorBlack {
				op = ebiten.DrawImageOptions{}
				op.GeoM.Scale(float64(r.CellW), float64(r.CellH))
				op.GeoM.Translate(px, py)
				op.ColorScale.ScaleWithColor(render.Palette[cell.BG])
				screen.DrawImage(r.bgPixel, &op)
			}

			if cell.Glyph != ' ' && cell.Glyph != 0 {
				op = ebiten.DrawImageOptions{}
				op.GeoM.Scale(scaleX, scaleY)
				op.GeoM.Translate(px, py)
				op.ColorScale.ScaleWithColor(render.Palette[cell.FG])
				screen.DrawImage(r.Atlas.Glyph(cell.Glyph), &op)
			}
		}
	}
}

// DrawEdges strokes the connections of a view between the label row under
// the source node and the row above the target, clipped to the window.
func (r *GridRenderer) DrawEdges(screen *ebiten.Image, v nav.View, l render.Layout) {
	top := float32(l.PathTop * r.CellH)
	bottom := float32((l.PathTop + l.PathHeight) * r.CellH)
	for _, e := range v.Edges {
		x0, y0 := r.center(e.A)
		x1, y1 := r.center(e.B)
		y0 += 1.5 * float32(r.CellH) // below the label
		y1 -= 0.5 * float32(r.CellH)
		if y1 <= y0 || y1 < top || y0 > bottom {
			continue
		}
		x0, y0 = clip(x0, y0, x1, y1, top, bottom)
		x1, y1 = clip(x1, y1, x0, y0, top, bottom)

		width := float32(1)
		if e.Taken {
			width = 2
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, width, render.Palette[render.EdgeColor(e)], true)
	}
}

func (r *GridRenderer) center(p nav.Point) (float32, float32) {
	x, y := render.CellAt(p)
	return float32(x*r.CellW) + float32(r.CellW)/2, float32(y*r.CellH) + float32(r.CellH)/2
}

// clip slides (x, y) along the segment toward (ox, oy) until it lies within
// [top, bottom].
func clip(x, y, ox, oy, top, bottom float32) (float32, float32) {
	switch {
	case y < top && oy != y:
		t := (top - y) / (oy - y)
		return x + t*(ox-x), top
	case y > bottom && oy != y:
		t := (bottom - y) / (oy - y)
		return x + t*(ox-x), bottom
	}
	return x, y
}
