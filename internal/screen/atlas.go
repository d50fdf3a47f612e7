// Package screen puts a render.CellBuffer and the path's connection lines on
// an Ebitengine image.
package screen

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphWidth  = 16
	GlyphHeight = 16
	atlasCols   = 16
)

// FontAtlas holds one sub-image per glyph code.
type FontAtlas struct {
	image  *ebiten.Image
	glyphs [256]*ebiten.Image
}

// NewFontAtlas rasterizes printable ASCII with basicfont.Face7x13 and draws
// the few block glyphs the path screen uses by hand.
func NewFontAtlas() *FontAtlas {
	img := image.NewNRGBA(image.Rect(0, 0, atlasCols*GlyphWidth, atlasCols*GlyphHeight))
	RasterizeGlyphs(img)

	eimg := ebiten.NewImageFromImage(img)
	a := &FontAtlas{image: eimg}
	for code := 0; code < 256; code++ {
		x, y := glyphOrigin(byte(code))
		a.glyphs[code] = eimg.SubImage(image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)).(*ebiten.Image)
	}
	return a
}

// Glyph returns the cached sub-image for a code.
func (a *FontAtlas) Glyph(code byte) *ebiten.Image {
	return a.glyphs[code]
}

func glyphOrigin(code byte) (x, y int) {
	return int(code) % atlasCols * GlyphWidth, int(code) / atlasCols * GlyphHeight
}

// RasterizeGlyphs draws every supported glyph into img in white. It needs no
// graphics context, so tests can inspect the atlas directly.
func RasterizeGlyphs(img *image.NRGBA) {
	face := basicfont.Face7x13
	for code := 0; code < 256; code++ {
		cx, cy := glyphOrigin(byte(code))
		switch {
		case code >= 32 && code <= 126:
			drawFontGlyph(img, face, cx, cy, rune(code))
		default:
			drawBlockGlyph(img, cx, cy, byte(code))
		}
	}
}

// drawFontGlyph centers a 7x13 basicfont glyph in a 16x16 cell.
func drawFontGlyph(img *image.NRGBA, face font.Face, cellX, cellY int, r rune) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(cellX+4, cellY+13),
	}
	d.DrawString(string(r))
}

func drawBlockGlyph(img *image.NRGBA, cellX, cellY int, code byte) {
	w := color.NRGBA{255, 255, 255, 255}
	fill := func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				img.SetNRGBA(cellX+x, cellY+y, w)
			}
		}
	}

	switch code {
	case 219: // █
		fill(0, 0, GlyphWidth, GlyphHeight)
	case 250: // · edge dot
		fill(7, 7, 9, 9)
	case 254: // ■ convergence marker
		fill(4, 4, 12, 12)
	}
}
