package screen

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lit(img *image.NRGBA, code byte) int {
	x0, y0 := glyphOrigin(code)
	n := 0
	for y := y0; y < y0+GlyphHeight; y++ {
		for x := x0; x < x0+GlyphWidth; x++ {
			if img.NRGBAAt(x, y).A > 0 {
				n++
			}
		}
	}
	return n
}

func TestRasterizeGlyphs(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, atlasCols*GlyphWidth, atlasCols*GlyphHeight))
	RasterizeGlyphs(img)

	for _, c := range []byte("$?BRwxo*%&!^v0123456789") {
		assert.Positive(t, lit(img, c), "glyph %q is blank", c)
	}
	assert.Zero(t, lit(img, ' '))
	assert.Equal(t, 64, lit(img, 254))
	assert.Equal(t, GlyphWidth*GlyphHeight, lit(img, 219))
	assert.Zero(t, lit(img, 1))
}

func TestGlyphOrigin(t *testing.T) {
	x, y := glyphOrigin('A') // 65
	assert.Equal(t, 1*GlyphWidth, x)
	assert.Equal(t, 4*GlyphHeight, y)
}

func TestClip(t *testing.T) {
	x, y := clip(0, 0, 10, 100, 50, 200)
	assert.InDelta(t, 5, x, 1e-6)
	assert.InDelta(t, 50, y, 1e-6)

	x, y = clip(10, 300, 0, 100, 50, 200)
	assert.InDelta(t, 5, x, 1e-6)
	assert.InDelta(t, 200, y, 1e-6)

	x, y = clip(3, 70, 0, 100, 50, 200)
	assert.Equal(t, float32(3), x)
	assert.Equal(t, float32(70), y)
}
