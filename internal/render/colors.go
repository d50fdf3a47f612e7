package render

import (
	"image/color"

	"github.com/spacehole-rogue/battlepath/internal/nav"
	"github.com/spacehole-rogue/battlepath/internal/path"
	"github.com/spacehole-rogue/battlepath/internal/session"
)

// CGA 16-color palette indices.
const (
	ColorBlack = iota
	ColorBlue
	ColorGreen
	ColorCyan
	ColorRed
	ColorMagenta
	ColorBrown
	ColorLightGray
	ColorDarkGray
	ColorLightBlue
	ColorLightGreen
	ColorLightCyan
	ColorLightRed
	ColorLightMagenta
	ColorYellow
	ColorWhite
)

// Screen roles.
const (
	ColorHeading = ColorLightCyan
	ColorText    = ColorLightGray
	ColorMuted   = ColorDarkGray
	ColorWarn    = ColorYellow
)

// Palette maps palette indices to RGB.
var Palette = cgaPalette()

// cgaPalette builds the 16 CGA colors from their IRGB bits. Index 6 is the
// hardware's brown rather than dark yellow.
func cgaPalette() [16]color.RGBA {
	var p [16]color.RGBA
	for i := range p {
		hi := uint8(85 * (i >> 3))
		p[i] = color.RGBA{
			R: 170*uint8(i>>2&1) + hi,
			G: 170*uint8(i>>1&1) + hi,
			B: 170*uint8(i&1) + hi,
			A: 255,
		}
	}
	p[ColorBrown].G = 85
	return p
}

// dim maps a bright color to its dark twin.
func dim(c uint8) uint8 {
	if c >= ColorLightBlue && c <= ColorYellow {
		return c - 8
	}
	return ColorMuted
}

// FamilyColor is the bright color of a node family.
func FamilyColor(f path.Family) uint8 {
	switch f {
	case path.FamilyBattle:
		return ColorLightRed
	case path.FamilyRunReward:
		return ColorLightCyan
	case path.FamilyAccountReward:
		return ColorLightMagenta
	case path.FamilyMoney:
		return ColorYellow
	case path.FamilyMystery:
		return ColorLightGreen
	default:
		return ColorMuted
	}
}

// EdgeColor is the color of a connection line.
func EdgeColor(e nav.EdgeView) uint8 {
	switch {
	case e.Suspect:
		return ColorRed
	case e.Taken:
		return ColorLightGreen
	default:
		return ColorMuted
	}
}

// NoticeColor colors a comms line.
func NoticeColor(k session.NoticeKind) uint8 {
	switch k {
	case session.NoticeGain:
		return ColorLightGreen
	case session.NoticeWarning:
		return ColorWarn
	case session.NoticeBattle:
		return ColorLightRed
	default:
		return ColorCyan
	}
}
