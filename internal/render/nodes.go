package render

import (
	"github.com/spacehole-rogue/battlepath/internal/nav"
	"github.com/spacehole-rogue/battlepath/internal/path"
)

// typeGlyph is the map symbol of each node type.
var typeGlyph = map[path.NodeType]byte{
	path.NodeWildPokemon:      'w',
	path.NodeTrainerBattle:    't',
	path.NodeRivalBattle:      'R',
	path.NodeMajorBossBattle:  'B',
	path.NodeRecoveryBoss:     'b',
	path.NodeChallengeBoss:    'X',
	path.NodeChallengeRival:   'r',
	path.NodeChallengeTrainer: 'x',
	path.NodeItemGeneral:      '*',
	path.NodeItemPokeball:     'o',
	path.NodeItemBerry:        '%',
	path.NodeItemTM:           'm',
	path.NodeItemEvolution:    'e',
	path.NodeItemFormChange:   'f',
	path.NodeItemRelic:        '&',
	path.NodePermaItem:        'P',
	path.NodePermaAbility:     'A',
	path.NodePermaMoney:       'p',
	path.NodeEggVoucher:       'v',
	path.NodeMoney:            '$',
	path.NodePermaMoneyGrant:  '+',
	path.NodeMystery:          '?',
	path.NodeConvergencePoint: 254, // ■
}

// hiddenGlyph stands in for a node whose type is concealed.
const hiddenGlyph = 250 // ·

// NodeVisuals picks the glyph and colors for a drawn node.
func NodeVisuals(n nav.NodeView) (glyph byte, fg, bg uint8) {
	bg = ColorBlack
	if n.Hidden {
		if n.Cursor {
			bg = ColorDarkGray
		}
		return hiddenGlyph, ColorMuted, bg
	}

	glyph, ok := typeGlyph[n.Type]
	if !ok {
		glyph = '?'
	}
	fg = FamilyColor(n.Type.Family())

	switch n.State {
	case nav.StatePast:
		fg = ColorDarkGray
	case nav.StateSelected:
		fg, bg = ColorWhite, ColorGreen
	case nav.StateUnreachable:
		fg = dim(fg)
	}
	if n.Cursor {
		bg = ColorBlue
		if n.State != nav.StateReachable {
			bg = ColorDarkGray
		}
	}
	return glyph, fg, bg
}
