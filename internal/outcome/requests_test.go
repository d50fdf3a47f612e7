package outcome

import (
	"testing"

	"github.com/spacehole-rogue/battlepath/internal/path"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeDescribesWhatRan(t *testing.T) {
	tests := []struct {
		name      string
		out       Outcome
		wantLabel string
		wantText  string
	}{
		{
			name:      "battle",
			out:       Outcome{Source: path.NodeTrainerBattle, Resolved: path.NodeTrainerBattle, Battle: &BattleRequest{Kind: BattleTrainer}},
			wantLabel: "Trainer",
			wantText:  "Trainer (trainer battle)",
		},
		{
			name:      "mystery reward",
			out:       Outcome{Source: path.NodeMystery, Resolved: path.NodeItemBerry, Reward: &RewardRequest{Categories: []string{"berry"}}},
			wantLabel: "??? -> Berries",
			wantText:  "??? -> Berries [berry]",
		},
		{
			name:      "money",
			out:       Outcome{Source: path.NodeMoney, Resolved: path.NodeMoney, Money: 120},
			wantLabel: "Money",
			wantText:  "Money +120",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLabel, tt.out.Label())
			assert.Equal(t, tt.wantText, tt.out.String())
		})
	}
}
