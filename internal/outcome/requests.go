package outcome

import (
	"fmt"

	"github.com/spacehole-rogue/battlepath/internal/path"
)

// BattleKind is the kind of battle the battle engine should start.
type BattleKind uint8

const (
	BattleWild BattleKind = iota
	BattleTrainer
)

func (k BattleKind) String() string {
	if k == BattleTrainer {
		return "trainer"
	}
	return "wild"
}

// BattleRequest asks the battle engine to start an encounter.
type BattleRequest struct {
	NodeID     string
	Wave       int
	Type       path.NodeType
	Kind       BattleKind
	FacingBoss bool
	MajorBoss  bool
	Rival      bool
	Config     *path.BattleConfig
	Dynamic    ResolvedDynamicMode
}

// Pool selects which reward pool a chooser draws from.
type Pool uint8

const (
	PoolRun Pool = iota
	PoolAccount
)

// RewardRequest opens a reward chooser.
type RewardRequest struct {
	NodeID     string
	Wave       int
	Pool       Pool
	Rerolls    int      // pre-paid rerolls
	Categories []string // restricts the pool
}

// Notice is a transient "you got something" message.
type Notice struct {
	Text    string
	Amount  int
	Account bool
}

// Scheduler receives fire-and-forget requests for whatever runs after a node
// is accepted.
type Scheduler interface {
	StartBattle(BattleRequest)
	OpenRewards(RewardRequest)
	OpenAccountRewards(RewardRequest)
	ShowNotice(Notice)
}

// Outcome describes what an accepted node did.
type Outcome struct {
	NodeID   string
	Source   path.NodeType // type on the node
	Resolved path.NodeType // type actually executed (differs for mystery nodes)
	Family   path.Family
	Advanced bool // wave cursor moved forward

	Battle *BattleRequest
	Reward *RewardRequest
	Money  int
	Notice *Notice
}

// Label names the node type that ran. A mystery node shows both types.
func (o Outcome) Label() string {
	label := path.NodeTypeLabel(o.Resolved)
	if o.Source != o.Resolved {
		label = path.NodeTypeLabel(o.Source) + " -> " + label
	}
	return label
}

// String is the label followed by what the node produced.
func (o Outcome) String() string {
	switch {
	case o.Battle != nil:
		return fmt.Sprintf("%s (%s battle)", o.Label(), o.Battle.Kind)
	case o.Reward != nil:
		return fmt.Sprintf("%s %v", o.Label(), o.Reward.Categories)
	case o.Money > 0:
		return fmt.Sprintf("%s +%d", o.Label(), o.Money)
	}
	return o.Label()
}
