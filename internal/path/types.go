package path

import "fmt"

// NodeType identifies what happens when a node is chosen.
type NodeType uint8

const (
	// Battles
	NodeWildPokemon NodeType = iota
	NodeTrainerBattle
	NodeRivalBattle
	NodeMajorBossBattle
	NodeRecoveryBoss
	NodeChallengeBoss
	NodeChallengeRival
	NodeChallengeTrainer
	// Run-local rewards
	NodeItemGeneral
	NodeItemPokeball
	NodeItemBerry
	NodeItemTM
	NodeItemEvolution
	NodeItemFormChange
	NodeItemRelic
	// Account-wide rewards
	NodePermaItem
	NodePermaAbility
	NodePermaMoney
	NodeEggVoucher
	// Currency
	NodeMoney
	NodePermaMoneyGrant
	// Special
	NodeMystery
	NodeConvergencePoint
	nodeTypeCount // sentinel
)

var nodeTypeNames = [nodeTypeCount]string{
	NodeWildPokemon:      "WILD_POKEMON",
	NodeTrainerBattle:    "TRAINER_BATTLE",
	NodeRivalBattle:      "RIVAL_BATTLE",
	NodeMajorBossBattle:  "MAJOR_BOSS_BATTLE",
	NodeRecoveryBoss:     "RECOVERY_BOSS",
	NodeChallengeBoss:    "CHALLENGE_BOSS",
	NodeChallengeRival:   "CHALLENGE_RIVAL",
	NodeChallengeTrainer: "CHALLENGE_TRAINER",
	NodeItemGeneral:      "ITEM_GENERAL",
	NodeItemPokeball:     "ITEM_POKEBALL",
	NodeItemBerry:        "ITEM_BERRY",
	NodeItemTM:           "ITEM_TM",
	NodeItemEvolution:    "ITEM_EVOLUTION",
	NodeItemFormChange:   "ITEM_FORM_CHANGE",
	NodeItemRelic:        "ITEM_RELIC",
	NodePermaItem:        "PERMA_ITEM",
	NodePermaAbility:     "PERMA_ABILITY",
	NodePermaMoney:       "PERMA_MONEY",
	NodeEggVoucher:       "EGG_VOUCHER",
	NodeMoney:            "MONEY",
	NodePermaMoneyGrant:  "PERMA_MONEY_GRANT",
	NodeMystery:          "MYSTERY_NODE",
	NodeConvergencePoint: "CONVERGENCE_POINT",
}

// Family groups node types by the kind of outcome they produce.
type Family uint8

const (
	FamilyBattle Family = iota
	FamilyRunReward
	FamilyAccountReward
	FamilyMoney
	FamilyMystery
	FamilyMarker // not selectable
)

// String returns the wire name of the node type.
func (t NodeType) String() string {
	if t < nodeTypeCount {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", uint8(t))
}

// ParseNodeType maps a wire name back to a NodeType.
func ParseNodeType(s string) (NodeType, error) {
	for i, name := range nodeTypeNames {
		if name == s {
			return NodeType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown node type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t NodeType) MarshalText() ([]byte, error) {
	if t >= nodeTypeCount {
		return nil, fmt.Errorf("invalid node type %d", uint8(t))
	}
	return []byte(nodeTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *NodeType) UnmarshalText(b []byte) error {
	v, err := ParseNodeType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Family returns the outcome family of the node type.
func (t NodeType) Family() Family {
	switch {
	case t <= NodeChallengeTrainer:
		return FamilyBattle
	case t <= NodeItemRelic:
		return FamilyRunReward
	case t <= NodeEggVoucher:
		return FamilyAccountReward
	case t == NodeMoney, t == NodePermaMoneyGrant:
		return FamilyMoney
	case t == NodeMystery:
		return FamilyMystery
	default:
		return FamilyMarker
	}
}

// AllNodeTypes lists every valid node type in declaration order.
func AllNodeTypes() []NodeType {
	out := make([]NodeType, 0, nodeTypeCount)
	for t := NodeType(0); t < nodeTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

// NodeTypeLabel returns a short human-readable label for a node type.
func NodeTypeLabel(t NodeType) string {
	switch t {
	case NodeWildPokemon:
		return "Wild"
	case NodeTrainerBattle:
		return "Trainer"
	case NodeRivalBattle:
		return "Rival"
	case NodeMajorBossBattle:
		return "Boss"
	case NodeRecoveryBoss:
		return "Recovery"
	case NodeChallengeBoss:
		return "Ch.Boss"
	case NodeChallengeRival:
		return "Ch.Rival"
	case NodeChallengeTrainer:
		return "Ch.Trainer"
	case NodeItemGeneral:
		return "Items"
	case NodeItemPokeball:
		return "Balls"
	case NodeItemBerry:
		return "Berries"
	case NodeItemTM:
		return "TMs"
	case NodeItemEvolution:
		return "Evolution"
	case NodeItemFormChange:
		return "Forms"
	case NodeItemRelic:
		return "Relic"
	case NodePermaItem:
		return "Perma Item"
	case NodePermaAbility:
		return "Ability"
	case NodePermaMoney:
		return "Perma $"
	case NodeEggVoucher:
		return "Voucher"
	case NodeMoney:
		return "Money"
	case NodePermaMoneyGrant:
		return "Perma Grant"
	case NodeMystery:
		return "???"
	case NodeConvergencePoint:
		return "Merge"
	default:
		return "Unknown"
	}
}
