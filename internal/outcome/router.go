package outcome

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spacehole-rogue/battlepath/internal/path"
	"github.com/spacehole-rogue/battlepath/internal/rng"
	"github.com/spacehole-rogue/battlepath/internal/run"
)

var ErrNotDispatchable = errors.New("node type has no outcome")

// MoneyRule computes money grants: IntFrom(Range, Min) + wave*PerWave.
type MoneyRule struct {
	Range   int
	Min     int
	PerWave int
}

// Config holds the tunable numbers the router consumes.
type Config struct {
	Rerolls        map[path.NodeType]int // missing types get 1
	RunMoney       MoneyRule
	AccountMoney   MoneyRule
	Mystery        []Entry[path.NodeType]
	PermaMoneyBand []int // cumulative breakpoints, one per PermaMoneyTiers entry
	VoucherWeights []int // one per VoucherTiers entry
}

// Sub-tier reward categories.
var (
	PermaMoneyTiers = []string{"perma_money_1", "perma_money_2", "perma_money_3", "perma_money_4", "perma_money_5"}
	VoucherTiers    = []string{"voucher", "voucher_plus", "voucher_premium"}
)

// DefaultConfig returns the stock numbers.
func DefaultConfig() Config {
	return Config{
		Rerolls: map[path.NodeType]int{
			path.NodeItemTM:         2,
			path.NodeItemEvolution:  2,
			path.NodePermaAbility:   2,
			path.NodeItemFormChange: 3,
			path.NodeItemRelic:      3,
		},
		RunMoney:       MoneyRule{Range: 100, Min: 50, PerWave: 20},
		AccountMoney:   MoneyRule{Range: 20, Min: 5, PerWave: 1},
		Mystery:        DefaultMysteryTable,
		PermaMoneyBand: []int{750, 900, 950, 975, 1000},
		VoucherWeights: []int{70, 25, 5},
	}
}

var rewardCategory = map[path.NodeType]string{
	path.NodeItemGeneral:    "general",
	path.NodeItemPokeball:   "pokeball",
	path.NodeItemBerry:      "berry",
	path.NodeItemTM:         "tm",
	path.NodeItemEvolution:  "evolution",
	path.NodeItemFormChange: "form_change",
	path.NodeItemRelic:      "relic",
	path.NodePermaItem:      "perma_item",
	path.NodePermaAbility:   "perma_ability",
}

type handler func(n *path.Node, st *run.State, out *Outcome)

// Router turns accepted nodes into gameplay effects.
type Router struct {
	graph *path.Graph
	cfg   Config
	rng   rng.Source
	party StrengthEvaluator
	sched Scheduler
	log   *slog.Logger

	mystery      *MysteryResolver
	permaTiers   *Table[string]
	voucherTiers *Table[string]
	handlers     map[path.NodeType]handler
}

// NewRouter wires a router. All randomness goes through src.
func NewRouter(g *path.Graph, cfg Config, src rng.Source, party StrengthEvaluator, sched Scheduler, log *slog.Logger) (*Router, error) {
	if log == nil {
		log = slog.Default()
	}
	mystery, err := NewMysteryResolver(cfg.Mystery, src)
	if err != nil {
		return nil, err
	}
	perma, err := FromBreakpoints(cfg.PermaMoneyBand, PermaMoneyTiers)
	if err != nil {
		return nil, fmt.Errorf("perma money tiers: %w", err)
	}
	if len(cfg.VoucherWeights) != len(VoucherTiers) {
		return nil, fmt.Errorf("voucher tiers: want %d weights, got %d", len(VoucherTiers), len(cfg.VoucherWeights))
	}
	ventries := make([]Entry[string], len(VoucherTiers))
	for i, w := range cfg.VoucherWeights {
		ventries[i] = Entry[string]{Weight: w, Value: VoucherTiers[i]}
	}
	vouchers, err := NewTable(ventries...)
	if err != nil {
		return nil, fmt.Errorf("voucher tiers: %w", err)
	}

	r := &Router{
		graph:        g,
		cfg:          cfg,
		rng:          src,
		party:        party,
		sched:        sched,
		log:          log,
		mystery:      mystery,
		permaTiers:   perma,
		voucherTiers: vouchers,
	}
	r.handlers = r.dispatchTable()
	return r, nil
}

// dispatchTable is the single node type -> handler mapping shared by direct
// dispatch and mystery resolution.
func (r *Router) dispatchTable() map[path.NodeType]handler {
	h := make(map[path.NodeType]handler)
	for _, t := range path.AllNodeTypes() {
		switch t.Family() {
		case path.FamilyBattle:
			h[t] = r.startBattle
		case path.FamilyRunReward:
			h[t] = r.openRunRewards
		case path.FamilyAccountReward:
			h[t] = r.openAccountRewards
		case path.FamilyMoney:
			h[t] = r.grantMoney
		case path.FamilyMystery:
			h[t] = r.resolveMystery
		}
	}
	return h
}

// Accept commits n to the selection and executes it. The caller must have
// validated n; Accept only refuses types with no outcome.
func (r *Router) Accept(n *path.Node, st *run.State) (Outcome, error) {
	if _, ok := r.handlers[n.Type]; !ok {
		return Outcome{}, fmt.Errorf("%w: %s (%s)", ErrNotDispatchable, n.ID, n.Type)
	}
	advanced := st.Selection.Commit(n, r.graph.TotalWaves)
	out, err := r.Dispatch(n, st)
	out.Advanced = advanced
	return out, err
}

// Dispatch executes a node's outcome without touching the selection.
func (r *Router) Dispatch(n *path.Node, st *run.State) (Outcome, error) {
	h, ok := r.handlers[n.Type]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s (%s)", ErrNotDispatchable, n.ID, n.Type)
	}
	out := Outcome{NodeID: n.ID, Source: n.Type, Resolved: n.Type, Family: n.Type.Family()}
	h(n, st, &out)
	r.log.Debug("dispatched path node", "node", n.ID, "wave", n.Wave, "type", n.Type.String(), "resolved", out.Resolved.String())
	return out, nil
}

func (r *Router) startBattle(n *path.Node, st *run.State, out *Outcome) {
	req := BattleRequest{
		NodeID:  n.ID,
		Wave:    n.Wave,
		Type:    n.Type,
		Kind:    BattleWild,
		Config:  n.Battle,
		Dynamic: ResolveDynamicMode(n.Dynamic, r.party),
	}
	st.FacingBoss = false

	switch n.Type {
	case path.NodeRecoveryBoss:
		st.FacingBoss = true
		req.FacingBoss = true
		if r.rng.Int(2) == 1 {
			req.Kind = BattleTrainer
		}
	case path.NodeMajorBossBattle, path.NodeChallengeBoss:
		st.MajorBossWave = n.Wave
		req.MajorBoss = true
		fallthrough
	case path.NodeTrainerBattle, path.NodeChallengeTrainer:
		req.Kind = BattleTrainer
	case path.NodeRivalBattle, path.NodeChallengeRival:
		st.RecordRival(n.Wave)
		req.Rival = true
		req.Kind = BattleTrainer
	}

	out.Battle = &req
	r.sched.StartBattle(req)
}

func (r *Router) rerolls(t path.NodeType) int {
	if n, ok := r.cfg.Rerolls[t]; ok && n > 0 {
		return n
	}
	return 1
}

func (r *Router) openRunRewards(n *path.Node, st *run.State, out *Outcome) {
	req := RewardRequest{
		NodeID:     n.ID,
		Wave:       n.Wave,
		Pool:       PoolRun,
		Rerolls:    r.rerolls(n.Type),
		Categories: []string{rewardCategory[n.Type]},
	}
	out.Reward = &req
	r.sched.OpenRewards(req)
}

func (r *Router) openAccountRewards(n *path.Node, st *run.State, out *Outcome) {
	var category string
	switch n.Type {
	case path.NodePermaMoney:
		category = r.permaTiers.Pick(r.rng)
	case path.NodeEggVoucher:
		category = r.voucherTiers.Pick(r.rng)
	default:
		category = rewardCategory[n.Type]
	}
	req := RewardRequest{
		NodeID:     n.ID,
		Wave:       n.Wave,
		Pool:       PoolAccount,
		Rerolls:    r.rerolls(n.Type),
		Categories: []string{category},
	}
	out.Reward = &req
	r.sched.OpenAccountRewards(req)
}

func (r *Router) grantMoney(n *path.Node, st *run.State, out *Outcome) {
	rule := r.cfg.RunMoney
	account := n.Type == path.NodePermaMoneyGrant
	if account {
		rule = r.cfg.AccountMoney
	}
	amount := r.rng.IntFrom(max(rule.Range, 1), rule.Min) + n.Wave*rule.PerWave

	notice := Notice{Amount: amount, Account: account}
	if account {
		st.PermaMoney += amount
		notice.Text = fmt.Sprintf("Received %d account money", amount)
	} else {
		st.Money += amount
		notice.Text = fmt.Sprintf("Picked up %d money", amount)
	}
	out.Money = amount
	out.Notice = &notice
	r.sched.ShowNotice(notice)
}

func (r *Router) resolveMystery(n *path.Node, st *run.State, out *Outcome) {
	tag := r.mystery.Resolve()
	r.log.Info("mystery node resolved", "node", n.ID, "wave", n.Wave, "outcome", tag.String())

	proxy := *n
	proxy.Type = tag
	out.Resolved = tag
	out.Family = tag.Family()
	r.handlers[tag](&proxy, st, out)
}
