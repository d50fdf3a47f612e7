// Package session is the battle path screen controller. It owns one run's
// selection, its random stream and the navigation window, and turns input
// events into validated path choices.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spacehole-rogue/battlepath/internal/nav"
	"github.com/spacehole-rogue/battlepath/internal/outcome"
	"github.com/spacehole-rogue/battlepath/internal/path"
	"github.com/spacehole-rogue/battlepath/internal/rng"
	"github.com/spacehole-rogue/battlepath/internal/run"
	"github.com/spacehole-rogue/battlepath/internal/store"
)

// ErrNoGraph is returned when input arrives before a graph is loaded.
var ErrNoGraph = errors.New("no battle path loaded")

// Result reports what an input event did.
type Result struct {
	Moved    bool // cursor or window changed
	Accepted bool
	Rejected bool // input refused; no state changed
	Close    bool // the screen may close
	Outcome  *outcome.Outcome
	Err      error // reason for a rejection, or a failed save
}

// Options wires a session's collaborators. Zero values fall back to
// defaults; a nil Store keeps the run in memory only.
type Options struct {
	Router    outcome.Config
	Nav       nav.Config
	Party     outcome.StrengthEvaluator
	Scheduler outcome.Scheduler
	Store     store.Store
	Logger    *slog.Logger
	LogSize   int
	LogWidth  int
}

// snapshotter is implemented by sources that can be persisted.
type snapshotter interface {
	State() ([]byte, error)
	Draws() uint64
}

// Session handles one run's path screen. It is not safe for concurrent use.
type Session struct {
	log   *slog.Logger
	opts  Options
	state *run.State
	src   rng.Source

	graph     *path.Graph
	validator *path.Validator
	router    *outcome.Router
	nav       *nav.Engine
	notices   *NoticeLog
}

// New creates a session for st. The random stream is restored from st when it
// carries one, otherwise seeded from st.Seed.
func New(st *run.State, opts Options) (*Session, error) {
	if st == nil {
		return nil, fmt.Errorf("run state is required")
	}
	src, err := streamFor(st)
	if err != nil {
		return nil, err
	}
	return NewWithSource(st, src, opts), nil
}

// NewWithSource creates a session drawing from src instead of the run's own
// stream.
func NewWithSource(st *run.State, src rng.Source, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Router.Mystery == nil {
		opts.Router = outcome.DefaultConfig()
	}
	s := &Session{
		log:     log,
		opts:    opts,
		state:   st,
		src:     src,
		nav:     nav.New(opts.Nav, log),
		notices: NewNoticeLog(max(opts.LogSize, 32), max(opts.LogWidth, 48)),
	}
	return s
}

func streamFor(st *run.State) (*rng.Stream, error) {
	if len(st.RNGState) == 0 {
		return rng.New(st.Seed), nil
	}
	src, err := rng.Restore(st.RNGState, st.RNGDraws)
	if err != nil {
		return nil, fmt.Errorf("restore run %s: %w", st.ID, err)
	}
	return src, nil
}

// LoadGraph binds a graph and refreshes the window. A nil graph clears the
// session; the view then reports that no path is available.
func (s *Session) LoadGraph(g *path.Graph) error {
	s.graph, s.validator, s.router = nil, nil, nil
	if g == nil {
		s.nav.Load(nil, s.state.Selection)
		return nil
	}
	v := path.NewValidator(g, s.log)
	r, err := outcome.NewRouter(g, s.opts.Router, s.src, s.opts.Party, &tap{next: s.opts.Scheduler, log: s.notices}, s.log)
	if err != nil {
		s.nav.Load(nil, s.state.Selection)
		return fmt.Errorf("load battle path: %w", err)
	}
	s.graph, s.validator, s.router = g, v, r
	s.nav.Load(v, s.state.Selection)
	if n := len(g.Issues()); n > 0 {
		s.notices.Add(fmt.Sprintf("Path has %d integrity issues", n), NoticeWarning)
	}
	return nil
}

// Refresh recomputes the window after control returns from a battle or
// reward screen.
func (s *Session) Refresh() {
	s.nav.Refresh(s.state.Selection)
}

// OnDirectional moves the cursor.
func (s *Session) OnDirectional(d nav.Direction) Result {
	return Result{Moved: s.nav.Move(d)}
}

// OnScroll moves the window without moving the cursor.
func (s *Session) OnScroll(delta int) Result {
	before := s.nav.ScrollOffset()
	s.nav.Scroll(delta)
	return Result{Moved: s.nav.ScrollOffset() != before}
}

// OnConfirm accepts the node under the cursor.
func (s *Session) OnConfirm(ctx context.Context) Result {
	if s.graph == nil {
		return s.reject("", ErrNoGraph)
	}
	n, ok := s.nav.Hovered()
	if !ok {
		return s.reject("", path.ErrUnknownNode)
	}
	return s.accept(ctx, n)
}

// OnNodeChosenExternally accepts a node picked by something other than the
// cursor, such as a mouse click or a replay.
func (s *Session) OnNodeChosenExternally(ctx context.Context, id string) Result {
	if s.graph == nil {
		return s.reject(id, ErrNoGraph)
	}
	n, ok := s.graph.Node(id)
	if !ok {
		return s.reject(id, fmt.Errorf("%w: %s", path.ErrUnknownNode, id))
	}
	return s.accept(ctx, n)
}

// OnCancel returns the cursor to the pre-highlighted node. With the cursor
// already there it reports that the screen may close.
func (s *Session) OnCancel() Result {
	if s.graph == nil || s.nav.AtHome() {
		return Result{Close: true}
	}
	s.nav.ReturnHome()
	return Result{Moved: true}
}

func (s *Session) accept(ctx context.Context, n *path.Node) Result {
	if err := s.validator.Validate(n, s.state.Selection); err != nil {
		return s.reject(n.ID, err)
	}
	out, err := s.router.Accept(n, s.state)
	if err != nil {
		return s.reject(n.ID, err)
	}

	s.notices.Add(fmt.Sprintf("Wave %d: %s", n.Wave, out.Label()), NoticeInfo)
	s.log.Info("path node accepted", "node", n.ID, "wave", n.Wave, "type", out.Resolved.String(), "advanced", out.Advanced)

	res := Result{Accepted: true, Outcome: &out}
	if err := s.save(ctx); err != nil {
		s.log.Error("save run failed", "run", s.state.ID, "error", err)
		res.Err = err
	}
	s.Refresh()
	return res
}

func (s *Session) reject(id string, err error) Result {
	s.log.Info("path node rejected", "node", id, "wave", s.state.Selection.Wave, "reason", err)
	return Result{Rejected: true, Err: err}
}

// save snapshots the random stream into the run and persists it.
func (s *Session) save(ctx context.Context) error {
	if snap, ok := s.src.(snapshotter); ok {
		data, err := snap.State()
		if err != nil {
			return fmt.Errorf("snapshot rng: %w", err)
		}
		s.state.RNGState = data
		s.state.RNGDraws = snap.Draws()
	}
	if s.opts.Store == nil {
		return nil
	}
	if err := s.opts.Store.Save(ctx, s.state); err != nil {
		return fmt.Errorf("save run %s: %w", s.state.ID, err)
	}
	return nil
}

// View returns the current window snapshot.
func (s *Session) View() nav.View { return s.nav.View() }

// Cursor returns the navigation cursor.
func (s *Session) Cursor() nav.Cursor { return s.nav.Cursor() }

// Hovered returns the node under the cursor.
func (s *Session) Hovered() (*path.Node, bool) { return s.nav.Hovered() }

// SetViewOnly toggles the read-only presentation.
func (s *Session) SetViewOnly(on bool) { s.nav.SetViewOnly(on) }

// State returns a copy of the run state.
func (s *Session) State() *run.State { return s.state.Clone() }

// Notices returns the most recent n comms lines.
func (s *Session) Notices(n int) []Notice { return s.notices.Recent(n) }

// tap records scheduler notices in the comms log before forwarding them.
type tap struct {
	next outcome.Scheduler
	log  *NoticeLog
}

func (t *tap) StartBattle(b outcome.BattleRequest) {
	text := "Wild battle"
	switch {
	case b.Kind == outcome.BattleTrainer && !b.MajorBoss && !b.Rival:
		text = "Trainer battle"
	case b.MajorBoss:
		text = "Boss battle"
	case b.Rival:
		text = "Rival battle"
	}
	if b.Dynamic.ExtraDamageType != "" {
		text += fmt.Sprintf(", %s takes extra damage", b.Dynamic.ExtraDamageType)
	}
	t.log.Add(text, NoticeBattle)
	if t.next != nil {
		t.next.StartBattle(b)
	}
}

func (t *tap) OpenRewards(r outcome.RewardRequest) {
	if t.next != nil {
		t.next.OpenRewards(r)
	}
}

func (t *tap) OpenAccountRewards(r outcome.RewardRequest) {
	if t.next != nil {
		t.next.OpenAccountRewards(r)
	}
}

func (t *tap) ShowNotice(n outcome.Notice) {
	t.log.Add(n.Text, NoticeGain)
	if t.next != nil {
		t.next.ShowNotice(n)
	}
}
