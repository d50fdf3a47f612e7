package nav

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spacehole-rogue/battlepath/internal/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func node(id string, wave, col int, conns ...string) *path.Node {
	return &path.Node{ID: id, Wave: wave, Type: path.NodeWildPokemon, Position: path.Position{X: col}, Connections: conns}
}

func load(t *testing.T, cfg Config, sel path.Selection, opts path.BuildOptions, nodes ...*path.Node) *Engine {
	t.Helper()
	opts.Logger = quietLogger()
	g, err := path.NewGraph(0, nodes, opts)
	require.NoError(t, err)
	e := New(cfg, quietLogger())
	e.Load(path.NewValidator(g, quietLogger()), sel)
	return e
}

// chain builds a single-file path of n waves.
func chain(n int) []*path.Node {
	nodes := make([]*path.Node, 0, n)
	for w := 1; w <= n; w++ {
		var next []string
		if w < n {
			next = []string{fmt.Sprintf("w%d", w+1)}
		}
		nodes = append(nodes, node(fmt.Sprintf("w%d", w), w, 0, next...))
	}
	return nodes
}

func hovered(t *testing.T, e *Engine) string {
	t.Helper()
	n, ok := e.Hovered()
	require.True(t, ok)
	return n.ID
}

func TestFanOutIsDistinctAndSymmetric(t *testing.T) {
	cfg := DefaultConfig()
	for k := 1; k <= 4; k++ {
		row := make([]*path.Node, k)
		for i := range row {
			row[i] = node(fmt.Sprint(i), 1, 2)
		}
		xs := cfg.columnX(row)
		base := float64(cfg.Left + 2*cfg.ColumnSpacing)

		seen := map[float64]bool{}
		for i, x := range xs {
			assert.False(t, seen[x], "k=%d overlapping x %v", k, x)
			seen[x] = true
			mirror := xs[k-1-i]
			assert.InDelta(t, x-base, -(mirror-base), 1e-9, "k=%d node %d is not mirrored by node %d", k, i, k-1-i)
		}
	}
}

func TestRowsAreOrderedByColumn(t *testing.T) {
	e := load(t, Config{}, path.NewSelection(), path.BuildOptions{},
		node("right", 1, 3), node("left", 1, 0), node("mid", 1, 1), node("mid2", 1, 1))

	var got []string
	for _, n := range e.View().Nodes {
		got = append(got, n.ID)
	}
	assert.Equal(t, []string{"left", "mid", "mid2", "right"}, got)
}

func TestCursorStartsOnFirstReachable(t *testing.T) {
	e := load(t, Config{}, path.Selection{Wave: 2, SelectedPath: "a"}, path.BuildOptions{},
		node("a", 1, 0, "c"),
		node("b", 2, 0),
		node("c", 2, 2),
	)
	assert.Equal(t, "c", hovered(t, e))
	assert.True(t, e.AtHome())
}

func TestDownPrefersConnectedOverColumn(t *testing.T) {
	e := load(t, Config{}, path.NewSelection(), path.BuildOptions{},
		node("a", 1, 0, "far"),
		node("same", 2, 0),
		node("far", 2, 3),
	)
	require.True(t, e.Move(Down))
	assert.Equal(t, "far", hovered(t, e))
}

func TestDownPrefersExactColumnAmongConnected(t *testing.T) {
	e := load(t, Config{}, path.NewSelection(), path.BuildOptions{},
		node("a", 1, 1, "l", "m", "r"),
		node("l", 2, 0),
		node("m", 2, 1),
		node("r", 2, 2),
	)
	require.True(t, e.Move(Down))
	assert.Equal(t, "m", hovered(t, e))
}

func TestColumnTieBreaksOnIndexThenLowerIndex(t *testing.T) {
	e := load(t, Config{}, path.NewSelection(), path.BuildOptions{},
		node("z", 1, 0, "m"),
		node("a", 1, 1, "l", "r"),
		node("l", 2, 0),
		node("m", 2, 1),
		node("r", 2, 2),
	)
	require.True(t, e.Move(Right))
	// l and r are equally far by column and by index: lower index wins
	require.True(t, e.Move(Down))
	assert.Equal(t, "l", hovered(t, e))

	require.True(t, e.Move(Up))
	assert.Equal(t, "a", hovered(t, e))
}

func TestDownFallsBackToWholeRow(t *testing.T) {
	e := load(t, Config{}, path.NewSelection(), path.BuildOptions{},
		node("a", 1, 1),
		node("x", 2, 0),
		node("y", 2, 2),
		node("z", 2, 3),
	)
	require.True(t, e.Move(Down))
	assert.Equal(t, "x", hovered(t, e))
}

func TestUpUsesPredecessors(t *testing.T) {
	e := load(t, Config{}, path.NewSelection(), path.BuildOptions{},
		node("p", 1, 0, "c"),
		node("q", 1, 2),
		node("c", 2, 2),
	)
	require.True(t, e.Focus("c"))
	require.True(t, e.Move(Up))
	assert.Equal(t, "p", hovered(t, e))
}

func TestEmptyRowKeepsCursor(t *testing.T) {
	e := load(t, Config{}, path.NewSelection(), path.BuildOptions{},
		node("a", 1, 0),
		node("b", 1, 1),
		node("c", 3, 0),
	)
	require.True(t, e.Move(Right))
	assert.False(t, e.Move(Down))
	assert.Equal(t, Cursor{Wave: 1, Index: 1}, e.Cursor())
	assert.False(t, e.Move(Up))
}

func TestLeftRightClamp(t *testing.T) {
	e := load(t, Config{}, path.NewSelection(), path.BuildOptions{},
		node("a", 1, 0), node("b", 1, 1))
	assert.False(t, e.Move(Left))
	assert.True(t, e.Move(Right))
	assert.False(t, e.Move(Right))
	assert.Equal(t, "b", hovered(t, e))
	assert.False(t, e.AtHome())
	e.ReturnHome()
	assert.Equal(t, "a", hovered(t, e))
}

func TestRevealStopsAtRevealAhead(t *testing.T) {
	e := load(t, Config{Rows: 8, RowHeight: 4, RevealAhead: 30}, path.NewSelection(), path.BuildOptions{}, chain(40)...)
	e.Scroll(1 << 20)

	v := e.View()
	assert.Equal(t, 30, v.LastWave)
	assert.Equal(t, (30-8)*4, v.MaxScroll)
	assert.Equal(t, v.MaxScroll, v.Scroll)
	for _, n := range v.Nodes {
		assert.LessOrEqual(t, n.Wave, 30)
	}
	assert.Equal(t, 30, v.Waves[len(v.Waves)-1].Wave)

	for i := 0; i < 40; i++ {
		e.Move(Down)
	}
	assert.Equal(t, 30, e.Cursor().Wave)
}

func TestRevealStopsAtSegmentEnd(t *testing.T) {
	e := load(t, Config{RevealAhead: 30, SegmentSize: 10, LookBehind: 2},
		path.Selection{Wave: 12, SelectedPath: "w11"}, path.BuildOptions{}, chain(40)...)

	assert.Equal(t, 11, e.firstWave())
	assert.Equal(t, 20, e.lastWave())

	e = load(t, Config{RevealAhead: 30, SegmentSize: 10, LookBehind: 5},
		path.Selection{Wave: 12, SelectedPath: "w11"}, path.BuildOptions{}, chain(40)...)
	assert.Equal(t, 11, e.firstWave(), "look-behind never crosses into the previous segment")
}

func TestRevealStopsAtTotalWaves(t *testing.T) {
	e := load(t, Config{Rows: 8, RowHeight: 4}, path.NewSelection(), path.BuildOptions{}, chain(5)...)
	assert.Equal(t, 5, e.lastWave())
	assert.Equal(t, 0, e.MaxScroll())
}

func TestScrollClamps(t *testing.T) {
	e := load(t, Config{Rows: 8, RowHeight: 4, RevealAhead: 30}, path.NewSelection(), path.BuildOptions{}, chain(40)...)
	e.Scroll(-10)
	assert.Equal(t, 0, e.ScrollOffset())
	e.Scroll(6)
	assert.Equal(t, 6, e.ScrollOffset())
	e.Scroll(1000)
	assert.Equal(t, e.MaxScroll(), e.ScrollOffset())

	e.Refresh(path.NewSelection())
	assert.Equal(t, 0, e.ScrollOffset())
}

func TestCursorPullsWindow(t *testing.T) {
	e := load(t, Config{Rows: 4, RowHeight: 4, RevealAhead: 30}, path.NewSelection(), path.BuildOptions{}, chain(40)...)
	for i := 0; i < 5; i++ {
		require.True(t, e.Move(Down))
	}
	// wave 6 must be the bottom row of a 4-row window
	assert.Equal(t, (6-4)*4, e.ScrollOffset())
}

func TestMissingGraph(t *testing.T) {
	e := New(Config{}, quietLogger())
	v := e.View()
	assert.Equal(t, MessageNoGraph, v.Message)
	assert.Empty(t, v.Nodes)
	assert.False(t, e.Move(Down))
	_, ok := e.Hovered()
	assert.False(t, ok)

	e.Load(nil, path.NewSelection())
	assert.Equal(t, MessageNoGraph, e.View().Message)
}

func TestNoPathForward(t *testing.T) {
	e := load(t, Config{}, path.Selection{Wave: 2, SelectedPath: "a"}, path.BuildOptions{},
		node("a", 1, 0),
		node("b", 2, 0),
	)
	assert.Equal(t, MessageNoPath, e.View().Message)
}

func TestCompletedPath(t *testing.T) {
	e := load(t, Config{}, path.Selection{Wave: 2, SelectedPath: "b"}, path.BuildOptions{},
		node("a", 1, 0, "b"),
		node("b", 2, 0),
	)
	assert.Equal(t, MessageComplete, e.View().Message)
}

func TestNodeStates(t *testing.T) {
	e := load(t, Config{}, path.Selection{Wave: 2, SelectedPath: "a"}, path.BuildOptions{},
		node("a", 1, 0, "c"),
		node("b", 1, 1, "d"),
		node("c", 2, 0),
		node("d", 2, 1),
	)
	got := map[string]State{}
	for _, n := range e.View().Nodes {
		got[n.ID] = n.State
	}
	want := map[string]State{
		"a": StateSelected,
		"b": StatePast,
		"c": StateReachable,
		"d": StateUnreachable,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("states mismatch (-want +got):\n%s", diff)
	}
}

func TestViewOnlyHidesUnreachableLabels(t *testing.T) {
	e := load(t, Config{ViewOnly: true}, path.Selection{Wave: 2, SelectedPath: "a"}, path.BuildOptions{},
		node("a", 1, 0, "c"),
		node("c", 2, 0, "e"),
		node("d", 2, 1),
		node("e", 3, 0),
	)
	labels := map[string]string{}
	for _, n := range e.View().Nodes {
		labels[n.ID] = n.Label
	}
	assert.NotEmpty(t, labels["a"])
	assert.NotEmpty(t, labels["c"])
	assert.Empty(t, labels["d"])
	assert.Empty(t, labels["e"])

	// the cursor resting on a concealed node does not reveal it
	require.True(t, e.Move(Right))
	require.Equal(t, "d", hovered(t, e))
	for _, n := range e.View().Nodes {
		if n.ID == "d" {
			assert.True(t, n.Cursor)
			assert.True(t, n.Hidden)
			assert.Empty(t, n.Label)
		}
	}
	assert.True(t, e.Hidden("d"))
	assert.False(t, e.Hidden("c"))
	assert.False(t, e.Hidden("a"))

	e.SetViewOnly(false)
	assert.False(t, e.Hidden("d"))
	for _, n := range e.View().Nodes {
		assert.NotEmpty(t, n.Label, n.ID)
		assert.False(t, n.Hidden, n.ID)
	}
}

func TestZeroConfigKeepsPastWavesInView(t *testing.T) {
	assert.Equal(t, DefaultConfig().LookBehind, New(Config{}, nil).Config().LookBehind)
	assert.Equal(t, 0, New(Config{LookBehind: -1}, nil).Config().LookBehind)

	sel := path.Selection{Wave: 3, SelectedPath: "w2"}
	e := load(t, Config{}, sel, path.BuildOptions{}, chain(5)...)
	v := e.View()
	require.NotEmpty(t, v.Nodes)
	assert.Equal(t, "w1", v.Nodes[0].ID)
	assert.Equal(t, StatePast, v.Nodes[0].State)
	assert.Equal(t, StateSelected, v.Nodes[1].State)

	e = load(t, Config{LookBehind: -1}, sel, path.BuildOptions{}, chain(5)...)
	assert.Equal(t, "w3", e.View().Nodes[0].ID)
}

func TestSuspectEdgesAreMarked(t *testing.T) {
	e := load(t, Config{}, path.NewSelection(), path.BuildOptions{MaxWaveGap: 1},
		node("a", 1, 0, "b", "c"),
		node("b", 2, 0, "c"),
		node("c", 3, 0),
	)
	got := map[string]bool{}
	for _, ed := range e.View().Edges {
		got[ed.From+">"+ed.To] = ed.Suspect
	}
	assert.Equal(t, map[string]bool{"a>b": false, "a>c": true, "b>c": false}, got)
}

func TestViewDoesNotMoveCursor(t *testing.T) {
	e := load(t, Config{}, path.NewSelection(), path.BuildOptions{}, chain(3)...)
	before := e.Cursor()
	_ = e.View()
	_ = e.View()
	assert.Equal(t, before, e.Cursor())
}
