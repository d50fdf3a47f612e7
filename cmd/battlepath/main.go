package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spacehole-rogue/battlepath/internal/app"
	"github.com/spacehole-rogue/battlepath/internal/nav"
	"github.com/spacehole-rogue/battlepath/internal/outcome"
	"github.com/spacehole-rogue/battlepath/internal/render"
	"github.com/spacehole-rogue/battlepath/internal/screen"
	"github.com/spacehole-rogue/battlepath/internal/session"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	title        = "Battle Path"

	cellWidth  = 16
	cellHeight = 16
	gridCols   = screenWidth / cellWidth   // 80
	gridRows   = screenHeight / cellHeight // 45

	helpText = "Arrows: Move  Enter: Choose  Wheel: Scroll  V: View only  Esc: Back"
)

// Game is the Ebitengine game struct. It owns rendering and input; all path
// state lives in the session.
type Game struct {
	ctx      context.Context
	app      *app.App
	renderer *screen.GridRenderer
	buffer   *render.CellBuffer
	layout   render.Layout
	viewOnly bool
	pending  []outcome.Request
}

func NewGame(ctx context.Context, a *app.App) *Game {
	atlas := screen.NewFontAtlas()
	return &Game{
		ctx:      ctx,
		app:      a,
		renderer: screen.NewGridRenderer(atlas, cellWidth, cellHeight),
		buffer:   render.NewCellBuffer(gridCols, gridRows),
		layout:   render.DefaultLayout(gridCols, gridRows, a.Config.Nav()),
	}
}

func (g *Game) Update() error {
	s := g.app.Session

	// Battles and reward screens are out of scope here: a queued request is
	// acknowledged on the next frame and control returns to the path.
	if len(g.pending) > 0 {
		for _, r := range g.pending {
			switch {
			case r.Battle != nil:
				g.app.Log.Info("battle", "kind", r.Battle.Kind.String(), "wave", r.Battle.Wave)
			case r.Reward != nil:
				g.app.Log.Info("rewards", "account", r.Kind == outcome.RequestAccountRewards)
			}
		}
		g.pending = nil
		s.Refresh()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		s.OnDirectional(nav.Up)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		s.OnDirectional(nav.Down)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		s.OnDirectional(nav.Left)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		s.OnDirectional(nav.Right)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if res := s.OnConfirm(g.ctx); res.Accepted {
			g.pending = g.app.Queue.Drain()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.viewOnly = !g.viewOnly
		s.SetViewOnly(g.viewOnly)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if s.OnCancel().Close {
			return ebiten.Termination
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		step := g.app.Config.View.RowHeight
		if wy > 0 {
			step = -step
		}
		s.OnScroll(step)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if id, ok := g.nodeAt(mx/cellWidth, my/cellHeight); ok {
			if res := s.OnNodeChosenExternally(g.ctx, id); res.Accepted {
				g.pending = g.app.Queue.Drain()
			}
		}
	}

	g.drawScreen()
	return nil
}

// nodeAt finds the node drawn at a cell.
func (g *Game) nodeAt(cx, cy int) (string, bool) {
	for _, n := range g.app.Session.View().Nodes {
		x, y := render.CellAt(n.At)
		if x == cx && y == cy {
			return n.ID, true
		}
	}
	return "", false
}

func (g *Game) drawScreen() {
	s := g.app.Session
	st := s.State()

	var preview *session.Preview
	if n, ok := s.Hovered(); ok {
		if p, ok := s.Preview(n.ID); ok {
			preview = &p
		}
	}
	render.Draw(g.buffer, g.layout, render.Frame{
		Title:   title,
		View:    s.View(),
		Preview: preview,
		Party:   g.app.Party.Members(),
		Money:   st.Money,
		Perma:   st.PermaMoney,
		Notices: s.Notices(g.layout.CommsLines),
		Help:    helpText,
	})

	fps := fmt.Sprintf("FPS: %.0f", ebiten.ActualFPS())
	g.buffer.WriteString(gridCols-10, gridRows-1, fps, render.ColorDarkGray, render.ColorBlack)
}

func (g *Game) Draw(dst *ebiten.Image) {
	g.renderer.DrawEdges(dst, g.app.Session.View(), g.layout)
	g.renderer.Draw(dst, g.buffer)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	configFile := flag.String("config", "", "settings file (default: embedded)")
	flag.Parse()

	cfg, err := app.LoadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	a, err := app.New(ctx, cfg, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewGame(ctx, a)); err != nil {
		a.Log.Error("game exited", "error", err)
	}
}
