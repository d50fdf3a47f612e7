// Package app wires configuration, persistence, the party and the session
// into a runnable battle path.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spacehole-rogue/battlepath/assets"
	"github.com/spacehole-rogue/battlepath/internal/config"
	"github.com/spacehole-rogue/battlepath/internal/outcome"
	"github.com/spacehole-rogue/battlepath/internal/party"
	"github.com/spacehole-rogue/battlepath/internal/path"
	"github.com/spacehole-rogue/battlepath/internal/rng"
	"github.com/spacehole-rogue/battlepath/internal/run"
	"github.com/spacehole-rogue/battlepath/internal/session"
	"github.com/spacehole-rogue/battlepath/internal/store"
	"github.com/spacehole-rogue/battlepath/internal/store/memory"
	"github.com/spacehole-rogue/battlepath/internal/store/postgres"
	"github.com/spacehole-rogue/battlepath/internal/store/sqlite"
)

// App is a fully wired battle path.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Store   store.Store
	Graph   *path.Graph
	Party   *party.Roster
	Queue   *outcome.Queue
	Session *session.Session
}

// LoadConfig reads a settings file, or the embedded default when name is
// empty, then applies environment overrides.
func LoadConfig(name string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if name == "" {
		cfg, err = config.Load(assets.DefaultConfig)
	} else {
		cfg, err = config.LoadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New builds the application: it opens the store, resumes the latest run (or
// starts one), loads the graph and binds a session to it.
func New(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	log := NewLogger(cfg.Log.Level, cfg.Log.Format, logOut)

	st, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Log: log, Store: st, Queue: outcome.NewQueue(), Party: StarterParty()}

	g, err := LoadGraph(cfg, log)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	a.Graph = g

	state, err := ResumeOrStart(ctx, st, cfg.Seed)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	log.Info("run ready", "run", state.ID, "seed", state.Seed, "wave", state.Selection.Wave)

	oc, err := cfg.Outcome()
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	a.Session, err = session.New(state, session.Options{
		Router:    oc,
		Nav:       cfg.Nav(),
		Party:     a.Party,
		Scheduler: a.Queue,
		Store:     st,
		Logger:    log,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	if err := a.Session.LoadGraph(g); err != nil {
		_ = st.Close()
		return nil, err
	}
	return a, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a == nil || a.Store == nil {
		return nil
	}
	return a.Store.Close()
}

// OpenStore opens the configured run store.
func OpenStore(ctx context.Context, sc config.StoreConfig) (store.Store, error) {
	switch sc.Driver {
	case "", "memory":
		return memory.New(), nil
	case "sqlite":
		dsn := sc.DSN
		if dsn == "" {
			dsn = "battlepath.db"
		}
		return sqlite.Open(dsn)
	case "postgres":
		return postgres.Open(ctx, sc.DSN)
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", sc.Driver)
	}
}

// LoadGraph reads the configured graph file, or the embedded demo graph.
func LoadGraph(cfg *config.Config, log *slog.Logger) (*path.Graph, error) {
	var (
		data []byte
		err  error
	)
	if cfg.Graph.File == "" {
		data, err = assets.Graphs.ReadFile(assets.DemoGraph)
	} else {
		data, err = os.ReadFile(cfg.Graph.File)
	}
	if err != nil {
		return nil, fmt.Errorf("read battle path: %w", err)
	}
	return path.LoadGraph(data, cfg.BuildOptions(log))
}

// ResumeOrStart returns the latest saved run, or a new one when the store is
// empty. A zero seed draws a fresh one.
func ResumeOrStart(ctx context.Context, st store.Store, seed int64) (*run.State, error) {
	state, err := st.Latest(ctx)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("resume run: %w", err)
	}
	if seed == 0 {
		if seed, err = rng.NewSeed(); err != nil {
			return nil, err
		}
	}
	return run.New(seed), nil
}

// StarterParty is the roster a new run begins with.
func StarterParty() *party.Roster {
	r := party.NewRoster()
	r.Add("bulbasaur", []string{"grass", "poison"}, party.Stats{HP: 45, Attack: 49, Defense: 49, SpAttack: 65, SpDefense: 65, Speed: 45})
	r.Add("pidgey", []string{"normal", "flying"}, party.Stats{HP: 40, Attack: 45, Defense: 40, SpAttack: 35, SpDefense: 35, Speed: 56})
	r.Add("geodude", []string{"rock", "ground"}, party.Stats{HP: 40, Attack: 80, Defense: 100, SpAttack: 30, SpDefense: 30, Speed: 20})
	return r
}
