// Command pathcheck loads a battle path file and reports integrity issues and
// per-wave node counts. With -walk it plays the path through a session,
// always taking the first reachable node, and prints each outcome.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/spacehole-rogue/battlepath/assets"
	"github.com/spacehole-rogue/battlepath/internal/app"
	"github.com/spacehole-rogue/battlepath/internal/config"
	"github.com/spacehole-rogue/battlepath/internal/path"
	runstate "github.com/spacehole-rogue/battlepath/internal/run"
	"github.com/spacehole-rogue/battlepath/internal/session"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pathcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configFile string
		walk       bool
		seed       int64
		logLevel   string
	)
	fs.StringVar(&configFile, "config", "", "settings file (default: embedded)")
	fs.BoolVar(&walk, "walk", false, "play the path taking the first reachable node each wave")
	fs.Int64Var(&seed, "seed", 1, "random seed for -walk")
	fs.StringVar(&logLevel, "log-level", "error", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := app.LoadConfig(configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	log := app.NewLogger(logLevel, cfg.Log.Format, stderr)

	data, name, err := readGraph(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	g, err := path.LoadGraph(data, cfg.BuildOptions(log))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s: %v\n", name, err)
		return 1
	}

	report(stdout, name, g)
	if walk {
		if err := walkPath(stdout, cfg, g, seed, log); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

func readGraph(file string) ([]byte, string, error) {
	if file == "" {
		data, err := assets.Graphs.ReadFile(assets.DemoGraph)
		return data, assets.DemoGraph, err
	}
	data, err := os.ReadFile(file)
	return data, file, err
}

func report(w io.Writer, name string, g *path.Graph) {
	fmt.Fprintf(w, "%s: %d nodes over %d waves\n", name, g.Len(), g.TotalWaves)
	for wave := 1; wave <= g.TotalWaves; wave++ {
		counts := map[string]int{}
		for _, n := range g.Wave(wave) {
			counts[path.NodeTypeLabel(n.Type)]++
		}
		labels := make([]string, 0, len(counts))
		for l := range counts {
			labels = append(labels, l)
		}
		sort.Strings(labels)
		fmt.Fprintf(w, "  wave %3d: %d", wave, len(g.Wave(wave)))
		for _, l := range labels {
			fmt.Fprintf(w, "  %s x%d", l, counts[l])
		}
		fmt.Fprintln(w)
	}

	issues := g.Issues()
	if len(issues) == 0 {
		fmt.Fprintln(w, "no integrity issues")
		return
	}
	fmt.Fprintf(w, "%d integrity issues:\n", len(issues))
	for _, is := range issues {
		fmt.Fprintf(w, "  %s\n", is)
	}
}

func walkPath(w io.Writer, cfg *config.Config, g *path.Graph, seed int64, log *slog.Logger) error {
	oc, err := cfg.Outcome()
	if err != nil {
		return err
	}
	s, err := session.New(runstate.New(seed), session.Options{
		Router: oc,
		Nav:    cfg.Nav(),
		Party:  app.StarterParty(),
		Logger: log,
	})
	if err != nil {
		return err
	}
	if err := s.LoadGraph(g); err != nil {
		return err
	}

	ctx := context.Background()
	fmt.Fprintf(w, "walk with seed %d:\n", seed)
	for {
		n, ok := s.Hovered()
		if !ok {
			break
		}
		res := s.OnConfirm(ctx)
		if !res.Accepted {
			fmt.Fprintf(w, "  stopped at wave %d: %v\n", s.State().Selection.Wave, res.Err)
			break
		}
		fmt.Fprintf(w, "  wave %3d  %-12s %s\n", n.Wave, n.ID, res.Outcome)
		if !res.Outcome.Advanced {
			break
		}
	}
	st := s.State()
	fmt.Fprintf(w, "money %d, account money %d, rivals %v\n", st.Money, st.PermaMoney, st.RivalWaves)
	return nil
}
