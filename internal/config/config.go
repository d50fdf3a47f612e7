// Package config loads the battle path settings file and applies environment
// overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spacehole-rogue/battlepath/internal/nav"
	"github.com/spacehole-rogue/battlepath/internal/outcome"
	"github.com/spacehole-rogue/battlepath/internal/path"
	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type StoreConfig struct {
	Driver string `yaml:"driver"` // memory, sqlite or postgres
	DSN    string `yaml:"dsn"`
}

type ViewConfig struct {
	Rows          int  `yaml:"rows"`
	RowHeight     int  `yaml:"row_height"`
	ColumnSpacing int  `yaml:"column_spacing"`
	FanSpacing    int  `yaml:"fan_spacing"`
	Left          int  `yaml:"left"`
	Top           int  `yaml:"top"`
	RevealAhead   int  `yaml:"reveal_ahead"`
	SegmentSize   int  `yaml:"segment_size"`
	LookBehind    int  `yaml:"look_behind"`
	ViewOnly      bool `yaml:"view_only"`
}

type GraphConfig struct {
	File       string `yaml:"file"` // empty uses the embedded demo graph
	MaxWaveGap int    `yaml:"max_wave_gap"`
}

type MoneyRule struct {
	Range   int `yaml:"range"`
	Min     int `yaml:"min"`
	PerWave int `yaml:"per_wave"`
}

type MoneyConfig struct {
	Run     MoneyRule `yaml:"run"`
	Account MoneyRule `yaml:"account"`
}

type WeightedType struct {
	Type   string `yaml:"type"`
	Weight int    `yaml:"weight"`
}

type TiersConfig struct {
	PermaMoney []int `yaml:"perma_money"` // cumulative breakpoints
	Vouchers   []int `yaml:"vouchers"`    // weights
}

// Config is the whole settings file.
type Config struct {
	Version int            `yaml:"version"`
	Seed    int64          `yaml:"seed"` // 0 picks a fresh seed per run
	Log     LogConfig      `yaml:"log"`
	Store   StoreConfig    `yaml:"store"`
	View    ViewConfig     `yaml:"view"`
	Graph   GraphConfig    `yaml:"graph"`
	Rewards map[string]int `yaml:"rewards"` // pre-paid rerolls by node type
	Money   MoneyConfig    `yaml:"money"`
	Mystery []WeightedType `yaml:"mystery"`
	Tiers   TiersConfig    `yaml:"tiers"`
}

// Overrides are the environment variables that win over the file.
type Overrides struct {
	LogLevel    string `env:"BATTLEPATH_LOG_LEVEL"`
	LogFormat   string `env:"BATTLEPATH_LOG_FORMAT"`
	StoreDriver string `env:"BATTLEPATH_STORE_DRIVER"`
	StoreDSN    string `env:"BATTLEPATH_STORE_DSN"`
	Seed        int64  `env:"BATTLEPATH_SEED"`
	GraphFile   string `env:"BATTLEPATH_GRAPH_FILE"`
}

// Default returns the built-in settings.
func Default() *Config {
	oc := outcome.DefaultConfig()
	nc := nav.DefaultConfig()

	cfg := &Config{
		Version: 1,
		Log:     LogConfig{Level: "info", Format: "text"},
		Store:   StoreConfig{Driver: "memory"},
		View: ViewConfig{
			Rows:          nc.Rows,
			RowHeight:     nc.RowHeight,
			ColumnSpacing: nc.ColumnSpacing,
			FanSpacing:    nc.FanSpacing,
			Left:          nc.Left,
			Top:           nc.Top,
			RevealAhead:   nc.RevealAhead,
			SegmentSize:   nc.SegmentSize,
			LookBehind:    nc.LookBehind,
		},
		Graph:   GraphConfig{MaxWaveGap: path.DefaultMaxWaveGap},
		Rewards: make(map[string]int, len(oc.Rerolls)),
		Money: MoneyConfig{
			Run:     MoneyRule(oc.RunMoney),
			Account: MoneyRule(oc.AccountMoney),
		},
		Tiers: TiersConfig{
			PermaMoney: slices.Clone(oc.PermaMoneyBand),
			Vouchers:   slices.Clone(oc.VoucherWeights),
		},
	}
	for t, n := range oc.Rerolls {
		cfg.Rewards[t.String()] = n
	}
	for _, e := range oc.Mystery {
		cfg.Mystery = append(cfg.Mystery, WeightedType{Type: e.Value.String(), Weight: e.Weight})
	}
	return cfg
}

// Load parses a settings file. Missing sections take their defaults.
func Load(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d", cfg.Version)
	}
	cfg.applyDefaults(Default())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads and parses a settings file.
func LoadFile(name string) (*Config, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Load(b)
}

func (c *Config) applyDefaults(d *Config) {
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Store.Driver == "" {
		c.Store.Driver = d.Store.Driver
	}
	if c.View == (ViewConfig{}) {
		c.View = d.View
	}
	if c.Graph.MaxWaveGap <= 0 {
		c.Graph.MaxWaveGap = d.Graph.MaxWaveGap
	}
	if c.Rewards == nil {
		c.Rewards = d.Rewards
	}
	if c.Money.Run == (MoneyRule{}) {
		c.Money.Run = d.Money.Run
	}
	if c.Money.Account == (MoneyRule{}) {
		c.Money.Account = d.Money.Account
	}
	if len(c.Mystery) == 0 {
		c.Mystery = d.Mystery
	}
	if len(c.Tiers.PermaMoney) == 0 {
		c.Tiers.PermaMoney = d.Tiers.PermaMoney
	}
	if len(c.Tiers.Vouchers) == 0 {
		c.Tiers.Vouchers = d.Tiers.Vouchers
	}
}

// ApplyEnv layers environment overrides onto c.
func (c *Config) ApplyEnv() error {
	var o Overrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Log.Format = o.LogFormat
	}
	if o.StoreDriver != "" {
		c.Store.Driver = o.StoreDriver
	}
	if o.StoreDSN != "" {
		c.Store.DSN = o.StoreDSN
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.GraphFile != "" {
		c.Graph.File = o.GraphFile
	}
	return c.Validate()
}

// Validate checks values that would otherwise fail later and far away.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %q", c.Log.Format)
	}
	switch c.Store.Driver {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported store driver: %q", c.Store.Driver)
	}
	if _, err := c.Outcome(); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unsupported log level: %q", s)
	}
	return l, nil
}

// Outcome converts the reward, money and table sections for the router.
func (c *Config) Outcome() (outcome.Config, error) {
	oc := outcome.Config{
		Rerolls:        make(map[path.NodeType]int, len(c.Rewards)),
		RunMoney:       outcome.MoneyRule(c.Money.Run),
		AccountMoney:   outcome.MoneyRule(c.Money.Account),
		PermaMoneyBand: slices.Clone(c.Tiers.PermaMoney),
		VoucherWeights: slices.Clone(c.Tiers.Vouchers),
	}
	for name, n := range c.Rewards {
		t, err := path.ParseNodeType(name)
		if err != nil {
			return outcome.Config{}, fmt.Errorf("rewards: %w", err)
		}
		oc.Rerolls[t] = n
	}
	for i, e := range c.Mystery {
		t, err := path.ParseNodeType(e.Type)
		if err != nil {
			return outcome.Config{}, fmt.Errorf("mystery[%d]: %w", i, err)
		}
		oc.Mystery = append(oc.Mystery, outcome.Entry[path.NodeType]{Weight: e.Weight, Value: t})
	}
	// surface table errors at load time rather than at first dispatch
	if _, err := outcome.NewMysteryResolver(oc.Mystery, nil); err != nil {
		return outcome.Config{}, fmt.Errorf("mystery: %w", err)
	}
	if _, err := outcome.FromBreakpoints(oc.PermaMoneyBand, outcome.PermaMoneyTiers); err != nil {
		return outcome.Config{}, fmt.Errorf("tiers.perma_money: %w", err)
	}
	if len(oc.VoucherWeights) != len(outcome.VoucherTiers) {
		return outcome.Config{}, fmt.Errorf("tiers.vouchers: want %d weights, got %d", len(outcome.VoucherTiers), len(oc.VoucherWeights))
	}
	return oc, nil
}

// Nav converts the view section.
func (c *Config) Nav() nav.Config {
	return nav.Config(c.View)
}

// BuildOptions returns graph ingestion options.
func (c *Config) BuildOptions(log *slog.Logger) path.BuildOptions {
	return path.BuildOptions{MaxWaveGap: c.Graph.MaxWaveGap, Logger: log}
}
