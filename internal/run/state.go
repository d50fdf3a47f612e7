// Package run holds the per-run cells the path subsystem reads and writes:
// the selection cursor, currencies and boss ledgers.
package run

import (
	"slices"

	"github.com/google/uuid"
	"github.com/spacehole-rogue/battlepath/internal/path"
)

// State is everything about a run that outlives a single screen.
type State struct {
	ID        string         `json:"id"`
	Seed      int64          `json:"seed"`
	Selection path.Selection `json:"selection"`

	Money      int `json:"money"`      // run-local currency
	PermaMoney int `json:"permaMoney"` // account-wide currency

	MajorBossWave int   `json:"majorBossWave,omitempty"` // 0 until a major boss node is chosen
	RivalWaves    []int `json:"rivalWaves,omitempty"`    // waves at which a rival node was chosen
	FacingBoss    bool  `json:"facingBoss,omitempty"`

	// Serialized random stream, see rng.Stream.State.
	RNGState []byte `json:"rngState,omitempty"`
	RNGDraws uint64 `json:"rngDraws,omitempty"`
}

// New creates the state for a fresh run.
func New(seed int64) *State {
	return &State{
		ID:        uuid.NewString(),
		Seed:      seed,
		Selection: path.NewSelection(),
	}
}

// RecordRival adds a wave to the rival ledger once.
func (s *State) RecordRival(wave int) {
	if slices.Contains(s.RivalWaves, wave) {
		return
	}
	s.RivalWaves = append(s.RivalWaves, wave)
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.RivalWaves = slices.Clone(s.RivalWaves)
	c.RNGState = slices.Clone(s.RNGState)
	return &c
}
