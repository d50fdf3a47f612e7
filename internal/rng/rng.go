// Package rng provides the per-run seeded random stream used by every random
// decision on the battle path.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source is the random capability consumed by the path subsystem.
type Source interface {
	// Int returns a uniform integer in [0, n). n must be > 0.
	Int(n int) int
	// IntFrom returns a uniform integer in [min, min+n).
	IntFrom(n, min int) int
}

// Stream is a Source backed by a PCG generator. Its full state can be
// marshalled so a restored run continues the same sequence.
type Stream struct {
	pcg   *rand.PCG
	r     *rand.Rand
	draws uint64
}

// New creates a stream seeded from a run seed.
func New(seed int64) *Stream {
	pcg := rand.NewPCG(uint64(seed), uint64(seed>>16|1))
	return &Stream{pcg: pcg, r: rand.New(pcg)}
}

// Restore rebuilds a stream from bytes produced by State.
func Restore(state []byte, draws uint64) (*Stream, error) {
	pcg := &rand.PCG{}
	if err := pcg.UnmarshalBinary(state); err != nil {
		return nil, fmt.Errorf("restore rng state: %w", err)
	}
	return &Stream{pcg: pcg, r: rand.New(pcg), draws: draws}, nil
}

// Int implements Source.
func (s *Stream) Int(n int) int {
	if n <= 0 {
		return 0
	}
	s.draws++
	return s.r.IntN(n)
}

// IntFrom implements Source.
func (s *Stream) IntFrom(n, min int) int {
	return min + s.Int(n)
}

// Draws reports how many values have been taken from the stream.
func (s *Stream) Draws() uint64 { return s.draws }

// State returns the marshalled generator state.
func (s *Stream) State() ([]byte, error) {
	b, err := s.pcg.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal rng state: %w", err)
	}
	return b, nil
}

// NewSeed generates a fresh run seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
