package outcome

import (
	"errors"
	"fmt"

	"github.com/spacehole-rogue/battlepath/internal/rng"
)

var ErrEmptyTable = errors.New("weighted table has no positive weight")

// Entry is one (weight, value) row of a weighted table.
type Entry[T any] struct {
	Weight int
	Value  T
}

// Table picks values by weighted random draw. Row order is significant: the
// same draw always lands on the same row.
type Table[T any] struct {
	entries []Entry[T]
	total   int
}

// NewTable builds a table. Zero-weight rows are kept (they can never be hit
// except as the fallback); negative weights are rejected.
func NewTable[T any](entries ...Entry[T]) (*Table[T], error) {
	t := &Table[T]{entries: append([]Entry[T](nil), entries...)}
	for i, e := range entries {
		if e.Weight < 0 {
			return nil, fmt.Errorf("row %d: negative weight %d", i, e.Weight)
		}
		t.total += e.Weight
	}
	if t.total == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// FromBreakpoints builds a table from ascending cumulative bounds, e.g.
// [750 900 950 975 1000] gives rows of weight 750, 150, 50, 25 and 25.
func FromBreakpoints[T any](bounds []int, values []T) (*Table[T], error) {
	if len(bounds) != len(values) {
		return nil, fmt.Errorf("%d breakpoints for %d values", len(bounds), len(values))
	}
	entries := make([]Entry[T], len(bounds))
	prev := 0
	for i, b := range bounds {
		if b < prev {
			return nil, fmt.Errorf("breakpoint %d (%d) is below the previous one (%d)", i, b, prev)
		}
		entries[i] = Entry[T]{Weight: b - prev, Value: values[i]}
		prev = b
	}
	return NewTable(entries...)
}

// Total is the sum of all weights.
func (t *Table[T]) Total() int { return t.total }

// Entries returns a copy of the rows in order.
func (t *Table[T]) Entries() []Entry[T] {
	return append([]Entry[T](nil), t.entries...)
}

// Pick draws once from src and returns the selected value.
func (t *Table[T]) Pick(src rng.Source) T {
	return t.At(src.Int(t.total))
}

// At returns the value for a given draw: the first row whose cumulative weight
// exceeds it. A draw outside [0, Total) falls back to the first row.
func (t *Table[T]) At(draw int) T {
	acc := 0
	for _, e := range t.entries {
		acc += e.Weight
		if draw < acc && draw >= 0 {
			return e.Value
		}
	}
	return t.entries[0].Value
}
