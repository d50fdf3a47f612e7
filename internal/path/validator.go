package path

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrUnknownNode      = errors.New("node is not part of this path")
	ErrStaleWave        = errors.New("node is not on the current wave")
	ErrNotReachable     = errors.New("node is not connected to the previous choice")
	ErrConvergencePoint = errors.New("convergence points cannot be selected")
)

// Validator decides which nodes may be chosen next.
type Validator struct {
	graph *Graph
	log   *slog.Logger
}

// NewValidator binds a validator to a graph.
func NewValidator(g *Graph, log *slog.Logger) *Validator {
	if log == nil {
		log = slog.Default()
	}
	return &Validator{graph: g, log: log}
}

// Available returns the nodes that may be chosen at sel.Wave, in wave order.
// A broken selection yields an empty set rather than an error.
func (v *Validator) Available(sel Selection) []*Node {
	row := v.graph.Wave(sel.Wave)
	if sel.Wave == 1 {
		return v.selectable(row)
	}

	prev, ok := v.graph.Node(sel.SelectedPath)
	if !ok {
		v.log.Warn("no previous selection to continue from", "wave", sel.Wave, "selected", sel.SelectedPath)
		return nil
	}
	if prev.Wave >= sel.Wave {
		// final wave already chosen
		return nil
	}

	var out []*Node
	for _, n := range row {
		if prev.ConnectsTo(n.ID) {
			out = append(out, n)
		}
	}
	out = v.selectable(out)
	if len(out) == 0 && len(row) > 0 {
		v.log.Warn("no path forward", "wave", sel.Wave, "from", prev.ID)
	}
	return out
}

// selectable filters convergence points, which should never be reachable.
func (v *Validator) selectable(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if !n.Selectable() {
			v.log.Warn("convergence point offered as a choice", "node", n.ID, "wave", n.Wave)
			continue
		}
		out = append(out, n)
	}
	return out
}

// IsSelectable reports membership in Available.
func (v *Validator) IsSelectable(n *Node, sel Selection) bool {
	for _, a := range v.Available(sel) {
		if a.ID == n.ID {
			return true
		}
	}
	return false
}

// Validate is the pre-check run before a node is accepted. It never mutates
// state.
func (v *Validator) Validate(n *Node, sel Selection) error {
	if n == nil {
		return ErrUnknownNode
	}
	known, ok := v.graph.Node(n.ID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, n.ID)
	}
	if !known.Selectable() {
		return fmt.Errorf("%w: %s", ErrConvergencePoint, n.ID)
	}
	if known.Wave != sel.Wave {
		return fmt.Errorf("%w: %s is on wave %d, current wave is %d", ErrStaleWave, n.ID, known.Wave, sel.Wave)
	}
	if !v.IsSelectable(known, sel) {
		return fmt.Errorf("%w: %s", ErrNotReachable, n.ID)
	}
	return nil
}

// Graph returns the graph the validator is bound to.
func (v *Validator) Graph() *Graph { return v.graph }
