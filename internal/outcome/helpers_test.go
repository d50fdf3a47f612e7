package outcome

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/spacehole-rogue/battlepath/internal/path"
	"github.com/stretchr/testify/require"
)

// scripted replays fixed draws and records the bounds it was asked for.
type scripted struct {
	draws []int
	next  int
	asked []int
}

func (s *scripted) Int(n int) int {
	s.asked = append(s.asked, n)
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[s.next%len(s.draws)]
	s.next++
	return v
}

func (s *scripted) IntFrom(n, min int) int { return min + s.Int(n) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func testGraph(t *testing.T, nodes ...*path.Node) *path.Graph {
	t.Helper()
	g, err := path.NewGraph(0, nodes, path.BuildOptions{Logger: quietLogger()})
	require.NoError(t, err)
	return g
}
