package path

import (
	"encoding/json"
	"fmt"
)

// GraphFile is the JSON-serializable form of a generated battle path.
type GraphFile struct {
	Version    int     `json:"version"`
	TotalWaves int     `json:"totalWaves"`
	Nodes      []*Node `json:"nodes"`
}

// LoadGraph parses a GraphFile from JSON bytes and ingests it.
func LoadGraph(data []byte, opts BuildOptions) (*Graph, error) {
	var f GraphFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse battle path: %w", err)
	}
	if f.Version != 1 {
		return nil, fmt.Errorf("unsupported battle path version: %d", f.Version)
	}
	g, err := NewGraph(f.TotalWaves, f.Nodes, opts)
	if err != nil {
		return nil, fmt.Errorf("build battle path: %w", err)
	}
	return g, nil
}
