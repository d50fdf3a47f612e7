// Package assets embeds the demo battle path and the default settings.
package assets

import "embed"

//go:embed graphs/*.json
var Graphs embed.FS

//go:embed config/default.yaml
var DefaultConfig []byte

// DemoGraph is the graph loaded when no file is configured.
const DemoGraph = "graphs/demo.json"
