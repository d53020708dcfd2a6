// Package dataset holds the process-wide registry of loaded routing
// graphs: the shortcut store, edge metadata, and spatial index bundled
// together as one immutable-after-publish unit.
package dataset

import (
	"h3router/pkg/edgemeta"
	"h3router/pkg/shortcut"
	"h3router/pkg/spatial"
)

// Dataset is a fully-indexed routing graph. Once published through a
// Registry it is never mutated; concurrent readers need no lock.
type Dataset struct {
	Name      string
	Source    string // "duckdb" or "files"
	Shortcuts *shortcut.Store
	Meta      *edgemeta.Store
	Index     spatial.Index
	IndexType string // "h3" or "rtree"
	Info      map[string]string
}
