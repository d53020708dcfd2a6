package query

import (
	"errors"
	"math"

	"h3router/pkg/edgemeta"
)

// Error taxonomy shared by every algorithm in this package.
var (
	ErrEdgeNotFound = errors.New("query: edge not found")
	ErrNoPath       = errors.New("query: no path")
)

// Result is the outcome of a successful query: the shortcut-level edge
// sequence and its total cost.
type Result struct {
	Path []uint32
	Cost float64
}

// state holds per-query bidirectional search state over the edge (line
// graph) ID space. Each query builds its own state with newState; reset
// clears only the touched entries and both heaps.
type state struct {
	distFwd []float64
	distBwd []float64
	predFwd []uint32
	predBwd []uint32
	touched []uint32

	fwdPQ minHeap
	bwdPQ minHeap
}

func newState(maxEdgeID uint32) *state {
	n := maxEdgeID + 1
	s := &state{
		distFwd: make([]float64, n),
		distBwd: make([]float64, n),
		predFwd: make([]uint32, n),
		predBwd: make([]uint32, n),
		touched: make([]uint32, 0, 1024),
	}
	s.resetAll()
	return s
}

func (s *state) resetAll() {
	for i := range s.distFwd {
		s.distFwd[i] = math.Inf(1)
		s.distBwd[i] = math.Inf(1)
		s.predFwd[i] = noEdge
		s.predBwd[i] = noEdge
	}
}

func (s *state) reset() {
	for _, e := range s.touched {
		s.distFwd[e] = math.Inf(1)
		s.distBwd[e] = math.Inf(1)
		s.predFwd[e] = noEdge
		s.predBwd[e] = noEdge
	}
	s.touched = s.touched[:0]
	s.fwdPQ.Reset()
	s.bwdPQ.Reset()
}

func (s *state) touch(edge uint32) {
	if math.IsInf(s.distFwd[edge], 1) && math.IsInf(s.distBwd[edge], 1) {
		s.touched = append(s.touched, edge)
	}
}

func (s *state) relaxFwd(edge uint32, dist float64) bool {
	if dist < s.distFwd[edge] {
		s.touch(edge)
		s.distFwd[edge] = dist
		return true
	}
	return false
}

func (s *state) relaxBwd(edge uint32, dist float64) bool {
	if dist < s.distBwd[edge] {
		s.touch(edge)
		s.distBwd[edge] = dist
		return true
	}
	return false
}

// reconstructBidir builds the shortcut-level edge path through a
// meeting edge, following predFwd back to the source and predBwd
// forward to the target.
func (s *state) reconstructBidir(meeting uint32) []uint32 {
	var fwdChain []uint32
	for e := meeting; e != noEdge; e = s.predFwd[e] {
		fwdChain = append(fwdChain, e)
	}
	// fwdChain is meeting-to-source order (meeting first); reverse it.
	for i, j := 0, len(fwdChain)-1; i < j; i, j = i+1, j-1 {
		fwdChain[i], fwdChain[j] = fwdChain[j], fwdChain[i]
	}

	var bwdChain []uint32
	for e := s.predBwd[meeting]; e != noEdge; e = s.predBwd[e] {
		bwdChain = append(bwdChain, e)
	}

	return append(fwdChain, bwdChain...)
}

// edgeCost returns the base cost of an edge from its metadata.
func edgeCost(meta *edgemeta.Store, edge uint32) (float64, bool) {
	m, ok := meta.Get(edge)
	if !ok {
		return 0, false
	}
	return m.Cost, true
}

// cellRes returns the resolution of an edge's position in the
// hierarchy, derived from its to_cell.
func cellRes(meta *edgemeta.Store, edge uint32) int32 {
	m, ok := meta.Get(edge)
	if !ok {
		return -1
	}
	return metaCellRes(m)
}

func metaCellRes(m edgemeta.Meta) int32 {
	if m.ToCell == 0 {
		return -1
	}
	// resolution is recoverable directly from the cell's own bits, so
	// the metadata's own lca_res is not substituted here — that field
	// describes the shortcut's cell, not the edge's.
	return cellResolutionOf(m.ToCell)
}

// HighCell identifies the LCA-derived cell bounding a query's useful
// search zone, reducing each edge's to_cell to its lca_res ancestor
// before taking the LCA of the two results.
type HighCell struct {
	Cell uint64
	Res  int32
}

// ComputeHighCell implements the common framework's "high cell" rule.
// It degenerates to (0, -1) when either edge lacks a cell.
func ComputeHighCell(meta *edgemeta.Store, s, t uint32) HighCell {
	sm, sok := meta.Get(s)
	tm, tok := meta.Get(t)
	if !sok || !tok || sm.ToCell == 0 || tm.ToCell == 0 {
		return HighCell{Cell: 0, Res: -1}
	}
	sCell := parentAt(sm.ToCell, sm.LCARes)
	tCell := parentAt(tm.ToCell, tm.LCARes)
	lca, res := lcaOf(sCell, tCell)
	return HighCell{Cell: lca, Res: res}
}

func sameEdgeResult(meta *edgemeta.Store, edge uint32) (Result, error) {
	cost, ok := edgeCost(meta, edge)
	if !ok {
		return Result{}, ErrEdgeNotFound
	}
	return Result{Path: []uint32{edge}, Cost: cost}, nil
}

func requireEdges(meta *edgemeta.Store, edges ...uint32) error {
	for _, e := range edges {
		if _, ok := meta.Get(e); !ok {
			return ErrEdgeNotFound
		}
	}
	return nil
}
