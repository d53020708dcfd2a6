package spatial

import (
	"h3router/pkg/edgemeta"
	"h3router/pkg/h3cell"
)

// minRings is the minimum ring radius searched before the early-exit
// candidate-count check is allowed to fire; searching fewer rings risks
// missing a genuinely closer edge bucketed one ring further out.
const minRings = 2

// maxRings bounds how far the ring search expands when too few
// candidates are found nearby.
const maxRings = 4

// H3Index buckets edges by the H3 cell of their endpoints at a fixed
// indexing resolution.
type H3Index struct {
	res     int32
	buckets map[h3cell.Cell][]uint32
	meta    *edgemeta.Store
}

// BuildH3Index indexes every edge in meta under the cell ancestor (at
// res) of its from_cell and, when distinct, its to_cell.
func BuildH3Index(meta *edgemeta.Store, maxEdgeID uint32, res int32) *H3Index {
	idx := &H3Index{
		res:     res,
		buckets: make(map[h3cell.Cell][]uint32),
		meta:    meta,
	}
	for id := uint32(0); id <= maxEdgeID; id++ {
		m, ok := meta.Get(id)
		if !ok {
			continue
		}
		fromParent := h3cell.Parent(h3cell.Cell(m.FromCell), res)
		toParent := h3cell.Parent(h3cell.Cell(m.ToCell), res)
		if fromParent != h3cell.None {
			idx.buckets[fromParent] = append(idx.buckets[fromParent], id)
		}
		if toParent != h3cell.None && toParent != fromParent {
			idx.buckets[toParent] = append(idx.buckets[toParent], id)
		}
	}
	return idx
}

// FindNearestEdges implements Index by expanding grid rings from the
// query point's cell until enough candidates are gathered or maxRings
// is reached.
func (h *H3Index) FindNearestEdges(lat, lng float64, k int, radiusMeters float64) []Candidate {
	center, err := h3cell.LatLngToCell(lat, lng, h.res)
	if err != nil {
		return nil
	}

	var gathered []uint32
	for ring := 0; ring <= maxRings; ring++ {
		cells, err := h3cell.GridRing(center, ring)
		if err != nil {
			break
		}
		for _, c := range cells {
			gathered = append(gathered, h.buckets[c]...)
		}
		if ring >= minRings && len(gathered) >= k*2 {
			break
		}
	}

	return refineCandidates(h.meta, gathered, lat, lng, k, radiusMeters)
}
