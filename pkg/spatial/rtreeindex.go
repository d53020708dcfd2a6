package spatial

import (
	"math"

	"github.com/tidwall/rtree"

	"h3router/pkg/edgemeta"
)

const metersPerDegreeLat = 111_320.0

// RTreeIndex indexes edges by the axis-aligned bounding box of their
// polyline, for roads too long to bucket usefully by H3 cell.
type RTreeIndex struct {
	tree rtree.RTreeG[uint32]
	meta *edgemeta.Store
}

// BuildRTreeIndex inserts one bounding box per edge with geometry.
func BuildRTreeIndex(meta *edgemeta.Store, maxEdgeID uint32) *RTreeIndex {
	idx := &RTreeIndex{meta: meta}
	for id := uint32(0); id <= maxEdgeID; id++ {
		m, ok := meta.Get(id)
		if !ok || len(m.Geometry) == 0 {
			continue
		}
		min, max := boundingBox(m.Geometry)
		idx.tree.Insert(min, max, id)
	}
	return idx
}

// FindNearestEdges queries a box derived from radiusMeters around the
// point, then refines by exact point-to-polyline distance.
func (rt *RTreeIndex) FindNearestEdges(lat, lng float64, k int, radiusMeters float64) []Candidate {
	dLat := radiusMeters / metersPerDegreeLat
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 1e-6 {
		cosLat = 1e-6
	}
	dLng := radiusMeters / (metersPerDegreeLat * cosLat)

	min := [2]float64{lng - dLng, lat - dLat}
	max := [2]float64{lng + dLng, lat + dLat}

	var gathered []uint32
	rt.tree.Search(min, max, func(_, _ [2]float64, edgeID uint32) bool {
		gathered = append(gathered, edgeID)
		return true
	})

	return refineCandidates(rt.meta, gathered, lat, lng, k, radiusMeters)
}
