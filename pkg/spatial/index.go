// Package spatial provides nearest-edge lookup over a dataset's edge
// geometry, in either an H3-bucket or an R-tree mode.
package spatial

import (
	"errors"
	"math"
	"sort"

	"h3router/pkg/edgemeta"
	"h3router/pkg/geo"
)

// ErrNoGeometry names the missing-geometry condition; refinement skips
// such edges and does not return this error.
var ErrNoGeometry = errors.New("spatial: edge has no geometry")

// Candidate is a nearest-edge search result.
type Candidate struct {
	EdgeID         uint32
	DistanceMeters float64
}

// Index is the tagged-variant spatial lookup interface; both modes
// implement it identically from the caller's perspective.
type Index interface {
	// FindNearestEdges returns up to k candidates within radiusMeters of
	// (lat, lng), sorted ascending by distance, ties broken by lower
	// edge ID. Edges without geometry are skipped.
	FindNearestEdges(lat, lng float64, k int, radiusMeters float64) []Candidate
}

// refineCandidates computes exact point-to-polyline distance for each
// edge ID, drops edges beyond radiusMeters or lacking geometry, sorts
// ascending by distance (lower edge ID breaking ties), and truncates to
// k.
func refineCandidates(meta *edgemeta.Store, edgeIDs []uint32, lat, lng float64, k int, radiusMeters float64) []Candidate {
	seen := make(map[uint32]struct{}, len(edgeIDs))
	out := make([]Candidate, 0, len(edgeIDs))
	for _, id := range edgeIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		dist, ok := distanceToEdge(meta, id, lat, lng)
		if !ok || dist > radiusMeters {
			continue
		}
		out = append(out, Candidate{EdgeID: id, DistanceMeters: dist})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceMeters != out[j].DistanceMeters {
			return out[i].DistanceMeters < out[j].DistanceMeters
		}
		return out[i].EdgeID < out[j].EdgeID
	})

	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

func distanceToEdge(meta *edgemeta.Store, edgeID uint32, lat, lng float64) (float64, bool) {
	m, ok := meta.Get(edgeID)
	if !ok || len(m.Geometry) < 2 {
		return 0, false
	}
	best := math.Inf(1)
	for i := 0; i < len(m.Geometry)-1; i++ {
		a, b := m.Geometry[i], m.Geometry[i+1]
		d, _ := geo.PointToSegmentDist(lat, lng, a.Lat, a.Lon, b.Lat, b.Lon)
		if d < best {
			best = d
		}
	}
	return best, true
}

// boundingBox returns the (min, max) lon/lat box spanning an edge's
// geometry.
func boundingBox(pts []edgemeta.Point) (min, max [2]float64) {
	min = [2]float64{math.Inf(1), math.Inf(1)}
	max = [2]float64{math.Inf(-1), math.Inf(-1)}
	for _, p := range pts {
		if p.Lon < min[0] {
			min[0] = p.Lon
		}
		if p.Lat < min[1] {
			min[1] = p.Lat
		}
		if p.Lon > max[0] {
			max[0] = p.Lon
		}
		if p.Lat > max[1] {
			max[1] = p.Lat
		}
	}
	return min, max
}
