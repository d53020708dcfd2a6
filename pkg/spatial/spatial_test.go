package spatial

import (
	"testing"

	"h3router/pkg/edgemeta"
	"h3router/pkg/h3cell"
)

func buildTestMeta() *edgemeta.Store {
	s := edgemeta.NewStore(2)
	s.Put(0, edgemeta.Meta{
		FromCell: mustCell(1.30, 103.80),
		ToCell:   mustCell(1.31, 103.81),
		Geometry: []edgemeta.Point{
			{Lon: 103.80, Lat: 1.30},
			{Lon: 103.81, Lat: 1.31},
		},
	})
	s.Put(1, edgemeta.Meta{
		FromCell: mustCell(10.0, 10.0),
		ToCell:   mustCell(10.01, 10.01),
		Geometry: []edgemeta.Point{
			{Lon: 10.0, Lat: 10.0},
			{Lon: 10.01, Lat: 10.01},
		},
	})
	return s
}

func mustCell(lat, lng float64) uint64 {
	// indexing resolution used throughout these tests
	c, err := h3cell.LatLngToCell(lat, lng, 9)
	if err != nil {
		panic(err)
	}
	return uint64(c)
}

func TestH3IndexFindsNearEdge(t *testing.T) {
	meta := buildTestMeta()
	idx := BuildH3Index(meta, 1, 9)

	candidates := idx.FindNearestEdges(1.305, 103.805, 5, 5000)
	if len(candidates) == 0 {
		t.Fatal("expected at least one candidate")
	}
	if candidates[0].EdgeID != 0 {
		t.Errorf("nearest edge = %d, want 0", candidates[0].EdgeID)
	}
}

func TestH3IndexExcludesFarEdge(t *testing.T) {
	meta := buildTestMeta()
	idx := BuildH3Index(meta, 1, 9)

	candidates := idx.FindNearestEdges(1.305, 103.805, 5, 5000)
	for _, c := range candidates {
		if c.EdgeID == 1 {
			t.Error("far edge 1 should not be within 5km of query point near edge 0")
		}
	}
}

func TestRTreeIndexFindsNearEdge(t *testing.T) {
	meta := buildTestMeta()
	idx := BuildRTreeIndex(meta, 1)

	candidates := idx.FindNearestEdges(1.305, 103.805, 5, 5000)
	if len(candidates) == 0 {
		t.Fatal("expected at least one candidate")
	}
	if candidates[0].EdgeID != 0 {
		t.Errorf("nearest edge = %d, want 0", candidates[0].EdgeID)
	}
}

func TestRefineCandidatesTruncatesToK(t *testing.T) {
	meta := edgemeta.NewStore(3)
	for i := uint32(0); i < 4; i++ {
		meta.Put(i, edgemeta.Meta{
			Geometry: []edgemeta.Point{
				{Lon: 103.80, Lat: 1.30},
				{Lon: 103.80 + float64(i)*0.001, Lat: 1.30},
			},
		})
	}
	out := refineCandidates(meta, []uint32{0, 1, 2, 3}, 1.30, 103.80, 2, 100000)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
}

func TestRefineCandidatesSkipsNoGeometry(t *testing.T) {
	meta := edgemeta.NewStore(1)
	meta.Put(0, edgemeta.Meta{})
	out := refineCandidates(meta, []uint32{0}, 1.30, 103.80, 5, 1000)
	if len(out) != 0 {
		t.Errorf("len = %d, want 0 for edge without geometry", len(out))
	}
}
