package query

import "testing"

func TestDijkstraChainFixture(t *testing.T) {
	store, meta := buildChainFixture()

	result, err := Dijkstra(store, meta, 0, 3)
	if err != nil {
		t.Fatalf("Dijkstra returned error: %v", err)
	}
	if result.Cost != 10.0 {
		t.Fatalf("got cost %v, want 10.0", result.Cost)
	}
	want := []uint32{0, 1, 2, 3}
	if !equalPaths(result.Path, want) {
		t.Fatalf("got path %v, want %v", result.Path, want)
	}
}

func TestDijkstraIgnoresInsideTags(t *testing.T) {
	store, meta := buildChainFixture()

	// Dijkstra has no notion of "classic" hierarchy tags, so it must
	// also succeed starting mid-chain even though edge 1's only
	// outgoing record is lateral, not upward.
	result, err := Dijkstra(store, meta, 1, 3)
	if err != nil {
		t.Fatalf("Dijkstra returned error: %v", err)
	}
	if result.Cost != 5.0 {
		t.Fatalf("got cost %v, want 5.0", result.Cost)
	}
}

func TestDijkstraSameEdge(t *testing.T) {
	store, meta := buildChainFixture()

	result, err := Dijkstra(store, meta, 2, 2)
	if err != nil {
		t.Fatalf("Dijkstra returned error: %v", err)
	}
	if result.Cost != 1.0 {
		t.Fatalf("got cost %v, want 1.0", result.Cost)
	}
}

func TestDijkstraNoPath(t *testing.T) {
	store, meta := buildChainFixture()

	if _, err := Dijkstra(store, meta, 3, 0); err != ErrNoPath {
		t.Fatalf("got err %v, want ErrNoPath", err)
	}
}
