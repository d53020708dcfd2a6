package query

import "testing"

func TestMultiSingletonMatchesClassic(t *testing.T) {
	store, meta := buildChainFixture()

	multi, err := Multi(store, meta, []uint32{0}, []uint32{3})
	if err != nil {
		t.Fatalf("Multi returned error: %v", err)
	}

	classic, err := Classic(store, meta, 0, 3)
	if err != nil {
		t.Fatalf("Classic returned error: %v", err)
	}

	if multi.Cost != classic.Cost {
		t.Fatalf("multi cost %v != classic cost %v", multi.Cost, classic.Cost)
	}
	if !equalPaths(multi.Path, classic.Path) {
		t.Fatalf("multi path %v != classic path %v", multi.Path, classic.Path)
	}
}

func TestMultiPicksBestAcrossSources(t *testing.T) {
	store, meta := buildChainFixture()

	// Edge 1 is also a valid source, giving a direct, cheaper path to
	// edge 3 than starting from edge 0; Multi must prefer it.
	result, err := Multi(store, meta, []uint32{0, 1}, []uint32{3})
	if err != nil {
		t.Fatalf("Multi returned error: %v", err)
	}
	if result.Cost != 5.0 {
		t.Fatalf("got cost %v, want 5.0", result.Cost)
	}
	want := []uint32{1, 2, 3}
	if !equalPaths(result.Path, want) {
		t.Fatalf("got path %v, want %v", result.Path, want)
	}
}

func TestMultiEmptySourcesIsNoPath(t *testing.T) {
	store, meta := buildChainFixture()

	if _, err := Multi(store, meta, nil, []uint32{3}); err != ErrNoPath {
		t.Fatalf("got err %v, want ErrNoPath", err)
	}
}

func TestMultiUnknownEdge(t *testing.T) {
	store, meta := buildChainFixture()

	if _, err := Multi(store, meta, []uint32{0}, []uint32{42}); err != ErrEdgeNotFound {
		t.Fatalf("got err %v, want ErrEdgeNotFound", err)
	}
}
