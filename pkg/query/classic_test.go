package query

import "testing"

func TestClassicChainFixture(t *testing.T) {
	store, meta := buildChainFixture()

	result, err := Classic(store, meta, 0, 3)
	if err != nil {
		t.Fatalf("Classic returned error: %v", err)
	}
	if result.Cost != 10.0 {
		t.Fatalf("got cost %v, want 10.0", result.Cost)
	}
	want := []uint32{0, 1, 2, 3}
	if !equalPaths(result.Path, want) {
		t.Fatalf("got path %v, want %v", result.Path, want)
	}
}

func TestClassicSameEdge(t *testing.T) {
	store, meta := buildChainFixture()

	result, err := Classic(store, meta, 2, 2)
	if err != nil {
		t.Fatalf("Classic returned error: %v", err)
	}
	if result.Cost != 1.0 {
		t.Fatalf("got cost %v, want 1.0", result.Cost)
	}
	if !equalPaths(result.Path, []uint32{2}) {
		t.Fatalf("got path %v, want [2]", result.Path)
	}
}

func TestClassicEdgeNotFound(t *testing.T) {
	store, meta := buildChainFixture()

	if _, err := Classic(store, meta, 0, 99); err != ErrEdgeNotFound {
		t.Fatalf("got err %v, want ErrEdgeNotFound", err)
	}
}

func TestClassicNoPath(t *testing.T) {
	store, meta := buildChainFixture()

	// Edge 3 has no outgoing shortcut and edge 0 has no incoming one, so
	// the forward and backward searches of 3 -> 0 can never meet.
	if _, err := Classic(store, meta, 3, 0); err != ErrNoPath {
		t.Fatalf("got err %v, want ErrNoPath", err)
	}
}

func equalPaths(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
