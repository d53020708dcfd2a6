package query

import "testing"

// Pruned must find the classic-equivalent path when the high cell
// degenerates to (0, -1), i.e. when neither edge carries cell info.
func TestPrunedDegenerateHighCellMatchesClassic(t *testing.T) {
	store, meta := buildChainFixture()

	pruned, err := Pruned(store, meta, 0, 3)
	if err != nil {
		t.Fatalf("Pruned returned error: %v", err)
	}

	classic, err := Classic(store, meta, 0, 3)
	if err != nil {
		t.Fatalf("Classic returned error: %v", err)
	}

	if pruned.Cost != classic.Cost {
		t.Fatalf("pruned cost %v != classic cost %v", pruned.Cost, classic.Cost)
	}
	if !equalPaths(pruned.Path, classic.Path) {
		t.Fatalf("pruned path %v != classic path %v", pruned.Path, classic.Path)
	}
}

func TestPrunedSameEdge(t *testing.T) {
	store, meta := buildChainFixture()

	result, err := Pruned(store, meta, 1, 1)
	if err != nil {
		t.Fatalf("Pruned returned error: %v", err)
	}
	if result.Cost != 1.0 {
		t.Fatalf("got cost %v, want 1.0", result.Cost)
	}
}

func TestPrunedEdgeNotFound(t *testing.T) {
	store, meta := buildChainFixture()

	if _, err := Pruned(store, meta, 5, 3); err != ErrEdgeNotFound {
		t.Fatalf("got err %v, want ErrEdgeNotFound", err)
	}
}
