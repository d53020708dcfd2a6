package expand

import (
	"reflect"
	"testing"

	"h3router/pkg/shortcut"
)

func TestPathBaseEdgesOnly(t *testing.T) {
	records := []shortcut.Record{
		shortcut.NewRecord(1, 2, 1.0, 0, shortcut.NoViaEdge, shortcut.InsideBase),
	}
	store, err := shortcut.Build(records, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := Path(store, []uint32{1, 2})
	want := []uint32{1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Path = %v, want %v", got, want)
	}
}

func TestPathExpandsViaEdge(t *testing.T) {
	// A -> B via C, and C -> B via D (both non-sentinel, non-endpoint).
	records := []shortcut.Record{
		shortcut.NewRecord(0, 1, 5.0, 0, 2, shortcut.InsideUpward),   // A(0) -> B(1), via C(2)
		shortcut.NewRecord(0, 2, 2.0, 0, shortcut.NoViaEdge, shortcut.InsideBase), // A -> C base
		shortcut.NewRecord(2, 1, 3.0, 0, 3, shortcut.InsideUpward),   // C(2) -> B(1), via D(3)
		shortcut.NewRecord(2, 3, 1.0, 0, shortcut.NoViaEdge, shortcut.InsideBase), // C -> D base
		shortcut.NewRecord(3, 1, 2.0, 0, shortcut.NoViaEdge, shortcut.InsideBase), // D -> B base
	}
	store, err := shortcut.Build(records, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := Path(store, []uint32{0, 1})
	want := []uint32{0, 2, 3, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Path = %v, want %v", got, want)
	}
}

func TestPathMissingRecordTreatedAsBase(t *testing.T) {
	records := []shortcut.Record{
		shortcut.NewRecord(0, 1, 1.0, 0, shortcut.NoViaEdge, shortcut.InsideBase),
	}
	store, err := shortcut.Build(records, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := Path(store, []uint32{5, 6})
	want := []uint32{5, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Path = %v, want %v", got, want)
	}
}

func TestPathCycleProtection(t *testing.T) {
	// A shortcut whose via_edge points back into a cycle must terminate.
	records := []shortcut.Record{
		shortcut.NewRecord(0, 1, 1.0, 0, 2, shortcut.InsideUpward),
		shortcut.NewRecord(0, 2, 1.0, 0, 1, shortcut.InsideUpward), // points back toward 1
		shortcut.NewRecord(2, 1, 1.0, 0, 0, shortcut.InsideUpward), // via=0 is NoViaEdge: base; (0,2) via 1 revisits (0,1)
	}
	store, err := shortcut.Build(records, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Must terminate (not hang) and return a non-empty sequence.
	got := Path(store, []uint32{0, 1})
	if len(got) < 2 {
		t.Fatalf("Path returned too-short sequence: %v", got)
	}
}

// TestPathExpansionCostSum checks expansion soundness: summing the
// record cost along consecutive pairs of the expanded base-edge path
// must equal the shortcut-level total cost.
func TestPathExpansionCostSum(t *testing.T) {
	// A(0) -> B(1) via C(2), cost 5, decomposing into A->C (base, cost
	// 2) and C(2) -> B(1) via D(3), cost 3, itself decomposing into
	// C->D (base, cost 1) and D->B (base, cost 2).
	records := []shortcut.Record{
		shortcut.NewRecord(0, 1, 5.0, 0, 2, shortcut.InsideUpward),
		shortcut.NewRecord(0, 2, 2.0, 0, shortcut.NoViaEdge, shortcut.InsideBase),
		shortcut.NewRecord(2, 1, 3.0, 0, 3, shortcut.InsideUpward),
		shortcut.NewRecord(2, 3, 1.0, 0, shortcut.NoViaEdge, shortcut.InsideBase),
		shortcut.NewRecord(3, 1, 2.0, 0, shortcut.NoViaEdge, shortcut.InsideBase),
	}
	store, err := shortcut.Build(records, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	shortcutPath := []uint32{0, 1}
	shortcutTotal := pathCost(t, store, shortcutPath)

	basePath := Path(store, shortcutPath)
	baseTotal := pathCost(t, store, basePath)

	if diff := shortcutTotal - baseTotal; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("expansion changed total cost: shortcut-level=%v, base-edge sum=%v", shortcutTotal, baseTotal)
	}
}

// pathCost sums the record cost of every consecutive pair in path,
// failing the test if a pair has no record (every hop along an
// expanded path must be directly resolvable).
func pathCost(t *testing.T, store *shortcut.Store, path []uint32) float64 {
	t.Helper()
	var total float64
	for i := 1; i < len(path); i++ {
		rec, ok := store.Lookup(path[i-1], path[i])
		if !ok {
			t.Fatalf("no record for (%d, %d) in path %v", path[i-1], path[i], path)
		}
		total += float64(rec.Cost)
	}
	return total
}

func TestPathDeterministic(t *testing.T) {
	records := []shortcut.Record{
		shortcut.NewRecord(0, 1, 5.0, 0, 2, shortcut.InsideUpward),
		shortcut.NewRecord(0, 2, 2.0, 0, shortcut.NoViaEdge, shortcut.InsideBase),
		shortcut.NewRecord(2, 1, 3.0, 0, shortcut.NoViaEdge, shortcut.InsideBase),
	}
	store, err := shortcut.Build(records, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	a := Path(store, []uint32{0, 1})
	b := Path(store, []uint32{0, 1})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Path not deterministic: %v vs %v", a, b)
	}
}
