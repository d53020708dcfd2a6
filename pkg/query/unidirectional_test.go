package query

import "testing"

func TestUnidirectionalChainFixture(t *testing.T) {
	store, meta := buildChainFixture()

	result, err := Unidirectional(store, meta, 0, 3)
	if err != nil {
		t.Fatalf("Unidirectional returned error: %v", err)
	}
	if result.Cost != 10.0 {
		t.Fatalf("got cost %v, want 10.0", result.Cost)
	}
	want := []uint32{0, 1, 2, 3}
	if !equalPaths(result.Path, want) {
		t.Fatalf("got path %v, want %v", result.Path, want)
	}
}

func TestUnidirectionalSameEdge(t *testing.T) {
	store, meta := buildChainFixture()

	result, err := Unidirectional(store, meta, 0, 0)
	if err != nil {
		t.Fatalf("Unidirectional returned error: %v", err)
	}
	if result.Cost != 1.0 {
		t.Fatalf("got cost %v, want 1.0", result.Cost)
	}
}

func TestUnidirectionalNoAscendingEdge(t *testing.T) {
	store, meta := buildChainFixture()

	// Starting from edge 3, the only phase-0 transition requires an
	// outgoing shortcut, and edge 3 has none.
	if _, err := Unidirectional(store, meta, 3, 0); err != ErrNoPath {
		t.Fatalf("got err %v, want ErrNoPath", err)
	}
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name      string
		phase     int8
		uRes      int32
		highRes   int32
		inside    int8
		wantPhase int8
		wantOK    bool
	}{
		{"ascend continues while finer than high", phaseAscend0, 9, 5, 1, phaseAscend1, true},
		{"ascend peaks on reaching high", phaseAscend0, 5, 5, 1, phasePeak, true},
		{"ascend peaks on non-upward", phaseAscend0, 9, 5, 0, phasePeak, true},
		{"peak descends on lateral", phasePeak, 9, 9, 0, phaseDescend, true},
		{"peak forbids another ascend", phasePeak, 9, 9, 1, 0, false},
		{"descend continues downward", phaseDescend, 5, 9, -1, phaseDescend, true},
		{"descend forbids lateral", phaseDescend, 5, 9, 0, 0, false},
		{"descend forbids upward", phaseDescend, 5, 9, 1, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotPhase, gotOK := transition(tc.phase, tc.uRes, tc.highRes, tc.inside)
			if gotOK != tc.wantOK {
				t.Fatalf("ok = %v, want %v", gotOK, tc.wantOK)
			}
			if gotOK && gotPhase != tc.wantPhase {
				t.Fatalf("phase = %v, want %v", gotPhase, tc.wantPhase)
			}
		})
	}
}
