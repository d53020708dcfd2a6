package query

import "testing"

// TestAlgorithmsAgreeOnChainFixture pins the cross-algorithm agreement
// property: when a path exists, pruned, classic, unidirectional,
// dijkstra, multi (singleton), and classic_alt (no penalty) all report
// the same cost.
func TestAlgorithmsAgreeOnChainFixture(t *testing.T) {
	store, meta := buildChainFixture()
	const want = 10.0

	cases := []struct {
		name string
		run  func() (Result, error)
	}{
		{"classic", func() (Result, error) { return Classic(store, meta, 0, 3) }},
		{"pruned", func() (Result, error) { return Pruned(store, meta, 0, 3) }},
		{"unidirectional", func() (Result, error) { return Unidirectional(store, meta, 0, 3) }},
		{"dijkstra", func() (Result, error) { return Dijkstra(store, meta, 0, 3) }},
		{"multi", func() (Result, error) { return Multi(store, meta, []uint32{0}, []uint32{3}) }},
		{"classic_alt", func() (Result, error) { return ClassicAlt(store, meta, 0, 3, nil, 1.0) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.run()
			if err != nil {
				t.Fatalf("%s returned error: %v", tc.name, err)
			}
			if result.Cost != want {
				t.Fatalf("%s cost = %v, want %v", tc.name, result.Cost, want)
			}
		})
	}
}

// TestBackwardInitConventionDiffers pins the two coexisting backward-
// seed conventions: classic (and its relatives) initialize dist_bwd[t]
// at cost(t) and report the meeting total directly, while dijkstra
// initializes its single-direction distance at 0 for the source and
// adds cost(t) only once, at the end, after reaching t. Both report
// the same final number on this fixture because dijkstra's addition
// happens exactly once, matching the one-time inclusion baked into the
// classic family's seed.
func TestBackwardInitConventionDiffers(t *testing.T) {
	store, meta := buildChainFixture()

	classic, err := Classic(store, meta, 0, 3)
	if err != nil {
		t.Fatalf("Classic returned error: %v", err)
	}
	dijkstra, err := Dijkstra(store, meta, 0, 3)
	if err != nil {
		t.Fatalf("Dijkstra returned error: %v", err)
	}
	if classic.Cost != dijkstra.Cost {
		t.Fatalf("classic cost %v != dijkstra cost %v", classic.Cost, dijkstra.Cost)
	}
}

func TestNoPathIsConsistentAcrossAlgorithms(t *testing.T) {
	store, meta := buildChainFixture()

	algorithms := map[string]func() (Result, error){
		"classic":        func() (Result, error) { return Classic(store, meta, 3, 0) },
		"pruned":         func() (Result, error) { return Pruned(store, meta, 3, 0) },
		"unidirectional": func() (Result, error) { return Unidirectional(store, meta, 3, 0) },
		"dijkstra":       func() (Result, error) { return Dijkstra(store, meta, 3, 0) },
		"multi":          func() (Result, error) { return Multi(store, meta, []uint32{3}, []uint32{0}) },
		"classic_alt":    func() (Result, error) { return ClassicAlt(store, meta, 3, 0, nil, 1.0) },
	}

	for name, run := range algorithms {
		if _, err := run(); err != ErrNoPath {
			t.Fatalf("%s: got err %v, want ErrNoPath", name, err)
		}
	}
}
