package query

import "testing"

func TestClassicAltNoPenaltyMatchesClassic(t *testing.T) {
	store, meta := buildChainFixture()

	alt, err := ClassicAlt(store, meta, 0, 3, nil, 1.0)
	if err != nil {
		t.Fatalf("ClassicAlt returned error: %v", err)
	}

	classic, err := Classic(store, meta, 0, 3)
	if err != nil {
		t.Fatalf("Classic returned error: %v", err)
	}

	if alt.Cost != classic.Cost {
		t.Fatalf("alt cost %v != classic cost %v", alt.Cost, classic.Cost)
	}
	if !equalPaths(alt.Path, classic.Path) {
		t.Fatalf("alt path %v != classic path %v", alt.Path, classic.Path)
	}
}

func TestClassicAltReportsTrueCostDespitePenalty(t *testing.T) {
	store, meta := buildChainFixture()

	penalized := map[uint32]bool{2: true}

	alt, err := ClassicAlt(store, meta, 0, 3, penalized, 5.0)
	if err != nil {
		t.Fatalf("ClassicAlt returned error: %v", err)
	}
	// The fixture has only one route, so the heavy penalty on edge 2
	// cannot redirect the search; the reported cost must still be the
	// unpenalized true cost.
	if alt.Cost != 10.0 {
		t.Fatalf("got cost %v, want true cost 10.0", alt.Cost)
	}
}

func TestClassicAltExemptsSourceAndTarget(t *testing.T) {
	store, meta := buildChainFixture()

	penalized := map[uint32]bool{0: true, 3: true}

	alt, err := ClassicAlt(store, meta, 0, 3, penalized, 10.0)
	if err != nil {
		t.Fatalf("ClassicAlt returned error: %v", err)
	}
	if alt.Cost != 10.0 {
		t.Fatalf("got cost %v, want 10.0", alt.Cost)
	}
	// The caller's map must be left untouched.
	if !penalized[0] || !penalized[3] {
		t.Fatalf("caller's penalized map was mutated: %v", penalized)
	}
}
