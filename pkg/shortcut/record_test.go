package shortcut

import "testing"

func TestRecordPackUnpack(t *testing.T) {
	cases := []struct {
		viaEdge uint32
		inside  int8
	}{
		{0, InsideBase},
		{0, InsideLateral},
		{42, InsideUpward},
		{1<<30 - 1, InsideDownward},
		{123456, InsideLateral},
	}
	for _, c := range cases {
		r := NewRecord(1, 2, 3.5, 0xABCDEF, c.viaEdge, c.inside)
		if got := r.ViaEdge(); got != c.viaEdge {
			t.Errorf("ViaEdge() = %d, want %d", got, c.viaEdge)
		}
		if got := r.Inside(); got != c.inside {
			t.Errorf("Inside() = %d, want %d", got, c.inside)
		}
	}
}

func TestRecordFields(t *testing.T) {
	r := NewRecord(10, 20, 1.25, 0, NoViaEdge, InsideBase)
	if r.From != 10 || r.To != 20 {
		t.Errorf("From/To = %d/%d, want 10/20", r.From, r.To)
	}
	if r.Cost != 1.25 {
		t.Errorf("Cost = %v, want 1.25", r.Cost)
	}
	if r.ViaEdge() != NoViaEdge {
		t.Errorf("ViaEdge() = %d, want sentinel", r.ViaEdge())
	}
	if r.Resolution() != -1 {
		t.Errorf("Resolution() with cell=0 = %d, want -1", r.Resolution())
	}
}
