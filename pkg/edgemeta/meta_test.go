package edgemeta

import "testing"

func TestStorePutGet(t *testing.T) {
	s := NewStore(10)
	m := Meta{FromCell: 1, ToCell: 2, LCARes: 3, Length: 4, Cost: 5}
	s.Put(5, m)

	got, ok := s.Get(5)
	if !ok {
		t.Fatal("Get(5) not found")
	}
	if got.FromCell != m.FromCell || got.ToCell != m.ToCell || got.LCARes != m.LCARes ||
		got.Length != m.Length || got.Cost != m.Cost {
		t.Errorf("Get(5) = %+v, want %+v", got, m)
	}
}

func TestStoreMaxID(t *testing.T) {
	s := NewStore(10)
	if got := s.MaxID(); got != 10 {
		t.Errorf("MaxID() = %d, want 10", got)
	}
	s.Put(20, Meta{Length: 1})
	if got := s.MaxID(); got != 20 {
		t.Errorf("MaxID() after grow = %d, want 20", got)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := NewStore(10)
	if _, ok := s.Get(3); ok {
		t.Error("Get(3) found, want absent")
	}
}

func TestStoreGrows(t *testing.T) {
	s := NewStore(0)
	s.Put(100, Meta{Length: 1})
	if got, ok := s.Get(100); !ok || got.Length != 1 {
		t.Errorf("Get(100) = %v, %v", got, ok)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}
