package shortcut

import (
	"errors"
	"fmt"
)

// Error taxonomy for shortcut store construction, mirroring the engine's
// error taxonomy at the HTTP boundary.
var (
	ErrSchemaMismatch = errors.New("shortcut: schema mismatch")
	ErrInvalidInput   = errors.New("shortcut: invalid input")
	ErrEmptyDataset   = errors.New("shortcut: empty dataset")
)

// Store is the CSR shortcut graph: forward offsets index directly into
// Records; backward offsets index into BwdIndices, which in turn index
// Records.
type Store struct {
	Records []Record

	FwdOffsets []uint32 // len == MaxEdgeID+2, monotonically non-decreasing
	BwdOffsets []uint32 // len == MaxEdgeID+2
	BwdIndices []uint32 // len == len(Records)

	MaxEdgeID uint32

	// lookup resolves (from,to) to the first-seen record index, used by
	// path expansion. Key is from<<32 | to.
	lookup map[uint64]uint32
}

func pairKey(from, to uint32) uint64 {
	return uint64(from)<<32 | uint64(to)
}

// Lookup returns the representative record for (from, to) and whether
// one exists.
func (s *Store) Lookup(from, to uint32) (Record, bool) {
	idx, ok := s.lookup[pairKey(from, to)]
	if !ok {
		return Record{}, false
	}
	return s.Records[idx], true
}

// Fwd returns the slice of records with From == u.
func (s *Store) Fwd(u uint32) []Record {
	if u+1 >= uint32(len(s.FwdOffsets)) {
		return nil
	}
	return s.Records[s.FwdOffsets[u]:s.FwdOffsets[u+1]]
}

// Bwd returns the slice of records with To == v.
func (s *Store) Bwd(v uint32) []Record {
	if v+1 >= uint32(len(s.BwdOffsets)) {
		return nil
	}
	start, end := s.BwdOffsets[v], s.BwdOffsets[v+1]
	out := make([]Record, 0, end-start)
	for _, idx := range s.BwdIndices[start:end] {
		out = append(out, s.Records[idx])
	}
	return out
}

// Build constructs a CSR Store from a flat, unordered slice of records.
// maxAllowedEdgeID bounds From/To (0 disables the check).
func Build(records []Record, maxAllowedEdgeID uint32) (*Store, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	var maxEdgeID uint32
	for _, r := range records {
		if maxAllowedEdgeID > 0 && (r.From > maxAllowedEdgeID || r.To > maxAllowedEdgeID) {
			return nil, fmt.Errorf("%w: edge id exceeds limit %d", ErrInvalidInput, maxAllowedEdgeID)
		}
		if r.From > maxEdgeID {
			maxEdgeID = r.From
		}
		if r.To > maxEdgeID {
			maxEdgeID = r.To
		}
	}

	n := maxEdgeID + 2

	// Forward CSR: counting sort by From.
	fwdOffsets := make([]uint32, n)
	for _, r := range records {
		fwdOffsets[r.From+1]++
	}
	for i := uint32(1); i < n; i++ {
		fwdOffsets[i] += fwdOffsets[i-1]
	}

	sorted := make([]Record, len(records))
	cursor := make([]uint32, n)
	copy(cursor, fwdOffsets)
	for _, r := range records {
		sorted[cursor[r.From]] = r
		cursor[r.From]++
	}

	// Backward CSR: counting sort by To, indices into sorted.
	bwdOffsets := make([]uint32, n)
	for _, r := range sorted {
		bwdOffsets[r.To+1]++
	}
	for i := uint32(1); i < n; i++ {
		bwdOffsets[i] += bwdOffsets[i-1]
	}

	bwdIndices := make([]uint32, len(sorted))
	bwdCursor := make([]uint32, n)
	copy(bwdCursor, bwdOffsets)
	for i, r := range sorted {
		bwdIndices[bwdCursor[r.To]] = uint32(i)
		bwdCursor[r.To]++
	}

	lookup := make(map[uint64]uint32, len(sorted))
	for i, r := range sorted {
		key := pairKey(r.From, r.To)
		if _, exists := lookup[key]; !exists {
			lookup[key] = uint32(i)
		}
	}

	return &Store{
		Records:    sorted,
		FwdOffsets: fwdOffsets,
		BwdOffsets: bwdOffsets,
		BwdIndices: bwdIndices,
		MaxEdgeID:  maxEdgeID,
		lookup:     lookup,
	}, nil
}

// ValidateCSR checks the structural invariants of a built store.
func ValidateCSR(s *Store) error {
	n := s.MaxEdgeID + 2
	if uint32(len(s.FwdOffsets)) != n {
		return fmt.Errorf("FwdOffsets length %d != MaxEdgeID+2 %d", len(s.FwdOffsets), n)
	}
	if uint32(len(s.BwdOffsets)) != n {
		return fmt.Errorf("BwdOffsets length %d != MaxEdgeID+2 %d", len(s.BwdOffsets), n)
	}
	if uint32(len(s.BwdIndices)) != uint32(len(s.Records)) {
		return fmt.Errorf("BwdIndices length %d != record count %d", len(s.BwdIndices), len(s.Records))
	}
	for i := uint32(1); i < n; i++ {
		if s.FwdOffsets[i] < s.FwdOffsets[i-1] {
			return fmt.Errorf("FwdOffsets not monotonic at %d", i)
		}
		if s.BwdOffsets[i] < s.BwdOffsets[i-1] {
			return fmt.Errorf("BwdOffsets not monotonic at %d", i)
		}
	}
	if s.FwdOffsets[n-1] != uint32(len(s.Records)) {
		return fmt.Errorf("FwdOffsets last entry %d != record count %d", s.FwdOffsets[n-1], len(s.Records))
	}
	for u := uint32(0); u < n-1; u++ {
		for _, r := range s.Records[s.FwdOffsets[u]:s.FwdOffsets[u+1]] {
			if r.From != u {
				return fmt.Errorf("record in slot %d has From=%d", u, r.From)
			}
		}
	}
	for v := uint32(0); v < n-1; v++ {
		for _, idx := range s.BwdIndices[s.BwdOffsets[v]:s.BwdOffsets[v+1]] {
			if s.Records[idx].To != v {
				return fmt.Errorf("backward index in slot %d refers to record with To=%d", v, s.Records[idx].To)
			}
		}
	}
	return nil
}
