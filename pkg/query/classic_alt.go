package query

import (
	"math"

	"h3router/pkg/edgemeta"
	"h3router/pkg/shortcut"
)

// ClassicAlt runs Classic's frontier rules but multiplies a relaxed
// shortcut's cost by penaltyFactor when its to-edge (forward), from-edge
// (backward), or non-sentinel via_edge lies in penalized. Source and
// target are exempted regardless of membership. The returned cost is
// the true, unpenalized cost of the returned path, recomputed by
// walking its edges.
func ClassicAlt(store *shortcut.Store, meta *edgemeta.Store, s, t uint32, penalized map[uint32]bool, penaltyFactor float64) (Result, error) {
	if s == t {
		return sameEdgeResult(meta, s)
	}
	if err := requireEdges(meta, s, t); err != nil {
		return Result{}, err
	}

	// Exempt source and target without mutating the caller's set.
	if penalized[s] || penalized[t] {
		clone := make(map[uint32]bool, len(penalized))
		for k, v := range penalized {
			clone[k] = v
		}
		delete(clone, s)
		delete(clone, t)
		penalized = clone
	}

	tCost, _ := edgeCost(meta, t)
	st := newState(store.MaxEdgeID)

	st.relaxFwd(s, 0)
	st.fwdPQ.Push(s, 0, 0)
	st.relaxBwd(t, tCost)
	st.bwdPQ.Push(t, tCost, 0)

	best := math.Inf(1)
	meeting := noEdge

	penalty := func(rec shortcut.Record, other uint32) float64 {
		cost := float64(rec.Cost)
		if penalized[other] || (rec.ViaEdge() != shortcut.NoViaEdge && penalized[rec.ViaEdge()]) {
			cost *= penaltyFactor
		}
		return cost
	}

	for st.fwdPQ.Len() > 0 || st.bwdPQ.Len() > 0 {
		if min(st.fwdPQ.PeekDist(), st.bwdPQ.PeekDist()) >= best {
			break
		}

		if st.fwdPQ.Len() > 0 && (st.bwdPQ.Len() == 0 || st.fwdPQ.PeekDist() <= st.bwdPQ.PeekDist()) {
			item := st.fwdPQ.Pop()
			if item.dist > st.distFwd[item.edge] {
				continue
			}
			if !math.IsInf(st.distBwd[item.edge], 1) {
				if total := item.dist + st.distBwd[item.edge]; total < best {
					best = total
					meeting = item.edge
				}
			}
			for _, rec := range store.Fwd(item.edge) {
				if rec.Inside() != shortcut.InsideUpward {
					continue
				}
				nd := item.dist + penalty(rec, rec.To)
				if st.relaxFwd(rec.To, nd) {
					st.predFwd[rec.To] = item.edge
					st.fwdPQ.Push(rec.To, nd, 0)
				}
			}
			continue
		}

		item := st.bwdPQ.Pop()
		if item.dist > st.distBwd[item.edge] {
			continue
		}
		if !math.IsInf(st.distFwd[item.edge], 1) {
			if total := item.dist + st.distFwd[item.edge]; total < best {
				best = total
				meeting = item.edge
			}
		}
		for _, rec := range store.Bwd(item.edge) {
			if rec.Inside() != shortcut.InsideDownward && rec.Inside() != shortcut.InsideLateral {
				continue
			}
			nd := item.dist + penalty(rec, rec.From)
			if st.relaxBwd(rec.From, nd) {
				st.predBwd[rec.From] = item.edge
				st.bwdPQ.Push(rec.From, nd, 0)
			}
		}
	}

	if meeting == noEdge {
		return Result{}, ErrNoPath
	}

	path := st.reconstructBidir(meeting)
	trueCost := recomputeTrueCost(store, path) + tCost
	return Result{Path: path, Cost: trueCost}, nil
}

// recomputeTrueCost sums the unpenalized record cost along consecutive
// edge pairs in path.
func recomputeTrueCost(store *shortcut.Store, path []uint32) float64 {
	var total float64
	for i := 0; i < len(path)-1; i++ {
		if rec, ok := store.Lookup(path[i], path[i+1]); ok {
			total += float64(rec.Cost)
		}
	}
	return total
}
