package query

import (
	"math"

	"h3router/pkg/edgemeta"
	"h3router/pkg/shortcut"
)

// Classic runs the classic bidirectional search: forward relaxes only
// inside==+1 shortcuts, backward relaxes only inside in {-1,0}.
func Classic(store *shortcut.Store, meta *edgemeta.Store, s, t uint32) (Result, error) {
	if s == t {
		return sameEdgeResult(meta, s)
	}
	if err := requireEdges(meta, s, t); err != nil {
		return Result{}, err
	}

	tCost, _ := edgeCost(meta, t)
	st := newState(store.MaxEdgeID)

	st.relaxFwd(s, 0)
	st.fwdPQ.Push(s, 0, 0)
	st.relaxBwd(t, tCost)
	st.bwdPQ.Push(t, tCost, 0)

	best := math.Inf(1)
	meeting := noEdge

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
				nd := item.dist + float64(rec.Cost)
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
			nd := item.dist + float64(rec.Cost)
			if st.relaxBwd(rec.From, nd) {
				st.predBwd[rec.From] = item.edge
				st.bwdPQ.Push(rec.From, nd, 0)
			}
		}
	}

	if meeting == noEdge {
		return Result{}, ErrNoPath
	}
	return Result{Path: st.reconstructBidir(meeting), Cost: best}, nil
}
