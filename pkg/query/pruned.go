package query

import (
	"math"

	"h3router/pkg/edgemeta"
	"h3router/pkg/shortcut"
)

// Pruned runs the resolution-pruned bidirectional search: each heap
// entry carries the cell resolution of its edge, and expansion refuses
// to leave the high cell's relevant hierarchy levels.
func Pruned(store *shortcut.Store, meta *edgemeta.Store, s, t uint32) (Result, error) {
	if s == t {
		return sameEdgeResult(meta, s)
	}
	if err := requireEdges(meta, s, t); err != nil {
		return Result{}, err
	}

	high := ComputeHighCell(meta, s, t)
	tCost, _ := edgeCost(meta, t)
	st := newState(store.MaxEdgeID)

	sRes := cellRes(meta, s)
	tRes := cellRes(meta, t)

	st.relaxFwd(s, 0)
	st.fwdPQ.Push(s, 0, sRes)
	st.relaxBwd(t, tCost)
	st.bwdPQ.Push(t, tCost, tRes)

	best := math.Inf(1)
	meeting := noEdge
	minArrivalFwd := math.Inf(1)
	minArrivalBwd := math.Inf(1)

	for st.fwdPQ.Len() > 0 || st.bwdPQ.Len() > 0 {
		if !math.IsInf(best, 1) && st.fwdPQ.PeekDist()+minArrivalBwd >= best && st.bwdPQ.PeekDist()+minArrivalFwd >= best {
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

			if item.res < high.Res {
				continue // out of the useful hierarchy zone; don't expand further
			}
			if item.res == high.Res && item.dist < minArrivalFwd {
				minArrivalFwd = item.dist
			}

			for _, rec := range store.Fwd(item.edge) {
				if rec.Inside() != shortcut.InsideUpward {
					continue
				}
				nd := item.dist + float64(rec.Cost)
				if st.relaxFwd(rec.To, nd) {
					st.predFwd[rec.To] = item.edge
					st.fwdPQ.Push(rec.To, nd, cellRes(meta, rec.To))
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

		uRes := item.res
		check := uRes >= high.Res
		if uRes == high.Res && item.dist < minArrivalBwd {
			minArrivalBwd = item.dist
		}

		for _, rec := range store.Bwd(item.edge) {
			switch rec.Inside() {
			case shortcut.InsideDownward:
				if !check {
					continue
				}
			case shortcut.InsideLateral:
				if uRes > high.Res {
					continue
				}
			case shortcut.InsideBase:
				if check {
					continue
				}
			default:
				continue
			}
			nd := item.dist + float64(rec.Cost)
			if st.relaxBwd(rec.From, nd) {
				st.predBwd[rec.From] = item.edge
				st.bwdPQ.Push(rec.From, nd, cellRes(meta, rec.From))
			}
		}
	}

	if meeting == noEdge {
		return Result{}, ErrNoPath
	}
	return Result{Path: st.reconstructBidir(meeting), Cost: best}, nil
}
