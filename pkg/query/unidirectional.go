package query

import (
	"math"

	"h3router/pkg/edgemeta"
	"h3router/pkg/shortcut"
)

// phase values for the unidirectional search's explicit ascend/peak/
// descend state machine.
const (
	phaseAscend0 int8 = 0
	phaseAscend1 int8 = 1
	phasePeak    int8 = 2
	phaseDescend int8 = 3
)

// transition implements the unidirectional phase machine's state
// table. Any transition not covered here is forbidden.
func transition(phase int8, uRes, highRes int32, inside int8) (int8, bool) {
	switch phase {
	case phaseAscend0, phaseAscend1:
		if inside == shortcut.InsideUpward {
			if uRes > highRes {
				return phaseAscend1, true
			}
			return phasePeak, true
		}
		return phasePeak, true
	case phasePeak:
		if inside != shortcut.InsideUpward {
			return phaseDescend, true
		}
	case phaseDescend:
		if inside == shortcut.InsideDownward {
			return phaseDescend, true
		}
	}
	return 0, false
}

const numPhases = 4

func phaseIndex(edge uint32, phase int8) uint64 {
	return uint64(edge)*numPhases + uint64(phase)
}

// Unidirectional runs the forward-only phase-machine search. Reported
// distance includes the target edge's own cost.
func Unidirectional(store *shortcut.Store, meta *edgemeta.Store, s, t uint32) (Result, error) {
	if s == t {
		return sameEdgeResult(meta, s)
	}
	if err := requireEdges(meta, s, t); err != nil {
		return Result{}, err
	}

	high := ComputeHighCell(meta, s, t)
	n := (uint64(store.MaxEdgeID) + 1) * numPhases
	dist := make([]float64, n)
	predEdge := make([]uint32, n)
	predPhase := make([]int8, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		predEdge[i] = noEdge
	}

	var pq minHeap
	startIdx := phaseIndex(s, phaseAscend0)
	dist[startIdx] = 0
	pq.Push(s, 0, int32(phaseAscend0))

	tCost, _ := edgeCost(meta, t)

	for pq.Len() > 0 {
		item := pq.Pop()
		phase := int8(item.res)
		idx := phaseIndex(item.edge, phase)
		if item.dist > dist[idx] {
			continue
		}

		if item.edge == t {
			path := reconstructPhasePath(predEdge, predPhase, item.edge, phase)
			return Result{Path: path, Cost: item.dist + tCost}, nil
		}

		uRes := cellRes(meta, item.edge)
		for _, rec := range store.Fwd(item.edge) {
			newPhase, ok := transition(phase, uRes, high.Res, rec.Inside())
			if !ok {
				continue
			}
			nd := item.dist + float64(rec.Cost)
			nidx := phaseIndex(rec.To, newPhase)
			if nd < dist[nidx] {
				dist[nidx] = nd
				predEdge[nidx] = item.edge
				predPhase[nidx] = phase
				pq.Push(rec.To, nd, int32(newPhase))
			}
		}
	}

	return Result{}, ErrNoPath
}

func reconstructPhasePath(predEdge []uint32, predPhase []int8, edge uint32, phase int8) []uint32 {
	var chain []uint32
	for {
		chain = append(chain, edge)
		idx := phaseIndex(edge, phase)
		pe := predEdge[idx]
		if pe == noEdge {
			break
		}
		pp := predPhase[idx]
		edge, phase = pe, pp
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
