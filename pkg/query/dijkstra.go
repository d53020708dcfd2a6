package query

import (
	"math"

	"h3router/pkg/edgemeta"
	"h3router/pkg/shortcut"
)

// Dijkstra runs a forward-only, unfiltered search used as the
// reference implementation the other algorithms are checked against.
// Reported distance is best_dist + cost(target).
func Dijkstra(store *shortcut.Store, meta *edgemeta.Store, s, t uint32) (Result, error) {
	if s == t {
		return sameEdgeResult(meta, s)
	}
	if err := requireEdges(meta, s, t); err != nil {
		return Result{}, err
	}

	n := store.MaxEdgeID + 1
	dist := make([]float64, n)
	pred := make([]uint32, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		pred[i] = noEdge
	}
	dist[s] = 0

	var pq minHeap
	pq.Push(s, 0, 0)

	tCost, _ := edgeCost(meta, t)

	for pq.Len() > 0 {
		item := pq.Pop()
		if item.dist > dist[item.edge] {
			continue
		}
		if item.edge == t {
			path := reconstructForward(pred, t)
			return Result{Path: path, Cost: item.dist + tCost}, nil
		}
		for _, rec := range store.Fwd(item.edge) {
			nd := item.dist + float64(rec.Cost)
			if nd < dist[rec.To] {
				dist[rec.To] = nd
				pred[rec.To] = item.edge
				pq.Push(rec.To, nd, 0)
			}
		}
	}

	return Result{}, ErrNoPath
}

func reconstructForward(pred []uint32, target uint32) []uint32 {
	var chain []uint32
	for e := target; e != noEdge; e = pred[e] {
		chain = append(chain, e)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
