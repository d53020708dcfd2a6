package query

import "h3router/pkg/h3cell"

func cellResolutionOf(cell uint64) int32 {
	return h3cell.Resolution(h3cell.Cell(cell))
}

func parentAt(cell uint64, res int32) uint64 {
	return uint64(h3cell.Parent(h3cell.Cell(cell), res))
}

func lcaOf(a, b uint64) (cell uint64, res int32) {
	lca := h3cell.LCA(h3cell.Cell(a), h3cell.Cell(b))
	return uint64(lca), h3cell.Resolution(lca)
}
