// Package h3cell isolates the H3 hexagonal-cell primitives the shortcut
// graph is built on, so the search core never touches the underlying H3
// library directly.
package h3cell

import (
	"errors"

	"github.com/uber/h3-go/v4"
)

// ErrInvalidArg is returned for out-of-range resolutions or malformed
// coordinates.
var ErrInvalidArg = errors.New("h3cell: invalid argument")

// Cell is an H3 index. The zero value means "none".
type Cell uint64

const None Cell = 0

// Resolution returns the resolution of cell, or -1 for the zero cell.
func Resolution(cell Cell) int32 {
	if cell == None {
		return -1
	}
	return int32(h3.Cell(cell).Resolution())
}

// Parent returns the ancestor of cell at targetRes. Returns cell
// unchanged when targetRes is at or finer than cell's own resolution.
// Invalid cells or resolutions return 0.
func Parent(cell Cell, targetRes int32) Cell {
	if cell == None || targetRes < 0 || targetRes > 15 {
		return None
	}
	cur := Resolution(cell)
	if targetRes >= cur {
		return cell
	}
	parent, err := h3.Cell(cell).Parent(int(targetRes))
	if err != nil {
		return None
	}
	return Cell(parent)
}

// LCA returns the coarsest common ancestor of c1 and c2, or 0 if none
// exists (including when either input is 0).
func LCA(c1, c2 Cell) Cell {
	if c1 == None || c2 == None {
		return None
	}
	r1, r2 := Resolution(c1), Resolution(c2)
	res := min(r1, r2)
	a, b := c1, c2
	for res >= 0 {
		pa := Parent(a, res)
		pb := Parent(b, res)
		if pa != None && pa == pb {
			return pa
		}
		res--
	}
	return None
}

// LatLngToCell indexes a lat/lng point at the given resolution.
func LatLngToCell(lat, lng float64, res int32) (Cell, error) {
	if res < 0 || res > 15 {
		return None, ErrInvalidArg
	}
	latLng := h3.NewLatLng(lat, lng)
	cell, err := latLng.Cell(int(res))
	if err != nil {
		return None, ErrInvalidArg
	}
	return Cell(cell), nil
}

// GridRing returns the cells exactly at grid distance k from center.
// k=0 returns {center}.
func GridRing(center Cell, k int) ([]Cell, error) {
	if center == None {
		return nil, ErrInvalidArg
	}
	if k == 0 {
		return []Cell{center}, nil
	}
	outer, err := h3.Cell(center).GridDisk(k)
	if err != nil {
		return nil, err
	}
	if k == 1 {
		ring := make([]Cell, 0, len(outer)-1)
		for _, c := range outer {
			if h3.Cell(c) != h3.Cell(center) {
				ring = append(ring, Cell(c))
			}
		}
		return ring, nil
	}
	inner, err := h3.Cell(center).GridDisk(k - 1)
	if err != nil {
		return nil, err
	}
	seen := make(map[h3.Cell]struct{}, len(inner))
	for _, c := range inner {
		seen[c] = struct{}{}
	}
	ring := make([]Cell, 0, len(outer)-len(inner))
	for _, c := range outer {
		if _, ok := seen[c]; !ok {
			ring = append(ring, Cell(c))
		}
	}
	return ring, nil
}

// LatLng is a (lat, lon) pair in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// CellBoundary returns the closed polygon boundary of cell, first vertex
// repeated at the end.
func CellBoundary(cell Cell) ([]LatLng, error) {
	if cell == None {
		return nil, ErrInvalidArg
	}
	boundary, err := h3.Cell(cell).Boundary()
	if err != nil {
		return nil, err
	}
	if len(boundary) == 0 {
		return nil, ErrInvalidArg
	}
	out := make([]LatLng, 0, len(boundary)+1)
	for _, v := range boundary {
		out = append(out, LatLng{Lat: v.Lat, Lng: v.Lng})
	}
	out = append(out, out[0])
	return out, nil
}
