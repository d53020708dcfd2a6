package edgemeta

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
)

// LoadDuckDB pulls edge metadata from the edges table of an embedded
// DuckDB file in a single query.
func LoadDuckDB(dbPath string) (*Store, error) {
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open duckdb: %v", ErrParse, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, from_cell, to_cell, lca_res, length, cost, geometry FROM edges`)
	if err != nil {
		return nil, fmt.Errorf("%w: query edges: %v", ErrParse, err)
	}
	defer rows.Close()

	store := NewStore(0)
	for rows.Next() {
		var id uint32
		var fromCell, toCell uint64
		var lcaRes int32
		var length, cost float64
		var geom sql.NullString
		if err := rows.Scan(&id, &fromCell, &toCell, &lcaRes, &length, &cost, &geom); err != nil {
			return nil, fmt.Errorf("%w: scan edge row: %v", ErrParse, err)
		}
		var points []Point
		if geom.Valid {
			points = parseLineString(geom.String)
		}
		store.Put(id, Meta{
			FromCell: fromCell,
			ToCell:   toCell,
			LCARes:   lcaRes,
			Length:   length,
			Cost:     cost,
			Geometry: points,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate edges: %v", ErrParse, err)
	}
	if store.Len() == 0 {
		return nil, fmt.Errorf("%w: zero edges loaded", ErrParse)
	}
	return store, nil
}
