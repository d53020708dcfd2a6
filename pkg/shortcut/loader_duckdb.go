package shortcut

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
)

// LoadDuckDB reads the shortcuts table of an embedded DuckDB file and
// builds a Store from it, for datasets published as a single analytic
// database file instead of columnar shards.
func LoadDuckDB(dbPath string, maxAllowedEdgeID uint32) (*Store, error) {
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open duckdb: %v", ErrSchemaMismatch, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT from_edge, to_edge, cost, via_edge, cell, inside FROM shortcuts`)
	if err != nil {
		return nil, fmt.Errorf("%w: query shortcuts: %v", ErrSchemaMismatch, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var from, to, viaEdge uint32
		var cost float64
		var cell int64
		var inside int8
		if err := rows.Scan(&from, &to, &cost, &viaEdge, &cell, &inside); err != nil {
			return nil, fmt.Errorf("%w: scan shortcut row: %v", ErrSchemaMismatch, err)
		}
		records = append(records, NewRecord(from, to, float32(cost), uint64(cell), viaEdge, inside))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate shortcuts: %v", ErrSchemaMismatch, err)
	}

	return Build(records, maxAllowedEdgeID)
}
