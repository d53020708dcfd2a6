package dataset

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// loadDatasetInfoDuckDB reads the key/value dataset_info table of an
// embedded DuckDB file, the convention /boundary and similar
// out-of-band metadata are published through. The table is optional:
// a dataset built before this table existed, or one that simply has
// nothing to publish, loads with an empty Info map rather than
// failing.
func loadDatasetInfoDuckDB(dbPath string) (map[string]string, error) {
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT key, value FROM dataset_info`)
	if err != nil {
		// No dataset_info table is not fatal to the load.
		return map[string]string{}, nil
	}
	defer rows.Close()

	info := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan dataset_info row: %w", err)
		}
		info[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dataset_info: %w", err)
	}
	return info, nil
}

// loadDatasetInfoFile reads the files-mode sidecar convention for the
// same key/value data: a header-driven "key,value" CSV, parallel to
// edgemeta's delimited edge format. Large values (an embedded GeoJSON
// boundary, for instance) are accepted as a single quoted field.
func loadDatasetInfoFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset info file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset info header: %w", err)
	}
	keyCol, valueCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "key":
			keyCol = i
		case "value":
			valueCol = i
		}
	}
	if keyCol < 0 || valueCol < 0 {
		return nil, fmt.Errorf("dataset info file missing key/value columns in header %v", header)
	}

	info := map[string]string{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil || keyCol >= len(row) || valueCol >= len(row) {
			continue
		}
		info[row[keyCol]] = row[valueCol]
	}
	return info, nil
}
