package edgemeta

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrParse wraps malformed-input failures from the delimited loader.
var ErrParse = errors.New("edgemeta: parse error")

// column name aliases, historical names accepted alongside the current ones.
var (
	idAliases       = []string{"id", "edge_index"}
	fromCellAliases = []string{"from_cell", "incoming_cell"}
	toCellAliases   = []string{"to_cell", "outgoing_cell"}
)

type columns struct {
	id, fromCell, toCell, lcaRes, length, cost, geometry int // -1 if absent
}

func resolveColumn(header []string, names []string) int {
	for i, h := range header {
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return -1
}

func resolveColumns(header []string) (columns, error) {
	c := columns{
		id:       resolveColumn(header, idAliases),
		fromCell: resolveColumn(header, fromCellAliases),
		toCell:   resolveColumn(header, toCellAliases),
		lcaRes:   resolveColumn(header, []string{"lca_res"}),
		length:   resolveColumn(header, []string{"length"}),
		cost:     resolveColumn(header, []string{"cost"}),
		geometry: resolveColumn(header, []string{"geometry"}),
	}
	if c.id < 0 || c.fromCell < 0 || c.toCell < 0 || c.lcaRes < 0 || c.length < 0 || c.cost < 0 {
		return columns{}, fmt.Errorf("%w: missing required column in header %v", ErrParse, header)
	}
	return c, nil
}

// LoadDelimited reads edge metadata from a header-driven delimited text
// file. Geometry fields may contain commas inside parentheses; quote
// handling is delegated to encoding/csv.
func LoadDelimited(path string) (*Store, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer f.Close()
	return loadDelimitedReader(f)
}

func loadDelimitedReader(r io.Reader) (*Store, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read header: %v", ErrParse, err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, 0, err
	}

	store := NewStore(0)
	var maxID uint32
	var skipped int
	rowCount := 0

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		rowCount++

		m, id, ok := parseRow(row, cols)
		if !ok {
			skipped++
			continue
		}
		store.Put(id, m)
		if id > maxID {
			maxID = id
		}
	}

	if store.Len() == 0 {
		return nil, skipped, fmt.Errorf("%w: zero rows parsed from %d input rows", ErrParse, rowCount)
	}
	return store, skipped, nil
}

func parseRow(row []string, cols columns) (Meta, uint32, bool) {
	if cols.id >= len(row) {
		return Meta{}, 0, false
	}
	id64, err := strconv.ParseUint(strings.TrimSpace(row[cols.id]), 10, 32)
	if err != nil {
		return Meta{}, 0, false
	}

	fromCell, _ := strconv.ParseUint(strings.TrimSpace(field(row, cols.fromCell)), 10, 64)
	toCell, _ := strconv.ParseUint(strings.TrimSpace(field(row, cols.toCell)), 10, 64)

	lcaRes := int32(-1)
	if v, err := strconv.ParseInt(strings.TrimSpace(field(row, cols.lcaRes)), 10, 32); err == nil {
		lcaRes = int32(v)
	}

	length, err := strconv.ParseFloat(strings.TrimSpace(field(row, cols.length)), 64)
	if err != nil {
		return Meta{}, 0, false
	}
	cost, err := strconv.ParseFloat(strings.TrimSpace(field(row, cols.cost)), 64)
	if err != nil {
		return Meta{}, 0, false
	}

	var geom []Point
	if cols.geometry >= 0 {
		geom = parseLineString(field(row, cols.geometry))
	}

	return Meta{
		FromCell: fromCell,
		ToCell:   toCell,
		LCARes:   lcaRes,
		Length:   length,
		Cost:     cost,
		Geometry: geom,
	}, uint32(id64), true
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// WriteDelimited writes a Store out in the same header-driven CSV shape
// LoadDelimited reads, for edge IDs in [0, maxID].
func WriteDelimited(path string, store *Store, maxID uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "from_cell", "to_cell", "lca_res", "length", "cost", "geometry"}); err != nil {
		return err
	}
	for id := uint32(0); id <= maxID; id++ {
		m, ok := store.Get(id)
		if !ok {
			continue
		}
		row := []string{
			strconv.FormatUint(uint64(id), 10),
			strconv.FormatUint(m.FromCell, 10),
			strconv.FormatUint(m.ToCell, 10),
			strconv.FormatInt(int64(m.LCARes), 10),
			strconv.FormatFloat(m.Length, 'f', -1, 64),
			strconv.FormatFloat(m.Cost, 'f', -1, 64),
			formatLineString(m.Geometry),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatLineString(pts []Point) string {
	if len(pts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("LINESTRING(")
	for i, p := range pts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(p.Lon, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p.Lat, 'f', -1, 64))
	}
	b.WriteByte(')')
	return b.String()
}

// parseLineString decodes "LINESTRING(lon lat, lon lat, ...)" into a
// sequence of points. Input without a parenthesised body yields nil;
// points that do not parse as two numbers are skipped.
func parseLineString(wkt string) []Point {
	open := strings.IndexByte(wkt, '(')
	closeIdx := strings.LastIndexByte(wkt, ')')
	if open < 0 || closeIdx < 0 || closeIdx <= open {
		return nil
	}
	inner := wkt[open+1 : closeIdx]
	parts := strings.Split(inner, ",")
	points := make([]Point, 0, len(parts))
	for _, part := range parts {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) != 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(fields[0], 64)
		lat, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		points = append(points, Point{Lon: lon, Lat: lat})
	}
	return points
}
