package dataset

import (
	"fmt"

	"h3router/pkg/edgemeta"
	"h3router/pkg/shortcut"
	"h3router/pkg/spatial"
)

// defaultH3IndexRes is the H3 resolution the spatial bucket index
// groups edges at when no resolution override is given.
const defaultH3IndexRes = 9

// LoadOptions selects one of the two source shapes accepted by
// /load_dataset: a single embedded DuckDB file, or a pair of columnar/
// delimited files.
type LoadOptions struct {
	Name          string
	DBPath        string // non-empty selects the DuckDB source
	ShortcutsPath string
	EdgesPath     string
	InfoPath      string // optional, files-mode sidecar for Dataset.Info
	IndexType     string // "h3" (default) or "rtree"
	H3IndexRes    int32  // 0 selects defaultH3IndexRes
}

// Load builds a Dataset from opts, constructing every index before
// returning so the result is ready to Publish.
func Load(opts LoadOptions) (*Dataset, error) {
	var (
		shortcuts *shortcut.Store
		meta      *edgemeta.Store
		source    string
		info      map[string]string
		err       error
	)

	switch {
	case opts.DBPath != "":
		source = "duckdb"
		meta, err = edgemeta.LoadDuckDB(opts.DBPath)
		if err != nil {
			return nil, fmt.Errorf("load edge metadata: %w", err)
		}
		shortcuts, err = shortcut.LoadDuckDB(opts.DBPath, meta.MaxID())
		if err != nil {
			return nil, fmt.Errorf("load shortcuts: %w", err)
		}
		info, err = loadDatasetInfoDuckDB(opts.DBPath)
		if err != nil {
			return nil, fmt.Errorf("load dataset info: %w", err)
		}
	case opts.ShortcutsPath != "" && opts.EdgesPath != "":
		source = "files"
		meta, _, err = edgemeta.LoadDelimited(opts.EdgesPath)
		if err != nil {
			return nil, fmt.Errorf("load edge metadata: %w", err)
		}
		shortcuts, err = shortcut.LoadColumnar(opts.ShortcutsPath, meta.MaxID())
		if err != nil {
			return nil, fmt.Errorf("load shortcuts: %w", err)
		}
		if opts.InfoPath != "" {
			info, err = loadDatasetInfoFile(opts.InfoPath)
			if err != nil {
				return nil, fmt.Errorf("load dataset info: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("load: must supply db_path or (shortcuts_path, edges_path)")
	}
	if info == nil {
		info = map[string]string{}
	}

	indexType := opts.IndexType
	if indexType == "" {
		indexType = "h3"
	}

	var index spatial.Index
	switch indexType {
	case "h3":
		res := opts.H3IndexRes
		if res == 0 {
			res = defaultH3IndexRes
		}
		index = spatial.BuildH3Index(meta, meta.MaxID(), res)
	case "rtree":
		index = spatial.BuildRTreeIndex(meta, meta.MaxID())
	default:
		return nil, fmt.Errorf("load: unknown index type %q", indexType)
	}

	return &Dataset{
		Name:      opts.Name,
		Source:    source,
		Shortcuts: shortcuts,
		Meta:      meta,
		Index:     index,
		IndexType: indexType,
		Info:      info,
	}, nil
}
