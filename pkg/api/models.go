package api

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status         string   `json:"status"`
	DatasetsLoaded []string `json:"datasets_loaded"`
}

// LoadDatasetRequest is the JSON body for POST /load_dataset. Both
// `dataset` and `name` are accepted for the dataset identifier.
type LoadDatasetRequest struct {
	Dataset       string `json:"dataset"`
	Name          string `json:"name"`
	DBPath        string `json:"db_path"`
	ShortcutsPath string `json:"shortcuts_path"`
	EdgesPath     string `json:"edges_path"`
	InfoPath      string `json:"info_path"`
}

func (r LoadDatasetRequest) name() string {
	if r.Dataset != "" {
		return r.Dataset
	}
	return r.Name
}

// LoadDatasetResponse is the JSON response for POST /load_dataset.
type LoadDatasetResponse struct {
	Success bool   `json:"success"`
	Dataset string `json:"dataset"`
	Source  string `json:"source,omitempty"`
}

// UnloadDatasetRequest is the JSON body for POST /unload_dataset.
type UnloadDatasetRequest struct {
	Dataset string `json:"dataset"`
	Name    string `json:"name"`
}

func (r UnloadDatasetRequest) name() string {
	if r.Dataset != "" {
		return r.Dataset
	}
	return r.Name
}

// UnloadDatasetResponse is the JSON response for POST /unload_dataset.
type UnloadDatasetResponse struct {
	Success   bool   `json:"success"`
	Dataset   string `json:"dataset"`
	WasLoaded bool   `json:"was_loaded"`
}

// NearestEdgeJSON is one entry of NearestEdgesResponse.Edges.
type NearestEdgeJSON struct {
	EdgeID   uint32  `json:"edge_id"`
	Distance float64 `json:"distance"`
	Cost     float64 `json:"cost"`
	Length   float64 `json:"length"`
	ToCell   uint64  `json:"to_cell"`
	FromCell uint64  `json:"from_cell"`
	LCARes   int32   `json:"lca_res"`
}

// NearestEdgesResponse is the JSON response for GET|POST /nearest_edges.
type NearestEdgesResponse struct {
	Dataset   string            `json:"dataset"`
	Lat       float64           `json:"lat"`
	Lon       float64           `json:"lon"`
	K         int               `json:"k"`
	Edges     []NearestEdgeJSON `json:"edges"`
	IndexType string            `json:"index_type"`
}

// CellInfo describes one H3 cell in a route's debug payload.
type CellInfo struct {
	ID       uint64       `json:"id"`
	Res      int32        `json:"res"`
	Boundary [][2]float64 `json:"boundary"`
}

// GeoJSONGeometry is a GeoJSON LineString geometry.
type GeoJSONGeometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// GeoJSONFeature is a GeoJSON Feature wrapping a LineString geometry.
type GeoJSONFeature struct {
	Type       string                 `json:"type"`
	Geometry   GeoJSONGeometry        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// RouteInfo is the `route` field of a route response.
type RouteInfo struct {
	Distance       float64         `json:"distance"`
	DistanceMeters float64         `json:"distance_meters"`
	RuntimeMS      float64         `json:"runtime_ms"`
	Path           []uint32        `json:"path"`
	ShortcutPath   []uint32        `json:"shortcut_path"`
	GeoJSON        *GeoJSONFeature `json:"geojson"`
}

// TimingBreakdown is the `timing_breakdown` field of a route response.
type TimingBreakdown struct {
	FindNearestUS float64 `json:"find_nearest_us"`
	SearchUS      float64 `json:"search_us"`
	ExpandUS      float64 `json:"expand_us"`
	GeoJSONUS     float64 `json:"geojson_us"`
	TotalMS       float64 `json:"total_ms"`
}

// RouteDebugCells is the `debug.cells` field of a route response.
type RouteDebugCells struct {
	Source CellInfo `json:"source"`
	Target CellInfo `json:"target"`
	High   CellInfo `json:"high"`
}

// RouteDebug is the `debug` field of a route response.
type RouteDebug struct {
	Cells RouteDebugCells `json:"cells"`
}

// RouteResponse is the JSON response for GET|POST /route and
// POST /route_by_edge.
type RouteResponse struct {
	Success         bool            `json:"success"`
	Dataset         string          `json:"dataset"`
	Error           string          `json:"error,omitempty"`
	Route           *RouteInfo      `json:"route,omitempty"`
	TimingBreakdown TimingBreakdown `json:"timing_breakdown"`
	Debug           RouteDebug      `json:"debug"`
}

// RouteByEdgeRequest is the JSON body for POST /route_by_edge.
type RouteByEdgeRequest struct {
	Dataset    string `json:"dataset"`
	SourceEdge uint32 `json:"source_edge"`
	TargetEdge uint32 `json:"target_edge"`
	Algorithm  string `json:"algorithm"`
	Expand     bool   `json:"expand"`

	// PenalizedEdges and PenaltyFactor only apply to algorithm=classic_alt.
	PenalizedEdges []uint32 `json:"penalized_edges,omitempty"`
	PenaltyFactor  float64  `json:"penalty_factor,omitempty"`
}
