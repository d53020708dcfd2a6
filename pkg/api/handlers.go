package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"h3router/pkg/dataset"
	"h3router/pkg/edgemeta"
	"h3router/pkg/expand"
	"h3router/pkg/h3cell"
	"h3router/pkg/query"
	"h3router/pkg/shortcut"
)

const maxBodyBytes = 1 << 20

// Handlers holds the HTTP handlers and their dependency, the process's
// dataset registry.
type Handlers struct {
	registry *dataset.Registry
}

// NewHandlers creates handlers backed by reg.
func NewHandlers(reg *dataset.Registry) *Handlers {
	return &Handlers{registry: reg}
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:         "ok",
		DatasetsLoaded: h.registry.List(),
	})
}

// HandleLoadDataset handles POST /load_dataset.
func (h *Handlers) HandleLoadDataset(w http.ResponseWriter, r *http.Request) {
	var req LoadDatasetRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "", "invalid request body")
		return
	}
	name := req.name()
	if name == "" {
		writeErrorResponse(w, http.StatusBadRequest, "", "missing dataset name")
		return
	}
	if req.DBPath == "" && (req.ShortcutsPath == "" || req.EdgesPath == "") {
		writeErrorResponse(w, http.StatusBadRequest, name, "must supply db_path or (shortcuts_path, edges_path)")
		return
	}

	ds, err := dataset.Load(dataset.LoadOptions{
		Name:          name,
		DBPath:        req.DBPath,
		ShortcutsPath: req.ShortcutsPath,
		EdgesPath:     req.EdgesPath,
		InfoPath:      req.InfoPath,
	})
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, name, err.Error())
		return
	}
	h.registry.Publish(ds)

	writeJSON(w, http.StatusOK, LoadDatasetResponse{Success: true, Dataset: name, Source: ds.Source})
}

// HandleUnloadDataset handles POST /unload_dataset.
func (h *Handlers) HandleUnloadDataset(w http.ResponseWriter, r *http.Request) {
	var req UnloadDatasetRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "", "invalid request body")
		return
	}
	name := req.name()
	if name == "" {
		writeErrorResponse(w, http.StatusBadRequest, "", "missing dataset name")
		return
	}

	wasLoaded := h.registry.Unload(name)
	writeJSON(w, http.StatusOK, UnloadDatasetResponse{Success: true, Dataset: name, WasLoaded: wasLoaded})
}

// HandleNearestEdges handles GET|POST /nearest_edges.
func (h *Handlers) HandleNearestEdges(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("dataset")
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	k, kErr := strconv.Atoi(q.Get("k"))
	if kErr != nil || k <= 0 {
		k = 1
	}
	if name == "" || latErr != nil || lonErr != nil || math.IsNaN(lat) || math.IsNaN(lon) {
		writeErrorResponse(w, http.StatusBadRequest, name, "missing or invalid dataset/lat/lon")
		return
	}

	ds, release, ok := h.registry.Pin(name)
	if !ok {
		writeErrorResponse(w, http.StatusServiceUnavailable, name, "dataset not loaded")
		return
	}
	defer release()

	candidates := ds.Index.FindNearestEdges(lat, lon, k, defaultSearchRadiusMeters)
	edges := make([]NearestEdgeJSON, 0, len(candidates))
	for _, c := range candidates {
		m, ok := ds.Meta.Get(c.EdgeID)
		if !ok {
			continue
		}
		edges = append(edges, NearestEdgeJSON{
			EdgeID:   c.EdgeID,
			Distance: c.DistanceMeters,
			Cost:     m.Cost,
			Length:   m.Length,
			ToCell:   m.ToCell,
			FromCell: m.FromCell,
			LCARes:   m.LCARes,
		})
	}

	writeJSON(w, http.StatusOK, NearestEdgesResponse{
		Dataset:   name,
		Lat:       lat,
		Lon:       lon,
		K:         k,
		Edges:     edges,
		IndexType: ds.IndexType,
	})
}

const defaultSearchRadiusMeters = 2000.0
const defaultNumCandidates = 5

// HandleRoute handles GET|POST /route: snaps start/end coordinates to
// edges via the dataset's spatial index, then runs the requested
// algorithm between them.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("dataset")
	startLat, e1 := strconv.ParseFloat(q.Get("start_lat"), 64)
	startLng, e2 := strconv.ParseFloat(q.Get("start_lng"), 64)
	endLat, e3 := strconv.ParseFloat(q.Get("end_lat"), 64)
	endLng, e4 := strconv.ParseFloat(q.Get("end_lng"), 64)
	if name == "" || e1 != nil || e2 != nil || e3 != nil || e4 != nil {
		writeErrorResponse(w, http.StatusBadRequest, name, "missing or invalid dataset/coordinates")
		return
	}

	mode := q.Get("mode")
	if mode == "" {
		mode = "one_to_one"
	}
	algorithm := q.Get("algorithm")
	expandPath := q.Get("expand") == "true" || q.Get("expand") == "1"

	numCandidates, err := strconv.Atoi(q.Get("num_candidates"))
	if err != nil || numCandidates <= 0 {
		numCandidates = defaultNumCandidates
	}
	searchRadius, err := strconv.ParseFloat(q.Get("search_radius"), 64)
	if err != nil || searchRadius <= 0 {
		searchRadius = defaultSearchRadiusMeters
	}

	ds, release, ok := h.registry.Pin(name)
	if !ok {
		writeErrorResponse(w, http.StatusServiceUnavailable, name, "dataset not loaded")
		return
	}
	defer release()

	start := time.Now()
	findNearestStart := time.Now()

	// knn/radius gather every candidate within reach at both ends and
	// hand the full sets to query.Multi, which picks the globally best
	// (source, target) pair; one_to_one/one_to_one_v2 snap each end to
	// its single nearest edge and run the requested single-pair
	// algorithm, as before.
	switch mode {
	case "knn", "radius":
		k := numCandidates
		if mode == "radius" {
			k = 0 // unbounded candidate count; radius alone limits the set
		}
		sources := candidateEdgeIDs(ds, startLat, startLng, k, searchRadius)
		targets := candidateEdgeIDs(ds, endLat, endLng, k, searchRadius)
		if len(sources) == 0 {
			writeQueryFailure(w, name, "no edge found near start point")
			return
		}
		if len(targets) == 0 {
			writeQueryFailure(w, name, "no edge found near end point")
			return
		}
		findNearestUS := float64(time.Since(findNearestStart).Microseconds())
		h.runMultiQuery(w, ds, name, sources, targets, expandPath, findNearestUS, start)
	default: // one_to_one, one_to_one_v2
		sourceEdge, ok := snapToEdge(ds, startLat, startLng, 1, searchRadius)
		if !ok {
			writeQueryFailure(w, name, "no edge found near start point")
			return
		}
		targetEdge, ok := snapToEdge(ds, endLat, endLng, 1, searchRadius)
		if !ok {
			writeQueryFailure(w, name, "no edge found near end point")
			return
		}
		findNearestUS := float64(time.Since(findNearestStart).Microseconds())
		h.runRouteQuery(w, ds, name, sourceEdge, targetEdge, algorithm, expandPath, algoOptions{}, findNearestUS, start)
	}
}

func snapToEdge(ds *dataset.Dataset, lat, lng float64, k int, radius float64) (uint32, bool) {
	candidates := ds.Index.FindNearestEdges(lat, lng, k, radius)
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[0].EdgeID, true
}

// candidateEdgeIDs returns every candidate edge FindNearestEdges
// finds, in order, for callers that search over the whole set rather
// than just the nearest.
func candidateEdgeIDs(ds *dataset.Dataset, lat, lng float64, k int, radius float64) []uint32 {
	candidates := ds.Index.FindNearestEdges(lat, lng, k, radius)
	ids := make([]uint32, len(candidates))
	for i, c := range candidates {
		ids[i] = c.EdgeID
	}
	return ids
}

// HandleRouteByEdge handles POST /route_by_edge.
func (h *Handlers) HandleRouteByEdge(w http.ResponseWriter, r *http.Request) {
	var req RouteByEdgeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "", "invalid request body")
		return
	}
	if req.Dataset == "" {
		writeErrorResponse(w, http.StatusBadRequest, "", "missing dataset")
		return
	}

	ds, release, ok := h.registry.Pin(req.Dataset)
	if !ok {
		writeErrorResponse(w, http.StatusServiceUnavailable, req.Dataset, "dataset not loaded")
		return
	}
	defer release()

	start := time.Now()
	opts := algoOptions{penaltyFactor: req.PenaltyFactor}
	if len(req.PenalizedEdges) > 0 {
		opts.penalized = make(map[uint32]bool, len(req.PenalizedEdges))
		for _, e := range req.PenalizedEdges {
			opts.penalized[e] = true
		}
	}
	h.runRouteQuery(w, ds, req.Dataset, req.SourceEdge, req.TargetEdge, req.Algorithm, req.Expand, opts, 0, start)
}

// algoOptions carries the extra parameters algorithm=classic_alt needs
// beyond the plain (source, target) pair every other algorithm takes.
type algoOptions struct {
	penalized     map[uint32]bool
	penaltyFactor float64
}

// runRouteQuery dispatches to the requested single-pair search
// algorithm and assembles the route response shared by /route
// (one_to_one/one_to_one_v2) and /route_by_edge.
func (h *Handlers) runRouteQuery(w http.ResponseWriter, ds *dataset.Dataset, name string, sourceEdge, targetEdge uint32, algorithm string, expandPath bool, opts algoOptions, findNearestUS float64, start time.Time) {
	searchStart := time.Now()
	result, err := runAlgorithm(algorithm, ds.Shortcuts, ds.Meta, sourceEdge, targetEdge, opts)
	searchUS := float64(time.Since(searchStart).Microseconds())
	h.writeRouteResult(w, ds, name, result, err, expandPath, findNearestUS, searchUS, start)
}

// runMultiQuery runs query.Multi over the full source/target candidate
// sets /route's knn and radius modes gather, then assembles the same
// response shape runRouteQuery does.
func (h *Handlers) runMultiQuery(w http.ResponseWriter, ds *dataset.Dataset, name string, sources, targets []uint32, expandPath bool, findNearestUS float64, start time.Time) {
	searchStart := time.Now()
	result, err := query.Multi(ds.Shortcuts, ds.Meta, sources, targets)
	searchUS := float64(time.Since(searchStart).Microseconds())
	h.writeRouteResult(w, ds, name, result, err, expandPath, findNearestUS, searchUS, start)
}

// writeRouteResult turns an already-computed query.Result into the
// route response JSON, deriving the source/target edges the debug
// cell info reports from the winning path's endpoints — valid whether
// that path came from a single (source, target) pair or from Multi's
// search over many candidate pairs.
func (h *Handlers) writeRouteResult(w http.ResponseWriter, ds *dataset.Dataset, name string, result query.Result, err error, expandPath bool, findNearestUS, searchUS float64, start time.Time) {
	if err != nil {
		if errors.Is(err, query.ErrEdgeNotFound) || errors.Is(err, query.ErrNoPath) {
			writeQueryFailure(w, name, err.Error())
			return
		}
		writeErrorResponse(w, http.StatusBadRequest, name, err.Error())
		return
	}

	var basePath []uint32
	expandUS := 0.0
	if expandPath {
		expandStart := time.Now()
		basePath = expand.Path(ds.Shortcuts, result.Path)
		expandUS = float64(time.Since(expandStart).Microseconds())
	}

	geojsonStart := time.Now()
	var feature *GeoJSONFeature
	if expandPath {
		feature = buildGeoJSON(ds.Meta, basePath)
	}
	geojsonUS := float64(time.Since(geojsonStart).Microseconds())

	distanceMeters := sumLength(ds.Meta, basePath)
	if distanceMeters == 0 {
		distanceMeters = result.Cost
	}

	sourceEdge, targetEdge := result.Path[0], result.Path[len(result.Path)-1]
	high := query.ComputeHighCell(ds.Meta, sourceEdge, targetEdge)
	sourceCell, targetCell := edgeCells(ds.Meta, sourceEdge, targetEdge)

	resp := RouteResponse{
		Success: true,
		Dataset: name,
		Route: &RouteInfo{
			Distance:       result.Cost,
			DistanceMeters: distanceMeters,
			RuntimeMS:      float64(time.Since(start).Microseconds()) / 1000.0,
			Path:           basePath,
			ShortcutPath:   result.Path,
			GeoJSON:        feature,
		},
		TimingBreakdown: TimingBreakdown{
			FindNearestUS: findNearestUS,
			SearchUS:      searchUS,
			ExpandUS:      expandUS,
			GeoJSONUS:     geojsonUS,
			TotalMS:       float64(time.Since(start).Microseconds()) / 1000.0,
		},
		Debug: RouteDebug{
			Cells: RouteDebugCells{
				Source: cellInfo(sourceCell),
				Target: cellInfo(targetCell),
				High:   cellInfo(high.Cell),
			},
		},
	}
	writeJSON(w, http.StatusOK, resp)
}

func edgeCells(meta *edgemeta.Store, source, target uint32) (uint64, uint64) {
	var sourceCell, targetCell uint64
	if m, ok := meta.Get(source); ok {
		sourceCell = m.ToCell
	}
	if m, ok := meta.Get(target); ok {
		targetCell = m.ToCell
	}
	return sourceCell, targetCell
}

func runAlgorithm(algorithm string, store *shortcut.Store, meta *edgemeta.Store, s, t uint32, opts algoOptions) (query.Result, error) {
	switch algorithm {
	case "", "classic", "bidijkstra":
		return query.Classic(store, meta, s, t)
	case "pruned":
		return query.Pruned(store, meta, s, t)
	case "unidirectional":
		return query.Unidirectional(store, meta, s, t)
	case "dijkstra":
		return query.Dijkstra(store, meta, s, t)
	case "classic_alt":
		factor := opts.penaltyFactor
		if factor <= 0 {
			factor = 1.0
		}
		return query.ClassicAlt(store, meta, s, t, opts.penalized, factor)
	default:
		return query.Result{}, errors.New("unknown algorithm: " + algorithm)
	}
}

func sumLength(meta *edgemeta.Store, basePath []uint32) float64 {
	var total float64
	for _, e := range basePath {
		if m, ok := meta.Get(e); ok {
			total += m.Length
		}
	}
	return total
}

func buildGeoJSON(meta *edgemeta.Store, basePath []uint32) *GeoJSONFeature {
	var coords [][2]float64
	for _, e := range basePath {
		m, ok := meta.Get(e)
		if !ok {
			continue
		}
		for _, p := range m.Geometry {
			if n := len(coords); n > 0 && coords[n-1][0] == p.Lon && coords[n-1][1] == p.Lat {
				continue
			}
			coords = append(coords, [2]float64{p.Lon, p.Lat})
		}
	}
	if len(coords) == 0 {
		return nil
	}
	return &GeoJSONFeature{
		Type:       "Feature",
		Geometry:   GeoJSONGeometry{Type: "LineString", Coordinates: coords},
		Properties: map[string]interface{}{},
	}
}

func cellInfo(cell uint64) CellInfo {
	c := h3cell.Cell(cell)
	if c == h3cell.None {
		return CellInfo{ID: 0, Res: -1, Boundary: [][2]float64{}}
	}
	res := h3cell.Resolution(c)
	boundary, err := h3cell.CellBoundary(c)
	pts := make([][2]float64, 0, len(boundary))
	if err == nil {
		for _, p := range boundary {
			pts = append(pts, [2]float64{p.Lng, p.Lat})
		}
	}
	return CellInfo{ID: cell, Res: res, Boundary: pts}
}

// HandleBoundary handles GET /boundary.
func (h *Handlers) HandleBoundary(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("dataset")
	ds, release, ok := h.registry.Pin(name)
	if !ok {
		writeErrorResponse(w, http.StatusServiceUnavailable, name, "dataset not loaded")
		return
	}
	defer release()

	geojson, ok := ds.Info["boundary_geojson"]
	if !ok {
		writeErrorResponse(w, http.StatusNotFound, name, "no boundary available")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(geojson))
}

// writeQueryFailure writes the 200-status, success:false shape the
// error taxonomy assigns to EdgeNotFound/NoPath: these are valid
// outcomes of a well-formed request, not HTTP-level errors.
func writeQueryFailure(w http.ResponseWriter, dataset, msg string) {
	writeJSON(w, http.StatusOK, RouteResponse{Success: false, Dataset: dataset, Error: msg})
}

func writeErrorResponse(w http.ResponseWriter, status int, dataset, msg string) {
	writeJSON(w, status, RouteResponse{Success: false, Dataset: dataset, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
