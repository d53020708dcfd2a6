package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"h3router/pkg/api"
	"h3router/pkg/dataset"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	dbPath := flag.String("db", "", "Path to an embedded DuckDB file to load at startup")
	shortcutsPath := flag.String("shortcuts", "", "Path to a columnar shortcuts file to load at startup")
	edgesPath := flag.String("edges", "", "Path to a CSV edge-metadata file to load at startup")
	infoPath := flag.String("info", "", "Path to a key/value dataset-info CSV (files mode only)")
	datasetName := flag.String("dataset-name", "default", "Name to publish the startup dataset under")
	indexType := flag.String("index", "h3", "Spatial index type: h3 or rtree")
	flag.Parse()

	registry := dataset.NewRegistry()

	if *dbPath != "" || (*shortcutsPath != "" && *edgesPath != "") {
		log.Printf("Loading dataset %q...", *datasetName)
		ds, err := dataset.Load(dataset.LoadOptions{
			Name:          *datasetName,
			DBPath:        *dbPath,
			ShortcutsPath: *shortcutsPath,
			EdgesPath:     *edgesPath,
			InfoPath:      *infoPath,
			IndexType:     *indexType,
		})
		if err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}
		registry.Publish(ds)
		log.Printf("Dataset %q ready: %d edges, %s index", *datasetName, ds.Meta.Len(), ds.IndexType)
	} else {
		log.Println("No dataset given at startup; use POST /load_dataset to add one")
	}

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	handlers := api.NewHandlers(registry)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
