// Command seed-network writes the built-in Lisbon dataset into the database
// selected by NETWORK_SOURCE (sqlite or postgres).
package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"time"

	"metro-planner/internal/config"
	"metro-planner/internal/db"
	"metro-planner/internal/loader"
	"metro-planner/internal/metro"
	"metro-planner/internal/network"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	data := metro.Lisbon()
	// Refuse to store a network the planner could not load.
	if _, err := network.Build(data.Lines, data.Stations); err != nil {
		log.Fatalf("build network: %v", err)
	}

	var (
		conn    *sql.DB
		dialect db.Dialect
	)
	switch cfg.NetworkSource {
	case config.SourceSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatalf("create %s: %v", dir, err)
			}
		}
		conn, err = db.OpenSQLite(cfg.SQLitePath)
		dialect = db.SQLite
	case config.SourcePostgres:
		conn, err = loader.OpenPostgres(ctx, cfg)
		dialect = db.Postgres
	default:
		log.Fatalf("NETWORK_SOURCE must be sqlite or postgres to seed, got %q", cfg.NetworkSource)
	}
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer conn.Close()

	store := db.NewStore(conn, dialect)
	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("%v", err)
	}
	if err := store.Seed(ctx, data); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seeded %d stations and %d lines into %s", len(data.Stations), len(data.Lines), dialect)
}
