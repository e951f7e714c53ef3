// Package loader resolves the configured reference-data source into a
// metro.Network.
package loader

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"metro-planner/internal/config"
	"metro-planner/internal/db"
	"metro-planner/internal/metro"
)

// Load returns the network for cfg.NetworkSource. The built-in Lisbon
// dataset backs the static source.
func Load(ctx context.Context, cfg *config.Config) (metro.Network, error) {
	switch cfg.NetworkSource {
	case config.SourceStatic, "":
		log.Printf("network source: built-in lisbon dataset")
		return metro.Lisbon(), nil
	case config.SourceSQLite:
		conn, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return metro.Network{}, err
		}
		defer conn.Close()
		log.Printf("network source: sqlite %s", cfg.SQLitePath)
		return loadStore(ctx, conn, db.SQLite)
	case config.SourcePostgres:
		conn, err := OpenPostgres(ctx, cfg)
		if err != nil {
			return metro.Network{}, err
		}
		defer conn.Close()
		return loadStore(ctx, conn, db.Postgres)
	default:
		return metro.Network{}, fmt.Errorf("unknown network source %q", cfg.NetworkSource)
	}
}

// OpenPostgres connects to cfg.DatabaseURL, or, when CITY is set, to the
// latest imported database for that city as listed on the meta database.
func OpenPostgres(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	dsn := cfg.DatabaseURL
	if cfg.City != "" {
		metaDSN, err := db.WithDBName(cfg.DatabaseURL, "postgres")
		if err != nil {
			return nil, fmt.Errorf("invalid base DSN: %w", err)
		}
		meta, err := db.Open(metaDSN)
		if err != nil {
			return nil, fmt.Errorf("db open (meta): %w", err)
		}
		defer meta.Close()
		if err := db.Ping(ctx, meta); err != nil {
			return nil, fmt.Errorf("db ping (meta): %w", err)
		}
		name, err := db.ResolveNetworkDB(ctx, meta, cfg.City)
		if err != nil {
			return nil, fmt.Errorf("resolve network db for city %q: %w", cfg.City, err)
		}
		if dsn, err = db.WithDBName(cfg.DatabaseURL, name); err != nil {
			return nil, fmt.Errorf("compose DSN: %w", err)
		}
		log.Printf("using database %q for city %q", name, cfg.City)
	}

	conn, err := db.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	if err := db.Ping(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	log.Printf("network source: postgres %s", db.Redact(dsn))
	return conn, nil
}

func loadStore(ctx context.Context, conn *sql.DB, d db.Dialect) (metro.Network, error) {
	n, err := db.NewStore(conn, d).LoadNetwork(ctx)
	if err != nil {
		return metro.Network{}, fmt.Errorf("load network (%s): %w", d, err)
	}
	if len(n.Stations) == 0 {
		return metro.Network{}, fmt.Errorf("load network (%s): no stations; run seed-network first", d)
	}
	return n, nil
}
