package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"metro-planner/internal/metro"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect selects placeholder syntax; the schema itself is portable.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// placeholders returns n comma-separated bind parameters.
func (d Dialect) placeholders(n int) string {
	ps := make([]string, n)
	for i := range ps {
		if d == SQLite {
			ps[i] = "?"
		} else {
			ps[i] = "$" + strconv.Itoa(i+1)
		}
	}
	return strings.Join(ps, ", ")
}

func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// OpenSQLite opens a SQLite file. ":memory:" is pinned to one connection
// since every connection would otherwise get its own empty database.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	}
	return db, nil
}

func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// Store reads and writes network reference data.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

func NewStore(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS lines (
  name  TEXT PRIMARY KEY,
  color TEXT NOT NULL DEFAULT '',
  ord   INTEGER NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS stations (
  id       TEXT PRIMARY KEY,
  name     TEXT NOT NULL,
  lon      DOUBLE PRECISION NOT NULL DEFAULT 0,
  lat      DOUBLE PRECISION NOT NULL DEFAULT 0,
  terminal BOOLEAN NOT NULL DEFAULT FALSE
)`,
	`CREATE TABLE IF NOT EXISTS line_stations (
  line_name  TEXT NOT NULL REFERENCES lines(name),
  seq        INTEGER NOT NULL,
  station_id TEXT NOT NULL REFERENCES stations(id),
  PRIMARY KEY (line_name, seq)
)`,
	`CREATE TABLE IF NOT EXISTS line_directions (
  line_name  TEXT NOT NULL REFERENCES lines(name),
  station_id TEXT NOT NULL REFERENCES stations(id),
  sign       INTEGER NOT NULL CHECK (sign IN (-1, 1)),
  PRIMARY KEY (line_name, station_id)
)`,
	`CREATE TABLE IF NOT EXISTS station_lines (
  station_id TEXT NOT NULL REFERENCES stations(id),
  seq        INTEGER NOT NULL,
  line_name  TEXT NOT NULL,
  PRIMARY KEY (station_id, seq)
)`,
}

// Migrate creates the reference tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	for _, q := range schema {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Seed replaces all reference data with n in one transaction.
func (s *Store) Seed(ctx context.Context, n metro.Network) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"station_lines", "line_directions", "line_stations", "stations", "lines"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	insert := func(table, cols string, args int) (*sql.Stmt, error) {
		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, cols, s.dialect.placeholders(args))
		return tx.PrepareContext(ctx, q)
	}

	lineStmt, err := insert("lines", "name, color, ord", 3)
	if err != nil {
		return fmt.Errorf("prepare lines: %w", err)
	}
	defer lineStmt.Close()
	for i, l := range n.Lines {
		if _, err = lineStmt.ExecContext(ctx, l.Name, l.Color, i); err != nil {
			return fmt.Errorf("insert line %s: %w", l.Name, err)
		}
	}

	stStmt, err := insert("stations", "id, name, lon, lat, terminal", 5)
	if err != nil {
		return fmt.Errorf("prepare stations: %w", err)
	}
	defer stStmt.Close()
	slStmt, err := insert("station_lines", "station_id, seq, line_name", 3)
	if err != nil {
		return fmt.Errorf("prepare station_lines: %w", err)
	}
	defer slStmt.Close()
	for _, st := range n.Stations {
		if _, err = stStmt.ExecContext(ctx, st.ID, st.Name, st.Coordinates.Lon, st.Coordinates.Lat, st.Terminal); err != nil {
			return fmt.Errorf("insert station %s: %w", st.ID, err)
		}
		for seq, line := range st.Lines {
			if _, err = slStmt.ExecContext(ctx, st.ID, seq, line); err != nil {
				return fmt.Errorf("insert station line %s/%s: %w", st.ID, line, err)
			}
		}
	}

	lsStmt, err := insert("line_stations", "line_name, seq, station_id", 3)
	if err != nil {
		return fmt.Errorf("prepare line_stations: %w", err)
	}
	defer lsStmt.Close()
	dirStmt, err := insert("line_directions", "line_name, station_id, sign", 3)
	if err != nil {
		return fmt.Errorf("prepare line_directions: %w", err)
	}
	defer dirStmt.Close()
	for _, l := range n.Lines {
		for seq, id := range l.Stations {
			if _, err = lsStmt.ExecContext(ctx, l.Name, seq, id); err != nil {
				return fmt.Errorf("insert line station %s/%s: %w", l.Name, id, err)
			}
		}
		for id, sign := range l.Directions {
			if _, err = dirStmt.ExecContext(ctx, l.Name, id, sign); err != nil {
				return fmt.Errorf("insert direction %s/%s: %w", l.Name, id, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// LoadNetwork reads the reference tables back into a metro.Network, keeping
// line order and per-line station order.
func (s *Store) LoadNetwork(ctx context.Context) (metro.Network, error) {
	var n metro.Network

	lines, err := s.fetchLines(ctx)
	if err != nil {
		return n, err
	}
	stations, err := s.fetchStations(ctx)
	if err != nil {
		return n, err
	}
	n.Lines, n.Stations = lines, stations
	return n, nil
}

func (s *Store) fetchLines(ctx context.Context) ([]metro.Line, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, color FROM lines ORDER BY ord, name`)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}
	defer rows.Close()

	var lines []metro.Line
	idx := map[string]int{}
	for rows.Next() {
		var l metro.Line
		if err := rows.Scan(&l.Name, &l.Color); err != nil {
			return nil, err
		}
		idx[l.Name] = len(lines)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT line_name, station_id FROM line_stations ORDER BY line_name, seq`)
	if err != nil {
		return nil, fmt.Errorf("query line_stations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, id string
		if err := rows.Scan(&name, &id); err != nil {
			return nil, err
		}
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("line_stations references unknown line %q", name)
		}
		lines[i].Stations = append(lines[i].Stations, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT line_name, station_id, sign FROM line_directions`)
	if err != nil {
		return nil, fmt.Errorf("query line_directions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, id string
		var sign int
		if err := rows.Scan(&name, &id, &sign); err != nil {
			return nil, err
		}
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("line_directions references unknown line %q", name)
		}
		if lines[i].Directions == nil {
			lines[i].Directions = map[string]int{}
		}
		lines[i].Directions[id] = sign
	}
	return lines, rows.Err()
}

func (s *Store) fetchStations(ctx context.Context) ([]metro.Station, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, lon, lat, terminal FROM stations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer rows.Close()

	var stations []metro.Station
	idx := map[string]int{}
	for rows.Next() {
		var st metro.Station
		if err := rows.Scan(&st.ID, &st.Name, &st.Coordinates.Lon, &st.Coordinates.Lat, &st.Terminal); err != nil {
			return nil, err
		}
		idx[st.ID] = len(stations)
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT station_id, line_name FROM station_lines ORDER BY station_id, seq`)
	if err != nil {
		return nil, fmt.Errorf("query station_lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, line string
		if err := rows.Scan(&id, &line); err != nil {
			return nil, err
		}
		i, ok := idx[id]
		if !ok {
			return nil, fmt.Errorf("station_lines references unknown station %q", id)
		}
		stations[i].Lines = append(stations[i].Lines, line)
	}
	return stations, rows.Err()
}
