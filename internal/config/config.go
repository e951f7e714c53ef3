package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Network reference data sources.
const (
	SourceStatic   = "static"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

type Config struct {
	NetworkSource      string
	DatabaseURL        string
	City               string
	SQLitePath         string
	HTTPAddr           string
	CORSAllowedOrigins []string
	MetricsAddr        string
	NATSURL            string
	NATSPlanSubject    string
	LogNATSSubjects    bool
	StationMinutes     int
	TransferMinutes    int
	VerifyNetwork      bool
	// Zero disables periodic network reloads.
	NetworkReloadInterval time.Duration
}

func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.NetworkSource = strings.ToLower(getenvDefault("NETWORK_SOURCE", SourceStatic))
	switch cfg.NetworkSource {
	case SourceStatic:
	case SourcePostgres:
		dsn, err := postgresDSN()
		if err != nil {
			return nil, err
		}
		cfg.DatabaseURL = dsn
	case SourceSQLite:
		cfg.SQLitePath = getenvDefault("SQLITE_DATABASE", "data/network.db")
	default:
		return nil, fmt.Errorf("invalid NETWORK_SOURCE: %q", cfg.NetworkSource)
	}

	// City name for dynamic DB resolution
	cfg.City = firstNonEmpty(os.Getenv("CITY"), os.Getenv("CITY_NAME"))

	cfg.HTTPAddr = getenvDefault("HTTP_ADDR", ":8080")
	cfg.CORSAllowedOrigins = splitList(getenvDefault("CORS_ALLOWED_ORIGINS", "*"))

	// Metrics listen address (e.g., ":9102"). Empty disables the metrics server.
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	// Empty NATS_URL disables the NATS responder.
	cfg.NATSURL = os.Getenv("NATS_URL")
	cfg.NATSPlanSubject = getenvDefault("NATS_PLAN_SUBJECT", "planner.plan")
	cfg.LogNATSSubjects = parseBool(os.Getenv("LOG_NATS_SUBJECTS"))

	var err error
	if cfg.StationMinutes, err = nonNegativeInt("MINUTES_PER_STATION", 2); err != nil {
		return nil, err
	}
	if cfg.TransferMinutes, err = nonNegativeInt("MINUTES_PER_TRANSFER", 4); err != nil {
		return nil, err
	}

	cfg.VerifyNetwork = parseBool(os.Getenv("VERIFY_NETWORK"))

	if v := os.Getenv("NETWORK_RELOAD_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid NETWORK_RELOAD_INTERVAL: %q", v)
		}
		if d > 0 && cfg.NetworkSource == SourceStatic {
			return nil, errors.New("NETWORK_RELOAD_INTERVAL requires a postgres or sqlite NETWORK_SOURCE")
		}
		cfg.NetworkReloadInterval = d
	}

	return cfg, nil
}

// postgresDSN prefers DATABASE_URL / PG_DSN, else builds a URL from PG* vars.
func postgresDSN() (string, error) {
	if dsn := firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("PG_DSN")); dsn != "" {
		return dsn, nil
	}
	host := getenvDefault("PGHOST", "127.0.0.1")
	port := getenvDefault("PGPORT", "5432")
	user := getenvDefault("PGUSER", "postgres")
	pass := os.Getenv("PGPASSWORD")
	db := os.Getenv("PGDATABASE")
	// If CITY is provided, default base DB to 'postgres' when PGDATABASE is not set.
	if db == "" && os.Getenv("CITY") != "" {
		db = "postgres"
	}
	if db == "" {
		return "", errors.New("PGDATABASE or DATABASE_URL must be set (set PGDATABASE=postgres when using CITY)")
	}
	sslmode := getenvDefault("PGSSLMODE", "disable")
	if pass != "" {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", urlEscape(user), urlEscape(pass), host, port, db, sslmode), nil
	}
	return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=%s", urlEscape(user), host, port, db, sslmode), nil
}

func nonNegativeInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func urlEscape(s string) string {
	// Minimal escape for DSN user/pass with special chars
	r := strings.NewReplacer("@", "%40", ":", "%3A", "/", "%2F", "?", "%3F", "#", "%23")
	return r.Replace(s)
}
