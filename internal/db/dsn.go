package db

import (
	"errors"
	"net/url"
	"strings"
)

// WithDBName swaps the database in a postgres DSN. A DSN without a scheme is
// treated as postgres://.
func WithDBName(dsn, database string) (string, error) {
	if dsn == "" {
		return "", errors.New("empty DSN")
	}
	if database = strings.TrimPrefix(strings.TrimSpace(database), "/"); database == "" {
		return "", errors.New("empty database name")
	}
	u, err := parsePostgres(dsn)
	if err != nil {
		return "", err
	}
	u.Path = "/" + database
	return u.String(), nil
}

// Redact hides the password of a DSN so it can be logged.
func Redact(dsn string) string {
	u, err := parsePostgres(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}

func parsePostgres(dsn string) (*url.URL, error) {
	if !strings.Contains(dsn, "://") {
		dsn = "postgres://" + dsn
	}
	return url.Parse(dsn)
}
