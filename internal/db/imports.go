package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ResolveNetworkDB returns the most recently imported network database whose
// name contains city, from public.latest_network_imports on the meta DB.
func ResolveNetworkDB(ctx context.Context, meta *sql.DB, city string) (string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return "", errors.New("city is required")
	}
	q := `
SELECT db_name
FROM public.latest_network_imports
WHERE db_name ILIKE '%' || $1 || '%'
ORDER BY imported_at DESC
LIMIT 1`
	var dbName sql.NullString
	if err := meta.QueryRowContext(ctx, q, city).Scan(&dbName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("no network database found for city like %q", city)
		}
		return "", err
	}
	if !dbName.Valid || dbName.String == "" {
		return "", fmt.Errorf("empty db_name for city like %q", city)
	}
	return dbName.String, nil
}
