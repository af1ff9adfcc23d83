package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"dbwizard/internal/introspect"
	"dbwizard/pkg/config"
)

// ErrDialectNotRegistered is returned for a driver no extractor was registered for.
var ErrDialectNotRegistered = errors.New("dialect not registered")

type Extractor interface {

	// Extract reads tables, foreign keys and stored routines of the connected database
	Extract(ctx context.Context, db *sql.DB) (introspect.Catalog, error)
}

var dialects = map[string]Extractor{}

// Register makes an Extractor available under name.
func Register(name string, e Extractor) {
	dialects[strings.ToLower(name)] = e
}

// listRegistered returns the registered dialect keys (for diagnostics).
func listRegistered() []string {
	keys := make([]string, 0, len(dialects))
	for k := range dialects {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ConnectAndExtract connects to the database and reads its catalog. The timeout covers
// both connecting and extraction.
func ConnectAndExtract(ctx context.Context, driver, dsn string, timeout time.Duration) (introspect.Catalog, error) {
	driver = config.NormalizeDriver(driver)
	extractor, ok := dialects[driver]
	if !ok {
		return introspect.Catalog{}, fmt.Errorf("%w: %q (available: %v)", ErrDialectNotRegistered, driver, listRegistered())
	}
	dbConn, err := sql.Open(driver, dsn)
	if err != nil {
		return introspect.Catalog{}, fmt.Errorf("open %s: %w", driver, err)
	}
	defer dbConn.Close()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := dbConn.PingContext(ctx); err != nil {
		return introspect.Catalog{}, fmt.Errorf("ping %s: %w", driver, err)
	}
	return extractor.Extract(ctx, dbConn)
}

// RegisteredDialects is a helper that allows main to print registered dialects
func RegisteredDialects() []string {
	return listRegistered()
}
