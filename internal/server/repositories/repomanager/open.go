package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// Open picks a backend from the DSN scheme:
//
//	postgres://... or postgresql://...  PostgreSQL through pgx
//	sqlite://<path or file: URI>         SQLite through modernc
//	memory:// (or empty)                 in-process maps
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	switch {
	case dsn == "" || strings.HasPrefix(dsn, "memory://"):
		return NewMemoryRepositoryManager(), nil

	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := sqlOpen("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return NewSQLRepositoryManager(db, DialectPostgres)

	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		if path == "" {
			return nil, fmt.Errorf("sqlite dsn has no path")
		}
		db, err := sqlOpen("sqlite", withSQLitePragmas(path))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// one writer at a time
		db.SetMaxOpenConns(1)
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping sqlite: %w", err)
		}
		return NewSQLRepositoryManager(db, DialectSQLite)
	}

	return nil, fmt.Errorf("unsupported database dsn scheme")
}

func withSQLitePragmas(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
