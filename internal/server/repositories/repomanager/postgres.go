package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/passkeeper/internal/dbx"
	"github.com/dmitrijs2005/passkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/records"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL flavour of the repositories.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// SQLRepositoryManager vends SQL-backed repositories and exposes a schema
// migration hook.
type SQLRepositoryManager struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLRepositoryManager wraps an open database handle.
func NewSQLRepositoryManager(db *sql.DB, dialect Dialect) (*SQLRepositoryManager, error) {
	switch dialect {
	case DialectPostgres, DialectSQLite:
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	return &SQLRepositoryManager{db: db, dialect: dialect}, nil
}

type sqlRepositories struct {
	db      dbx.DBTX
	dialect Dialect
}

func (r sqlRepositories) Accounts() accounts.Repository {
	if r.dialect == DialectSQLite {
		return accounts.NewSQLiteRepository(r.db)
	}
	return accounts.NewPostgresRepository(r.db)
}

func (r sqlRepositories) Records() records.Repository {
	if r.dialect == DialectSQLite {
		return records.NewSQLiteRepository(r.db)
	}
	return records.NewPostgresRepository(r.db)
}

// Accounts returns an accounts.Repository bound to the database handle.
func (m *SQLRepositoryManager) Accounts() accounts.Repository {
	return sqlRepositories{db: m.db, dialect: m.dialect}.Accounts()
}

// Records returns a records.Repository bound to the database handle.
func (m *SQLRepositoryManager) Records() records.Repository {
	return sqlRepositories{db: m.db, dialect: m.dialect}.Records()
}

func (m *SQLRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, sqlRepositories{db: tx, dialect: m.dialect})
	})
}

// RunMigrations sets up goose with the embedded migrations for the dialect
// and runs them against the database.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	var (
		fsys         fs.FS
		dir          string
		gooseDialect string
	)
	switch m.dialect {
	case DialectSQLite:
		fsys, dir, gooseDialect = migrations.SQLite, "sqlite", "sqlite3"
	default:
		fsys, dir, gooseDialect = migrations.Postgres, "postgres", "pgx"
	}

	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, dir); err != nil {
		return err
	}
	return nil
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}

// DB exposes the underlying handle.
func (m *SQLRepositoryManager) DB() *sql.DB {
	return m.db
}
