// Package repomanager vends repository implementations for the configured
// storage backend and runs units of work against them.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/records"
)

// Repositories groups the stores a unit of work can touch.
type Repositories interface {
	Accounts() accounts.Repository
	Records() records.Repository
}

// RepositoryManager is the storage entry point used by services.
type RepositoryManager interface {
	Repositories
	// RunMigrations brings the schema up to date. A no-op for memory.
	RunMigrations(ctx context.Context) error
	// WithTx runs fn against repositories bound to one transaction. fn's
	// error rolls the transaction back.
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Close() error
}
