package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/records"
)

// MemoryRepositoryManager keeps everything in process memory. Units of work
// are serialized; each repository call is atomic on its own, and there is
// no rollback.
type MemoryRepositoryManager struct {
	txMu     sync.Mutex
	accounts *accounts.MemoryRepository
	records  *records.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		accounts: accounts.NewMemoryRepository(),
		records:  records.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Accounts() accounts.Repository { return m.accounts }

func (m *MemoryRepositoryManager) Records() records.Repository { return m.records }

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m)
}

func (m *MemoryRepositoryManager) Close() error { return nil }
