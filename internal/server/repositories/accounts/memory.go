package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in a map keyed by email.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: make(map[string]models.Account)}
}

func (r *MemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.ErrDuplicateAccount
	}

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.CreatedAt = time.Now().UTC()
	r.byEmail[account.Email] = *account

	return account, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &a, nil
}
