package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/cryptox"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/server/auth"
	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/records"
	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger         { return l }

const strongPassword = "Str0ng!Pass1234"

func newTestCipher(t *testing.T) *cryptox.Cipher {
	t.Helper()
	c, err := cryptox.NewCipher(cryptox.KDFParams{Time: 1, Memory: 8 * 1024, Threads: 1})
	require.NoError(t, err)
	return c
}

func newTestAccountService(t *testing.T, m repomanager.RepositoryManager) *AccountService {
	t.Helper()
	hasher, err := auth.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService([]byte("test-signing-key"), time.Hour)
	require.NoError(t, err)
	return NewAccountService(m, hasher, tokens, nopLogger{})
}

// fakeManager lets a test swap individual repositories while keeping the
// in-memory manager for the rest.
type fakeManager struct {
	*repomanager.MemoryRepositoryManager
	accounts accounts.Repository
	records  records.Repository
}

func newFakeManager() *fakeManager {
	return &fakeManager{MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager()}
}

func (f *fakeManager) Accounts() accounts.Repository {
	if f.accounts != nil {
		return f.accounts
	}
	return f.MemoryRepositoryManager.Accounts()
}

func (f *fakeManager) Records() records.Repository {
	if f.records != nil {
		return f.records
	}
	return f.MemoryRepositoryManager.Records()
}

func (f *fakeManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos repomanager.Repositories) error) error {
	return fn(ctx, f)
}
