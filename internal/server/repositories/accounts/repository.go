// Package accounts stores registered accounts.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/passkeeper/internal/server/models"
)

// Repository persists accounts. Create fails with common.ErrDuplicateAccount
// when the email is taken; GetByEmail fails with common.ErrNotFound when it
// is not.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}
