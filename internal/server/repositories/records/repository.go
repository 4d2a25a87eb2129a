// Package records stores encrypted credential records.
package records

import (
	"context"

	"github.com/dmitrijs2005/passkeeper/internal/server/models"
)

// Repository persists records. Every lookup is scoped by owner: a record that
// exists but belongs to someone else is reported as common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, record *models.Record) (*models.Record, error)
	// ListByOwner returns metadata only, oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.RecordMeta, error)
	// Dump returns full records including ciphertext, oldest first.
	Dump(ctx context.Context, ownerID string) ([]models.Record, error)
	Get(ctx context.Context, ownerID, id string) (*models.Record, error)
	// Update applies patch in a single statement.
	Update(ctx context.Context, ownerID, id string, patch models.RecordPatch) (*models.RecordMeta, error)
	Delete(ctx context.Context, ownerID, id string) error
}
