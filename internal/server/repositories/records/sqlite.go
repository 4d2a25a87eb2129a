package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/dbx"
	"github.com/dmitrijs2005/passkeeper/internal/server/models"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db dbx.DBTX
	// now is a test seam
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *SQLiteRepository) Create(ctx context.Context, record *models.Record) (*models.Record, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = r.now()
	record.UpdatedAt = record.CreatedAt

	query := `insert into records (id, owner_id, site, username, ciphertext, created_at, updated_at)
			values (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.OwnerID, record.Site, record.Username, record.Ciphertext,
		record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.RecordMeta, error) {
	query := `select id, owner_id, site, username, created_at, updated_at from records
			where owner_id = ? order by created_at, rowid`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.RecordMeta, 0)
	for rows.Next() {
		var m models.RecordMeta
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.Site, &m.Username, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Dump(ctx context.Context, ownerID string) ([]models.Record, error) {
	query := `select id, owner_id, site, username, ciphertext, created_at, updated_at from records
			where owner_id = ? order by created_at, rowid`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Record, 0)
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.Site, &rec.Username, &rec.Ciphertext,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, ownerID, id string) (*models.Record, error) {
	query := `select id, owner_id, site, username, ciphertext, created_at, updated_at from records
			where id = ? and owner_id = ?`

	rec := &models.Record{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&rec.ID, &rec.OwnerID, &rec.Site, &rec.Username, &rec.Ciphertext, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, ownerID, id string, patch models.RecordPatch) (*models.RecordMeta, error) {
	query := `update records
			set site = coalesce(?, site),
				username = coalesce(?, username),
				ciphertext = coalesce(?, ciphertext),
				updated_at = ?
			where id = ? and owner_id = ?`

	res, err := r.db.ExecContext(ctx, query,
		nullString(patch.Site), nullString(patch.Username), nullString(patch.Ciphertext),
		r.now(), id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrNotFound
	}

	// read back through a plain select so timestamps keep their column type
	rec, err := r.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	m := rec.Meta()
	return &m, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `delete from records where id = ? and owner_id = ?`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}
