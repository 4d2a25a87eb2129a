package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/dbx"
	"github.com/dmitrijs2005/passkeeper/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, record *models.Record) (*models.Record, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO records (id, owner_id, site, username, ciphertext)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		record.ID, record.OwnerID, record.Site, record.Username, record.Ciphertext).
		Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return record, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.RecordMeta, error) {
	query :=
		`SELECT id, owner_id, site, username, created_at, updated_at FROM records
		 WHERE owner_id = $1
		 ORDER BY created_at, id
		 `

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

func (r *PostgresRepository) Dump(ctx context.Context, ownerID string) ([]models.Record, error) {
	query :=
		`SELECT id, owner_id, site, username, ciphertext, created_at, updated_at FROM records
		 WHERE owner_id = $1
		 ORDER BY created_at, id
		 `

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

func (r *PostgresRepository) Get(ctx context.Context, ownerID, id string) (*models.Record, error) {
	query :=
		`SELECT id, owner_id, site, username, ciphertext, created_at, updated_at FROM records
		 WHERE id = $1 AND owner_id = $2
		 `

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

func (r *PostgresRepository) Update(ctx context.Context, ownerID, id string, patch models.RecordPatch) (*models.RecordMeta, error) {
	query :=
		`UPDATE records
		 SET site = COALESCE($3, site),
		     username = COALESCE($4, username),
		     ciphertext = COALESCE($5, ciphertext),
		     updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING id, owner_id, site, username, created_at, updated_at
		 `

	m := &models.RecordMeta{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID,
		nullString(patch.Site), nullString(patch.Username), nullString(patch.Ciphertext)).
		Scan(&m.ID, &m.OwnerID, &m.Site, &m.Username, &m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM records WHERE id = $1 AND owner_id = $2`

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

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
