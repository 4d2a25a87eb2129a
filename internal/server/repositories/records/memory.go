package records

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/server/models"
	"github.com/google/uuid"
)

type memoryRecord struct {
	models.Record
	seq uint64
}

// MemoryRepository keeps records in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*memoryRecord
	seq     uint64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]*memoryRecord)}
}

func (r *MemoryRepository) Create(ctx context.Context, record *models.Record) (*models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt

	r.seq++
	r.records[record.ID] = &memoryRecord{Record: *record, seq: r.seq}

	return record, nil
}

func (r *MemoryRepository) owned(ownerID string) []*memoryRecord {
	var out []*memoryRecord
	for _, rec := range r.records {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.RecordMeta, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.RecordMeta, 0)
	for _, rec := range r.owned(ownerID) {
		result = append(result, rec.Meta())
	}
	return result, nil
}

func (r *MemoryRepository) Dump(ctx context.Context, ownerID string) ([]models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Record, 0)
	for _, rec := range r.owned(ownerID) {
		result = append(result, rec.Record)
	}
	return result, nil
}

func (r *MemoryRepository) Get(ctx context.Context, ownerID, id string) (*models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	out := rec.Record
	return &out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, ownerID, id string, patch models.RecordPatch) (*models.RecordMeta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}

	if patch.Site != nil {
		rec.Site = *patch.Site
	}
	if patch.Username != nil {
		rec.Username = *patch.Username
	}
	if patch.Ciphertext != nil {
		rec.Ciphertext = *patch.Ciphertext
	}
	rec.UpdatedAt = time.Now().UTC()

	m := rec.Meta()
	return &m, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.OwnerID != ownerID {
		return common.ErrNotFound
	}
	delete(r.records, id)
	return nil
}
