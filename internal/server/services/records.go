package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/cryptox"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/server/models"
	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// NewRecord is the input of RecordService.Add.
type NewRecord struct {
	Site      string
	Username  string
	Password  string
	MasterKey string
}

// RecordUpdate is the input of RecordService.Update. Labels change when
// present and non-empty; the secret is re-encrypted only when both Password
// and MasterKey are present.
type RecordUpdate struct {
	Site      *string
	Username  *string
	Password  *string
	MasterKey *string
}

// RevealedRecord carries a decrypted secret back to its owner.
type RevealedRecord struct {
	ID       string
	Site     string
	Username string
	Password string
}

// RecordService manages credential records. Every operation is scoped to
// ownerID, which comes from the verified session, never from the request.
type RecordService struct {
	repomanager repomanager.RepositoryManager
	cipher      *cryptox.Cipher
	logger      logging.Logger
}

func NewRecordService(m repomanager.RepositoryManager, cipher *cryptox.Cipher, logger logging.Logger) *RecordService {
	return &RecordService{
		repomanager: m,
		cipher:      cipher,
		logger:      logger.With("module", "records"),
	}
}

// Add encrypts the password under the master key and stores the record.
func (s *RecordService) Add(ctx context.Context, ownerID string, in NewRecord) (*models.RecordMeta, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthorized
	}

	site := strings.TrimSpace(in.Site)
	username := strings.TrimSpace(in.Username)
	if site == "" || username == "" || in.Password == "" || in.MasterKey == "" {
		return nil, fmt.Errorf("%w: site, username, password and master key are required", common.ErrValidation)
	}

	ciphertext, err := s.cipher.Encrypt(in.Password, in.MasterKey)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	rec, err := s.repomanager.Records().Create(ctx, &models.Record{
		OwnerID:    ownerID,
		Site:       site,
		Username:   username,
		Ciphertext: ciphertext,
	})
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.logger.Debug(ctx, "record created", "owner_id", ownerID, "record_id", rec.ID)

	m := rec.Meta()
	return &m, nil
}

// List returns the owner's records without ciphertext, oldest first.
func (s *RecordService) List(ctx context.Context, ownerID string) ([]models.RecordMeta, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthorized
	}

	list, err := s.repomanager.Records().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return list, nil
}

// Reveal decrypts one record. A wrong master key fails with
// common.ErrInvalidKey; a missing or foreign record with common.ErrNotFound.
func (s *RecordService) Reveal(ctx context.Context, ownerID, id, masterKey string) (*RevealedRecord, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthorized
	}
	if masterKey == "" {
		return nil, fmt.Errorf("%w: master key is required", common.ErrValidation)
	}
	if !validID(id) {
		return nil, common.ErrNotFound
	}

	rec, err := s.repomanager.Records().Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	plaintext, err := s.cipher.Decrypt(rec.Ciphertext, masterKey)
	if err != nil {
		s.logger.Warn(ctx, "reveal with invalid master key", "owner_id", ownerID, "record_id", id)
		return nil, err
	}

	return &RevealedRecord{
		ID:       rec.ID,
		Site:     rec.Site,
		Username: rec.Username,
		Password: plaintext,
	}, nil
}

// Update applies a partial change in one conditional write. A change that
// touches nothing leaves the record, including UpdatedAt, as it was.
func (s *RecordService) Update(ctx context.Context, ownerID, id string, in RecordUpdate) (*models.RecordMeta, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthorized
	}
	if !validID(id) {
		return nil, common.ErrNotFound
	}

	var patch models.RecordPatch
	if v := trimmed(in.Site); v != nil {
		patch.Site = v
	}
	if v := trimmed(in.Username); v != nil {
		patch.Username = v
	}
	if in.Password != nil && *in.Password != "" && in.MasterKey != nil && *in.MasterKey != "" {
		ciphertext, err := s.cipher.Encrypt(*in.Password, *in.MasterKey)
		if err != nil {
			return nil, fmt.Errorf("encrypt: %w", err)
		}
		patch.Ciphertext = &ciphertext
	}

	if patch.Empty() {
		rec, err := s.repomanager.Records().Get(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		m := rec.Meta()
		return &m, nil
	}

	m, err := s.repomanager.Records().Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a record for good.
func (s *RecordService) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return common.ErrUnauthorized
	}
	if !validID(id) {
		return common.ErrNotFound
	}
	return s.repomanager.Records().Delete(ctx, ownerID, id)
}

// validID filters ids that cannot exist, so SQL backends never see them.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
