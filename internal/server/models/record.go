package models

import "time"

// Record is one stored credential. Site and Username are plaintext labels;
// Ciphertext is produced by cryptox and is opaque to the server.
type Record struct {
	ID         string
	OwnerID    string
	Site       string
	Username   string
	Ciphertext string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Meta strips the ciphertext.
func (r *Record) Meta() RecordMeta {
	return RecordMeta{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Site:      r.Site,
		Username:  r.Username,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// RecordMeta is what list paths return.
type RecordMeta struct {
	ID        string
	OwnerID   string
	Site      string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordPatch describes a partial update. Nil fields are left unchanged.
type RecordPatch struct {
	Site       *string
	Username   *string
	Ciphertext *string
}

// Empty reports whether the patch changes nothing.
func (p RecordPatch) Empty() bool {
	return p.Site == nil && p.Username == nil && p.Ciphertext == nil
}
