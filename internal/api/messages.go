package api

import "time"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Account is the public view of an account.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse answers both Register and Login.
type AuthResponse struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// Record is record metadata. It never carries a secret.
type Record struct {
	ID        string    `json:"id"`
	Site      string    `json:"site"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateRecordRequest struct {
	Site      string `json:"site"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	MasterKey string `json:"master_key"`
}

type ListRecordsRequest struct{}

type ListRecordsResponse struct {
	Records []Record `json:"records"`
}

type RevealRecordRequest struct {
	ID        string `json:"id"`
	MasterKey string `json:"master_key"`
}

type RevealRecordResponse struct {
	ID       string `json:"id"`
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateRecordRequest changes only the fields that are set. Password is
// applied only together with MasterKey.
type UpdateRecordRequest struct {
	ID        string  `json:"id"`
	Site      *string `json:"site,omitempty"`
	Username  *string `json:"username,omitempty"`
	Password  *string `json:"password,omitempty"`
	MasterKey *string `json:"master_key,omitempty"`
}

type DeleteRecordRequest struct {
	ID string `json:"id"`
}

type DeleteRecordResponse struct{}

type GeneratePasswordRequest struct {
	Length int `json:"length"`
}

type GeneratePasswordResponse struct {
	Password string `json:"password"`
}

type ExportRecordsRequest struct{}

type ExportRecordsResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Records   int       `json:"records"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
