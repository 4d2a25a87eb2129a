// Package cryptox implements the credential cipher: password-based
// encryption of stored secrets under a user-supplied master key.
//
// A 256-bit key is derived from the master key with Argon2id and a fresh
// random salt, then the plaintext is sealed with AES-256-GCM under a fresh
// random nonce. The KDF parameters, salt and nonce travel inside the
// ciphertext, so Decrypt needs nothing but the ciphertext and the key:
//
//	version(1) | time(4) | memory KiB(4) | threads(1) | salt(16) | nonce(12) | sealed
//
// The whole blob is base64 (standard encoding) so it can be stored as text.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	formatVersion = 1

	KeyLength   = 32
	SaltLength  = 16
	NonceLength = 12

	headerLength = 1 + 4 + 4 + 1 + SaltLength + NonceLength
)

// KDFParams tunes Argon2id. Raising them makes new ciphertexts more
// expensive to brute-force; old ciphertexts keep the parameters they were
// written with.
type KDFParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultKDFParams: one pass over 64 MiB with four lanes.
var DefaultKDFParams = KDFParams{Time: 1, Memory: 64 * 1024, Threads: 4}

// Bounds applied to parameters read back from a ciphertext, so a forged
// header cannot make Decrypt allocate unbounded memory.
const (
	maxTime   = 16
	maxMemory = 1024 * 1024
)

// randReader is a test seam for crypto/rand.Reader.
var randReader io.Reader = rand.Reader

// Cipher encrypts and decrypts credential secrets. The zero value is not
// usable; construct it with NewCipher.
type Cipher struct {
	params KDFParams
}

// NewCipher returns a Cipher that writes new ciphertexts with params.
func NewCipher(params KDFParams) (*Cipher, error) {
	if params.Time == 0 || params.Memory == 0 || params.Threads == 0 {
		return nil, fmt.Errorf("invalid kdf params: %+v", params)
	}
	if params.Time > maxTime || params.Memory > maxMemory {
		return nil, fmt.Errorf("kdf params out of range: %+v", params)
	}
	return &Cipher{params: params}, nil
}

// DeriveMasterKey stretches password into a KeyLength-byte key.
func DeriveMasterKey(password []byte, salt []byte, params KDFParams) []byte {
	return argon2.IDKey(password, salt, params.Time, params.Memory, params.Threads, KeyLength)
}

// Encrypt seals plaintext under masterKey. Two calls with the same input
// produce different output.
func (c *Cipher) Encrypt(plaintext, masterKey string) (string, error) {
	header := make([]byte, headerLength)
	header[0] = formatVersion
	binary.BigEndian.PutUint32(header[1:5], c.params.Time)
	binary.BigEndian.PutUint32(header[5:9], c.params.Memory)
	header[9] = c.params.Threads

	// salt and nonce are read in one go
	if _, err := io.ReadFull(randReader, header[10:]); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := header[10 : 10+SaltLength]
	nonce := header[10+SaltLength:]

	key := DeriveMasterKey([]byte(masterKey), salt, c.params)
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	// header doubles as additional data, so parameters cannot be swapped
	sealed := aesgcm.Seal(nil, nonce, []byte(plaintext), header)

	return base64.StdEncoding.EncodeToString(append(header, sealed...)), nil
}

// Decrypt opens a ciphertext produced by Encrypt. Any failure to recover
// valid, non-empty UTF-8 text yields common.ErrInvalidKey.
func (c *Cipher) Decrypt(ciphertext, masterKey string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil || len(raw) < headerLength {
		return "", common.ErrInvalidKey
	}

	header := raw[:headerLength]
	if header[0] != formatVersion {
		return "", common.ErrInvalidKey
	}

	params := KDFParams{
		Time:    binary.BigEndian.Uint32(header[1:5]),
		Memory:  binary.BigEndian.Uint32(header[5:9]),
		Threads: header[9],
	}
	if params.Time == 0 || params.Time > maxTime ||
		params.Memory == 0 || params.Memory > maxMemory || params.Threads == 0 {
		return "", common.ErrInvalidKey
	}

	salt := header[10 : 10+SaltLength]
	nonce := header[10+SaltLength:]

	key := DeriveMasterKey([]byte(masterKey), salt, params)
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	sealed := raw[headerLength:]
	if len(sealed) < aesgcm.Overhead() {
		return "", common.ErrInvalidKey
	}

	plaintext, err := aesgcm.Open(nil, nonce, sealed, header)
	if err != nil {
		return "", common.ErrInvalidKey
	}

	if len(plaintext) == 0 || !utf8.Valid(plaintext) {
		return "", common.ErrInvalidKey
	}

	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesgcm, nil
}
