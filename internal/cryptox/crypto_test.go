package cryptox

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// light parameters keep the suite fast; the format is the same
var testParams = KDFParams{Time: 1, Memory: 8 * 1024, Threads: 1}

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := NewCipher(testParams)
	require.NoError(t, err)
	return c
}

func TestDeriveMasterKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveMasterKey(password, salt, DefaultKDFParams)
	key2 := DeriveMasterKey(password, salt, DefaultKDFParams)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	// snapshot
	expectedHex := "9290403300158e19f27e48e7087f7383b03065bf5b25ef23ebc40229616cd8b3"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveMasterKey_DifferentInputs(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveMasterKey(password, []byte("salt-1"), testParams)
	key2 := DeriveMasterKey(password, []byte("salt-2"), testParams)

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestNewCipher_InvalidParams(t *testing.T) {
	tests := []KDFParams{
		{},
		{Time: 1, Memory: 1024},
		{Time: 0, Memory: 1024, Threads: 1},
		{Time: maxTime + 1, Memory: 1024, Threads: 1},
		{Time: 1, Memory: maxMemory + 1, Threads: 1},
	}

	for _, p := range tests {
		_, err := NewCipher(p)
		assert.Error(t, err, "%+v", p)
	}
}

func TestCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	for _, plaintext := range []string{"hunter2", "Str0ng!Pass1234", "пароль с юникодом ✓", "x"} {
		ct, err := c.Encrypt(plaintext, "master-key")
		require.NoError(t, err)

		got, err := c.Decrypt(ct, "master-key")
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestCipher_NonDeterministic(t *testing.T) {
	c := newTestCipher(t)

	a, err := c.Encrypt("same secret", "same key")
	require.NoError(t, err)
	b, err := c.Encrypt("same secret", "same key")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestCipher_Format(t *testing.T) {
	c := newTestCipher(t)

	ct, err := c.Encrypt("abc", "k")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(ct)
	require.NoError(t, err)

	// header + plaintext + GCM tag
	assert.Len(t, raw, headerLength+3+16)
	assert.Equal(t, byte(formatVersion), raw[0])
}

func TestCipher_WrongKey(t *testing.T) {
	c := newTestCipher(t)

	for i := 0; i < 50; i++ {
		right, err := generator.Generate(1 + i%32)
		require.NoError(t, err)
		wrong, err := generator.Generate(1 + (i*7)%32)
		require.NoError(t, err)
		if wrong == right {
			continue
		}
		secret, err := generator.Generate(0)
		require.NoError(t, err)

		ct, err := c.Encrypt(secret, right)
		require.NoError(t, err)

		got, err := c.Decrypt(ct, wrong)
		assert.ErrorIs(t, err, common.ErrInvalidKey, "right=%q wrong=%q", right, wrong)
		assert.Empty(t, got)

		got, err = c.Decrypt(ct, right)
		require.NoError(t, err)
		assert.Equal(t, secret, got)
	}
}

func TestCipher_DecryptsWithStoredParams(t *testing.T) {
	writer := newTestCipher(t)
	reader, err := NewCipher(KDFParams{Time: 2, Memory: 16 * 1024, Threads: 2})
	require.NoError(t, err)

	ct, err := writer.Encrypt("portable", "k")
	require.NoError(t, err)

	got, err := reader.Decrypt(ct, "k")
	require.NoError(t, err)
	assert.Equal(t, "portable", got)
}

func TestCipher_Corruption(t *testing.T) {
	c := newTestCipher(t)

	ct, err := c.Encrypt("integrity", "k")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(ct)
	require.NoError(t, err)

	flip := func(i int) string {
		b := bytes.Clone(raw)
		b[i] ^= 0x01
		return base64.StdEncoding.EncodeToString(b)
	}

	tests := []struct {
		name       string
		ciphertext string
	}{
		{"not base64", "%%%"},
		{"empty", ""},
		{"truncated header", base64.StdEncoding.EncodeToString(raw[:headerLength-1])},
		{"no tag", base64.StdEncoding.EncodeToString(raw[:headerLength+2])},
		{"bad version", flip(0)},
		{"tampered params", flip(1)},
		{"tampered salt", flip(10)},
		{"tampered nonce", flip(10 + SaltLength)},
		{"tampered body", flip(len(raw) - 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decrypt(tt.ciphertext, "k")
			assert.ErrorIs(t, err, common.ErrInvalidKey)
		})
	}
}

func TestCipher_EmptyPlaintextRejectedOnDecrypt(t *testing.T) {
	c := newTestCipher(t)

	ct, err := c.Encrypt("", "k")
	require.NoError(t, err)

	_, err = c.Decrypt(ct, "k")
	assert.ErrorIs(t, err, common.ErrInvalidKey)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestCipher_RandomSourceError(t *testing.T) {
	c := newTestCipher(t)

	orig := randReader
	randReader = failingReader{}
	defer func() { randReader = orig }()

	_, err := c.Encrypt("x", "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrInvalidKey)
}
