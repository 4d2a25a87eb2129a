package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, secret string, lifetime time.Duration) *TokenService {
	t.Helper()
	s, err := NewTokenService([]byte(secret), lifetime)
	require.NoError(t, err)
	return s
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	s := newTestTokenService(t, "super-secret", time.Hour)

	tok, err := s.Issue("user-123", "a@b.io")
	require.NoError(t, err)

	id, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", id.UserID)
	assert.Equal(t, "a@b.io", id.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), id.ExpiresAt, 5*time.Second)
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(nil, time.Hour)
	assert.Error(t, err)

	s, err := NewTokenService([]byte("k"), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenLifetime, s.Lifetime())
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	s := newTestTokenService(t, "secret", time.Hour)
	tok, err := s.Issue("u1", "")
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = s.Verify(tok)
	assert.Equal(t, common.ErrTokenExpired, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := newTestTokenService(t, "right-secret", time.Hour)
	verifier := newTestTokenService(t, "wrong-secret", time.Hour)

	tok, err := issuer.Issue("u2", "")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.Equal(t, common.ErrInvalidToken, err)
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	s := newTestTokenService(t, "k", time.Hour)

	for _, tok := range []string{"", "not.a.jwt", "abc"} {
		_, err := s.Verify(tok)
		assert.Equal(t, common.ErrInvalidToken, err, tok)
	}
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	s := newTestTokenService(t, "k", time.Hour)

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u3",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "u3",
	})
	unsigned, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(unsigned)
	assert.Equal(t, common.ErrInvalidToken, err)
}

func TestVerify_RejectsOtherHMAC(t *testing.T) {
	t.Parallel()

	s := newTestTokenService(t, "k", time.Hour)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u4",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "u4",
	})
	signed, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = s.Verify(signed)
	assert.Equal(t, common.ErrInvalidToken, err)
}

func TestVerify_MissingExpiry(t *testing.T) {
	t.Parallel()

	s := newTestTokenService(t, "k", time.Hour)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u5"},
		UserID:           "u5",
	})
	signed, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = s.Verify(signed)
	assert.Equal(t, common.ErrInvalidToken, err)
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	s := newTestTokenService(t, "k", time.Hour)
	victim, err := s.Issue("u6", "")
	require.NoError(t, err)
	attacker, err := s.Issue("u7", "")
	require.NoError(t, err)

	// u7's payload under u6's signature
	v := strings.Split(victim, ".")
	a := strings.Split(attacker, ".")
	require.Len(t, v, 3)
	require.Len(t, a, 3)

	_, err = s.Verify(strings.Join([]string{v[0], a[1], v[2]}, "."))
	assert.Equal(t, common.ErrInvalidToken, err)
}
