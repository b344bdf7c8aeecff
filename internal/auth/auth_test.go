package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestParseTTL(t *testing.T) {
	valid := map[string]time.Duration{
		"45s": 45 * time.Second,
		"15m": 15 * time.Minute,
		"2h":  2 * time.Hour,
		"7d":  7 * 24 * time.Hour,
	}
	for in, want := range valid {
		got, err := ParseTTL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "7", "d", "7w", "-1d", "0m", "1.5h", " 7d"} {
		_, err := ParseTTL(in)
		assert.Error(t, err, in)
	}
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	digest, err := h.Hash("correct horse")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse", digest)

	require.NoError(t, h.Compare("correct horse", digest))
	require.ErrorIs(t, h.Compare("wrong horse", digest), ErrPasswordMismatch)

	_, err = h.Hash("")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	require.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	require.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).cost)
	require.Equal(t, 12, NewPasswordHasher(12).cost)
}

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer("access-secret", 15*time.Minute, "refresh-secret", 24*time.Hour)
}

func TestTokenIssuer_AccessRoundTrip(t *testing.T) {
	issuer := newTestIssuer()
	now := time.Now()

	token, err := issuer.IssueAccess(42, "a@example.com", now)
	require.NoError(t, err)
	require.WithinDuration(t, now.Add(15*time.Minute), token.ExpiresAt, time.Second)

	claims, err := issuer.VerifyAccess(token.Value)
	require.NoError(t, err)
	require.Equal(t, "a@example.com", claims.Email)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, uint64(42), id)
}

func TestTokenIssuer_SecretsAreSeparate(t *testing.T) {
	issuer := newTestIssuer()
	now := time.Now()

	access, err := issuer.IssueAccess(1, "a@example.com", now)
	require.NoError(t, err)
	refresh, err := issuer.IssueRefresh(1, "a@example.com", now)
	require.NoError(t, err)

	_, err = issuer.VerifyRefresh(access.Value)
	require.ErrorIs(t, err, ErrTokenInvalid)
	_, err = issuer.VerifyAccess(refresh.Value)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = issuer.VerifyRefresh(refresh.Value)
	require.NoError(t, err)
}

func TestTokenIssuer_RefreshTokensAreUnique(t *testing.T) {
	issuer := newTestIssuer()
	now := time.Now()

	first, err := issuer.IssueRefresh(1, "a@example.com", now)
	require.NoError(t, err)
	second, err := issuer.IssueRefresh(1, "a@example.com", now)
	require.NoError(t, err)

	require.NotEqual(t, first.Value, second.Value)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := newTestIssuer()

	token, err := issuer.IssueAccess(1, "a@example.com", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(token.Value)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	issuer := newTestIssuer()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(unsigned)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestClaims_UserIDRejectsGarbage(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	_, err := c.UserID()
	require.ErrorIs(t, err, ErrTokenInvalid)
}
