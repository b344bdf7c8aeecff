package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token is expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims is the payload carried by access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// UserID returns the numeric subject of the token.
func (c *Claims) UserID() (uint64, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject %q", ErrTokenInvalid, c.Subject)
	}
	return id, nil
}

// IssuedToken is a signed token together with its expiry.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenIssuer mints and verifies HS256 tokens. Access and refresh tokens use separate secrets and TTLs.
type TokenIssuer struct {
	accessSecret  []byte
	accessTTL     time.Duration
	refreshSecret []byte
	refreshTTL    time.Duration
}

func NewTokenIssuer(accessSecret string, accessTTL time.Duration, refreshSecret string, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		accessTTL:     accessTTL,
		refreshSecret: []byte(refreshSecret),
		refreshTTL:    refreshTTL,
	}
}

// IssueAccess mints a short-lived access token.
func (i *TokenIssuer) IssueAccess(userID uint64, email string, now time.Time) (IssuedToken, error) {
	return i.sign(userID, email, now, i.accessTTL, i.accessSecret, "")
}

// IssueRefresh mints a long-lived refresh token. Each token gets a unique jti,
// so two tokens minted in the same second never share a value.
func (i *TokenIssuer) IssueRefresh(userID uint64, email string, now time.Time) (IssuedToken, error) {
	return i.sign(userID, email, now, i.refreshTTL, i.refreshSecret, uuid.NewString())
}

// VerifyAccess validates an access token.
func (i *TokenIssuer) VerifyAccess(token string) (*Claims, error) {
	return verify(token, i.accessSecret)
}

// VerifyRefresh validates a refresh token.
func (i *TokenIssuer) VerifyRefresh(token string) (*Claims, error) {
	return verify(token, i.refreshSecret)
}

func (i *TokenIssuer) sign(userID uint64, email string, now time.Time, ttl time.Duration, secret []byte, jti string) (IssuedToken, error) {
	expiresAt := now.Add(ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        jti,
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("failed to sign token: %w", err)
	}

	// NumericDate truncates to seconds, keep the stored expiry aligned with the token.
	return IssuedToken{Value: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
