package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Hussein-shsx3/Server-New-Project/app/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenMinter produces the two kinds of credential the service hands out:
// opaque random single-use tokens (email verification, password reset) and
// signed, time-bound session tokens. It is constructed from the Config once;
// nothing here touches the environment at call time.
type TokenMinter struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenMinter(cfg config.Config) *TokenMinter {
	return &TokenMinter{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// SessionClaims are the JWT claims for both session token kinds. Subject is
// the account ID; ID is a per-token JTI used by the logout blacklist.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into an account ID.
func (c *SessionClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// RandomToken returns an unguessable opaque token (32 random bytes,
// base64url). The raw value is emailed to the user; only its hash is stored.
func (m *TokenMinter) RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashToken is the storage form of a single-use token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (m *TokenMinter) AccessTokenTTL() time.Duration  { return m.accessTTL }
func (m *TokenMinter) RefreshTokenTTL() time.Duration { return m.refreshTTL }

// SignAccessToken mints the short-lived session token.
func (m *TokenMinter) SignAccessToken(userID uuid.UUID) (string, error) {
	return m.signedToken(userID, m.accessSecret, m.accessTTL)
}

// SignRefreshToken mints the long-lived session token with the distinct
// refresh secret.
func (m *TokenMinter) SignRefreshToken(userID uuid.UUID) (string, error) {
	return m.signedToken(userID, m.refreshSecret, m.refreshTTL)
}

func (m *TokenMinter) signedToken(userID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	jti, err := m.RandomToken()
	if err != nil {
		return "", err
	}
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccessToken checks signature and expiry of an access token.
func (m *TokenMinter) VerifyAccessToken(tokenStr string) (*SessionClaims, error) {
	return verifySignedToken(tokenStr, m.accessSecret)
}

// VerifyRefreshToken checks signature and expiry of a refresh token.
func (m *TokenMinter) VerifyRefreshToken(tokenStr string) (*SessionClaims, error) {
	return verifySignedToken(tokenStr, m.refreshSecret)
}

func verifySignedToken(tokenStr string, secret []byte) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
