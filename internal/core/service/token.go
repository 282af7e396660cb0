package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

// sessionClaims are the claims embedded in a session token. Subject carries
// the user id so tokens verify back to an identity without a session table.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and verifies signed, time-limited session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer from explicit configuration. The ttl
// falls back to 24h when unset.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token issuer requires a signing secret")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs an HS256 token identifying userID, expiring after the
// configured ttl.
func (t *TokenIssuer) Issue(userID, role string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses a token and returns the embedded user id and role.
// Expired tokens, bad signatures, and foreign algorithms all map to
// domain.ErrInvalidToken.
func (t *TokenIssuer) Verify(token string) (userID, role string, err error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", "", domain.ErrInvalidToken
	}
	return claims.Subject, claims.Role, nil
}

// TTL exposes the configured token lifetime.
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}
