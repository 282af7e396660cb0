package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const resetTokenBytes = 20

// ResetToken pairs a plaintext one-time token with its stored form. Only
// Hash and ExpiresAt are persisted; Plain travels out of band to the user.
type ResetToken struct {
	Plain     string
	Hash      string
	ExpiresAt time.Time
}

// NewResetToken generates a cryptographically random reset token expiring
// after window.
func NewResetToken(window time.Duration) (ResetToken, error) {
	if window <= 0 {
		window = 10 * time.Minute
	}
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return ResetToken{}, fmt.Errorf("generate reset token: %w", err)
	}
	plain := hex.EncodeToString(buf)
	return ResetToken{
		Plain:     plain,
		Hash:      HashResetToken(plain),
		ExpiresAt: time.Now().UTC().Add(window),
	}, nil
}

// HashResetToken maps a plaintext reset token to its stored SHA-256 form.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
