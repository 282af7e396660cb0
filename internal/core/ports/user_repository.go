package ports

import (
	"context"
	"time"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

// UserRepository defines persistence operations for user credentials.
// Implementations provide per-document atomicity; no multi-document
// transactions are required by the callers.
type UserRepository interface {
	// Create inserts a new user. A uniqueness violation on email maps to
	// domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByResetTokenHash retrieves the user whose stored reset token hash
	// matches AND whose reset expiry is after now. A miss for any reason
	// (no hash, wrong hash, expired) maps to domain.ErrUserNotFound.
	FindByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	UpdateDetails(ctx context.Context, id, name, email string) (*domain.User, error)
	// UpdatePassword stores a new password hash and clears any pending
	// reset token fields in the same write.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetResetToken stores a reset token hash and expiry, overwriting any
	// previous pending token (last request wins).
	SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id string) error
}
