package ports

import (
	"context"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at account creation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	// Register creates an account and returns it with a fresh session token.
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	// Login verifies credentials and returns a session token with the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Me returns the record for an already-authenticated user id.
	Me(ctx context.Context, userID string) (*domain.User, error)
	// ForgotPassword generates a reset token, persists its hash, and mails
	// the plaintext token via resetURL (the URL already embeds the token).
	ForgotPassword(ctx context.Context, email string, buildResetURL func(token string) string) error
	// ResetPassword redeems a plaintext reset token, sets the new password,
	// and returns a fresh session token with the user.
	ResetPassword(ctx context.Context, token, newPassword string) (string, *domain.User, error)
	UpdateDetails(ctx context.Context, userID, name, email string) (*domain.User, error)
	// UpdatePassword changes the password after verifying the current one
	// and returns a fresh session token.
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (string, error)
}
