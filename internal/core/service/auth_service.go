package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

const minPasswordLen = 6

// AuthService implements registration, login, and the password reset
// lifecycle. It holds no per-request state.
type AuthService struct {
	users       ports.UserRepository
	mailer      ports.Mailer
	issuer      *TokenIssuer
	resetWindow time.Duration
	logger      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, mailer ports.Mailer, issuer *TokenIssuer, resetWindow time.Duration, logger zerolog.Logger) *AuthService {
	if resetWindow <= 0 {
		resetWindow = 10 * time.Minute
	}
	return &AuthService{
		users:       users,
		mailer:      mailer,
		issuer:      issuer,
		resetWindow: resetWindow,
		logger:      logger,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, "", domain.ErrInvalidInput
	}
	if len(input.Password) < minPasswordLen {
		return nil, "", domain.ErrPasswordTooShort
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, "", domain.ErrInvalidInput
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        normalizeEmail(input.Email),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issuer.Issue(created.ID, created.Role)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrMissingCredentials
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrNoSuchUser
		}
		return "", nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrWrongPassword
	}

	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// ForgotPassword stores a hashed one-time reset token on the user record
// and mails the plaintext token. A failed send triggers a compensating
// write clearing the pending reset state before the error is surfaced.
func (s *AuthService) ForgotPassword(ctx context.Context, email string, buildResetURL func(token string) string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	reset, err := NewResetToken(s.resetWindow)
	if err != nil {
		return err
	}

	if err := s.users.SetResetToken(ctx, user.ID, reset.Hash, reset.ExpiresAt); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"You are receiving this email because a password reset was requested for your account. Send a PUT request to: %s",
		buildResetURL(reset.Plain),
	)
	if err := s.mailer.Send(ctx, user.Email, "Password reset token", body); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("reset email delivery failed")
		if clearErr := s.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.logger.Error().Err(clearErr).Str("user_id", user.ID).Msg("failed to clear reset token after delivery failure")
		}
		return domain.ErrEmailDelivery
	}

	s.logger.Info().Str("user_id", user.ID).Time("expires_at", reset.ExpiresAt).Msg("password reset requested")
	return nil
}

// ResetPassword redeems a plaintext reset token. The lookup matches the
// stored hash AND an expiry still in the future, so expired or already
// redeemed tokens miss identically.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (string, *domain.User, error) {
	if len(newPassword) < minPasswordLen {
		return "", nil, domain.ErrPasswordTooShort
	}

	user, err := s.users.FindByResetTokenHash(ctx, HashResetToken(token), time.Now().UTC())
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidResetToken
		}
		return "", nil, err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return "", nil, err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return "", nil, err
	}

	sessionToken, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset redeemed")
	return sessionToken, user, nil
}

func (s *AuthService) UpdateDetails(ctx context.Context, userID, name, email string) (*domain.User, error) {
	if name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.users.UpdateDetails(ctx, userID, name, normalizeEmail(email))
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if !CheckPassword(currentPassword, user.PasswordHash) {
		return "", domain.ErrWrongPassword
	}
	if len(newPassword) < minPasswordLen {
		return "", domain.ErrPasswordTooShort
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return "", err
	}

	return s.issuer.Issue(user.ID, user.Role)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
