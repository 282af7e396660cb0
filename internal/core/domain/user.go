package domain

import (
	"errors"
	"time"
)

const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is one a client may self-assign at
// registration. Admin accounts are provisioned out of band.
func ValidRole(role string) bool {
	return role == RoleUser || role == RolePublisher
}

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrNoSuchUser         = errors.New("no account with that email")
	ErrWrongPassword      = errors.New("password is wrong")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailDelivery      = errors.New("email could not be sent")
	ErrTooManyRequests    = errors.New("too many requests")
	ErrForbidden          = errors.New("access forbidden")
)

// User models an account holder. PasswordHash is never serialised; the
// reset fields are both set while a password reset is pending and both
// cleared on redemption or password change.
type User struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	Role                   string     `json:"role"`
	PasswordHash           string     `json:"-"`
	ResetPasswordTokenHash string     `json:"-"`
	ResetPasswordExpiresAt *time.Time `json:"-"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// HasPendingReset reports whether an unredeemed reset token is stored.
func (u *User) HasPendingReset() bool {
	return u.ResetPasswordTokenHash != "" && u.ResetPasswordExpiresAt != nil
}
