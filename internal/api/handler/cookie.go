package handler

import (
	"net/http"
	"time"

	"github.com/devcamper/bootcamp-api/internal/api/middleware"
)

// CookieConfig controls how session cookies are built; injected at
// construction rather than read from ambient process state.
type CookieConfig struct {
	// ExpireDays is the cookie lifetime in days from issuance.
	ExpireDays int
	// Secure marks the cookie Secure; enabled in production mode only.
	Secure bool
}

// sessionCookie builds the HttpOnly cookie carrying a freshly issued token.
func sessionCookie(cfg CookieConfig, token string) *http.Cookie {
	days := cfg.ExpireDays
	if days <= 0 {
		days = 30
	}
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(days) * 24 * time.Hour),
		HttpOnly: true,
		Secure:   cfg.Secure,
	}
}

// expiredSessionCookie clears the session cookie on logout. The token it
// replaced stays cryptographically valid until its natural expiry.
func expiredSessionCookie(cfg CookieConfig) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   cfg.Secure,
	}
}
