package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/service"
)

func newIssuer(t *testing.T) *service.TokenIssuer {
	t.Helper()
	issuer, err := service.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return issuer
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func runAuth(t *testing.T, issuer *service.TokenIssuer, decorate func(*http.Request)) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := Auth(issuer)(okHandler)(c)
	return rec, c, err
}

func TestAuth_CookieToken(t *testing.T) {
	issuer := newIssuer(t)
	token, err := issuer.Issue("user_1", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, c, authErr := runAuth(t, issuer, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	})
	if authErr != nil {
		t.Fatalf("middleware rejected valid cookie: %v", authErr)
	}
	if got, _ := c.Get("user_id").(string); got != "user_1" {
		t.Fatalf("user_id = %q, want user_1", got)
	}
	if got, _ := c.Get("role").(string); got != domain.RoleUser {
		t.Fatalf("role = %q, want %q", got, domain.RoleUser)
	}
}

func TestAuth_BearerToken(t *testing.T) {
	issuer := newIssuer(t)
	token, err := issuer.Issue("user_2", domain.RolePublisher)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, c, authErr := runAuth(t, issuer, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	if authErr != nil {
		t.Fatalf("middleware rejected valid bearer token: %v", authErr)
	}
	if got, _ := c.Get("user_id").(string); got != "user_2" {
		t.Fatalf("user_id = %q, want user_2", got)
	}
}

func TestAuth_ClearedCookieFallsThroughToHeader(t *testing.T) {
	issuer := newIssuer(t)
	token, err := issuer.Issue("user_3", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// A logged-out cookie holds the placeholder value "none"; the bearer
	// header must still be honored.
	_, c, authErr := runAuth(t, issuer, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "none"})
		req.Header.Set("Authorization", "Bearer "+token)
	})
	if authErr != nil {
		t.Fatalf("middleware rejected bearer token behind cleared cookie: %v", authErr)
	}
	if got, _ := c.Get("user_id").(string); got != "user_3" {
		t.Fatalf("user_id = %q, want user_3", got)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	issuer := newIssuer(t)

	_, _, authErr := runAuth(t, issuer, nil)
	he, ok := authErr.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", authErr)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	issuer := newIssuer(t)

	_, _, authErr := runAuth(t, issuer, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-jwt")
	})
	he, ok := authErr.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", authErr)
	}
}

func TestAuth_TokenFromAnotherSecret(t *testing.T) {
	other, err := service.NewTokenIssuer("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	token, err := other.Issue("user_1", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, _, authErr := runAuth(t, newIssuer(t), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	he, ok := authErr.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", authErr)
	}
}
