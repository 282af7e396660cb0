package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

func runRBAC(t *testing.T, role string, allowed ...string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bootcamps", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}
	return RequireRoles(allowed...)(okHandler)(c)
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		allowed []string
		wantOK  bool
	}{
		{"publisher allowed", domain.RolePublisher, []string{domain.RolePublisher, domain.RoleAdmin}, true},
		{"admin allowed", domain.RoleAdmin, []string{domain.RolePublisher, domain.RoleAdmin}, true},
		{"user rejected", domain.RoleUser, []string{domain.RolePublisher, domain.RoleAdmin}, false},
		{"missing role rejected", "", []string{domain.RolePublisher, domain.RoleAdmin}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runRBAC(t, tt.role, tt.allowed...)
			if tt.wantOK {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusForbidden {
				t.Fatalf("expected 403 HTTPError, got %v", err)
			}
		})
	}
}
