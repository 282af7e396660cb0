package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-api/internal/api/middleware"
	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error)
	loginFn          func(ctx context.Context, email, password string) (string, *domain.User, error)
	meFn             func(ctx context.Context, userID string) (*domain.User, error)
	forgotFn         func(ctx context.Context, email string, buildResetURL func(string) string) error
	resetFn          func(ctx context.Context, token, newPassword string) (string, *domain.User, error)
	updateDetailsFn  func(ctx context.Context, userID, name, email string) (*domain.User, error)
	updatePasswordFn func(ctx context.Context, userID, currentPassword, newPassword string) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string, buildResetURL func(string) string) error {
	return s.forgotFn(ctx, email, buildResetURL)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, newPassword string) (string, *domain.User, error) {
	return s.resetFn(ctx, token, newPassword)
}

func (s *stubAuthService) UpdateDetails(ctx context.Context, userID, name, email string) (*domain.User, error) {
	return s.updateDetailsFn(ctx, userID, name, email)
}

func (s *stubAuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (string, error) {
	return s.updatePasswordFn(ctx, userID, currentPassword, newPassword)
}

type stubLimiter struct {
	allow bool
}

func (l *stubLimiter) Allow(context.Context, string, string) (bool, error) {
	return l.allow, nil
}

// errorEnvelope mirrors the central handler's error body for assertions.
type testErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = testErrorHandler
	return e
}

// testErrorHandler mimics the api package boundary: map domain errors to
// statuses and render the uniform envelope.
func testErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	switch {
	case err == domain.ErrMissingCredentials, err == domain.ErrInvalidResetToken, err == domain.ErrEmailTaken:
		code = http.StatusBadRequest
	case err == domain.ErrNoSuchUser, err == domain.ErrWrongPassword, err == domain.ErrPasswordTooShort:
		code = http.StatusUnauthorized
	case err == domain.ErrForbidden:
		code = http.StatusForbidden
	case err == domain.ErrUserNotFound, err == domain.ErrBootcampNotFound:
		code = http.StatusNotFound
	case err == domain.ErrTooManyRequests:
		code = http.StatusTooManyRequests
	}
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	_ = c.JSON(code, testErrorEnvelope{Success: false, Error: err.Error()})
}

func newAuthHandler(svc ports.AuthService, limiter ports.RateLimiter) *AuthHandler {
	return NewAuthHandler(svc, limiter, CookieConfig{ExpireDays: 30}, zerolog.Nop())
}

func doJSON(e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := http.Response{Header: rec.Header()}
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, string, error) {
			if input.Name != "A" || input.Email != "a@x.com" || input.Role != "user" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "user_1", Name: input.Name, Email: input.Email, Role: input.Role}, "token123", nil
		},
	}
	h := newAuthHandler(stub, nil)

	rec, c := doJSON(e, http.MethodPost, "/api/v1/auth/register", `{"name":"A","email":"a@x.com","password":"secret1","role":"user"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Token != "token123" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	cookie := findCookie(rec, middleware.SessionCookieName)
	if cookie == nil {
		t.Fatalf("session cookie not set")
	}
	if cookie.Value != "token123" || !cookie.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if cookie.Secure {
		t.Fatalf("cookie must not be Secure outside production mode")
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	h := newAuthHandler(&stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, string, error) {
			t.Fatalf("service should not be called")
			return nil, "", nil
		},
	}, nil)

	rec, c := doJSON(e, http.MethodPost, "/api/v1/auth/register", `{"name":"A","email":"not-an-email","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	e := newTestEcho()
	h := newAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrWrongPassword
		},
	}, nil)

	rec, c := doJSON(e, http.MethodPost, "/api/v1/auth/login", `{"email":"a@x.com","password":"bad"}`)
	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp testErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Success {
		t.Fatalf("error envelope reports success")
	}
}

func TestAuthHandler_Login_RateLimited(t *testing.T) {
	e := newTestEcho()
	h := newAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			t.Fatalf("service should not be called when rate limited")
			return "", nil, nil
		},
	}, &stubLimiter{allow: false})

	rec, c := doJSON(e, http.MethodPost, "/api/v1/auth/login", `{"email":"a@x.com","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	h := newAuthHandler(&stubAuthService{
		meFn: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "user_1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.User{ID: userID, Name: "A", Email: "a@x.com", Role: "user"}, nil
		},
	}, nil)

	rec, c := doJSON(e, http.MethodGet, "/api/v1/auth/me", "")
	c.Set("user_id", "user_1")
	c.Set("role", "user")

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok || data["email"] != "a@x.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := data["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_ForgotPassword_Success(t *testing.T) {
	e := newTestEcho()
	h := newAuthHandler(&stubAuthService{
		forgotFn: func(_ context.Context, email string, buildResetURL func(string) string) error {
			if email != "a@x.com" {
				t.Fatalf("unexpected email: %s", email)
			}
			url := buildResetURL("tok123")
			if !strings.Contains(url, "/api/v1/auth/resetpassword/tok123") {
				t.Fatalf("unexpected reset url: %s", url)
			}
			return nil
		},
	}, nil)

	rec, c := doJSON(e, http.MethodPost, "/api/v1/auth/forgotpassword", `{"email":"a@x.com"}`)
	if err := h.ForgotPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp dataResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Data != "Email sent" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_ForgotPassword_DeliveryFailed(t *testing.T) {
	e := newTestEcho()
	h := newAuthHandler(&stubAuthService{
		forgotFn: func(context.Context, string, func(string) string) error {
			return domain.ErrEmailDelivery
		},
	}, nil)

	rec, c := doJSON(e, http.MethodPost, "/api/v1/auth/forgotpassword", `{"email":"a@x.com"}`)
	if err := h.ForgotPassword(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	e := newTestEcho()
	h := newAuthHandler(&stubAuthService{
		resetFn: func(_ context.Context, token, newPassword string) (string, *domain.User, error) {
			if token != "tok123" || newPassword != "newpass1" {
				t.Fatalf("unexpected args: %s %s", token, newPassword)
			}
			return "fresh-token", &domain.User{ID: "user_1"}, nil
		},
	}, nil)

	rec, c := doJSON(e, http.MethodPut, "/api/v1/auth/resetpassword/tok123", `{"password":"newpass1"}`)
	c.SetParamNames("resettoken")
	c.SetParamValues("tok123")

	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if findCookie(rec, middleware.SessionCookieName) == nil {
		t.Fatalf("session cookie not set")
	}
}

func TestAuthHandler_ResetPassword_InvalidToken(t *testing.T) {
	e := newTestEcho()
	h := newAuthHandler(&stubAuthService{
		resetFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidResetToken
		},
	}, nil)

	rec, c := doJSON(e, http.MethodPut, "/api/v1/auth/resetpassword/bad", `{"password":"newpass1"}`)
	c.SetParamNames("resettoken")
	c.SetParamValues("bad")

	if err := h.ResetPassword(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_UpdatePassword_WrongCurrent(t *testing.T) {
	e := newTestEcho()
	h := newAuthHandler(&stubAuthService{
		updatePasswordFn: func(context.Context, string, string, string) (string, error) {
			return "", domain.ErrWrongPassword
		},
	}, nil)

	rec, c := doJSON(e, http.MethodPut, "/api/v1/auth/updatepassword", `{"currentPassword":"bad","newPassword":"newpass1"}`)
	c.Set("user_id", "user_1")
	c.Set("role", "user")

	if err := h.UpdatePassword(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := newTestEcho()
	h := newAuthHandler(&stubAuthService{}, nil)

	rec, c := doJSON(e, http.MethodGet, "/api/v1/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookie := findCookie(rec, middleware.SessionCookieName)
	if cookie == nil {
		t.Fatalf("clearing cookie not set")
	}
	if cookie.Value != "none" {
		t.Fatalf("cookie value %q, want none", cookie.Value)
	}
}
