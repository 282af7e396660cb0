package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-api/internal/api/metrics"
	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

// AuthHandler exposes the authentication routes. All domain failures are
// returned as errors and mapped to statuses at the single error boundary.
type AuthHandler struct {
	authService ports.AuthService
	limiter     ports.RateLimiter
	cookie      CookieConfig
	logger      zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, limiter ports.RateLimiter, cookie CookieConfig, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		limiter:     limiter,
		cookie:      cookie,
		logger:      logger,
	}
}

// Register creates a new account and issues a session token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]any
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, token, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return h.sendToken(c, token)
}

// Login verifies credentials and issues a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.allow(c, "login", req.Email); err != nil {
		metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
		return err
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case domain.ErrWrongPassword:
			metrics.LoginsTotal.WithLabelValues("wrong_password").Inc()
		case domain.ErrNoSuchUser:
			metrics.LoginsTotal.WithLabelValues("no_such_user").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return h.sendToken(c, token)
}

// Me returns the authenticated user's record.
//
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]any
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Data: user})
}

// ForgotPassword requests a password reset token, delivered by email.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  dataResponse
// @Failure      404   {object}  map[string]any
// @Failure      429   {object}  map[string]any
// @Failure      500   {object}  map[string]any
// @Router       /auth/forgotpassword [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.allow(c, "forgotpassword", req.Email); err != nil {
		return err
	}

	scheme := c.Scheme()
	host := c.Request().Host
	buildResetURL := func(token string) string {
		return fmt.Sprintf("%s://%s/api/v1/auth/resetpassword/%s", scheme, host, token)
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email, buildResetURL); err != nil {
		if err == domain.ErrEmailDelivery {
			metrics.PasswordResetsTotal.WithLabelValues("delivery_failed").Inc()
		}
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: "Email sent"})
}

// ResetPassword redeems a reset token from the URL path and sets a new
// password. The path carries the plaintext one-time token.
//
// @Summary      Reset password with a one-time token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        resettoken  path      string                true  "Plaintext reset token"
// @Param        body        body      resetPasswordRequest  true  "New password"
// @Success      200         {object}  tokenResponse
// @Failure      400         {object}  map[string]any
// @Router       /auth/resetpassword/{resettoken} [put]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, _, err := h.authService.ResetPassword(c.Request().Context(), c.Param("resettoken"), req.Password)
	if err != nil {
		if err == domain.ErrInvalidResetToken {
			metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("redeemed").Inc()
	return h.sendToken(c, token)
}

// UpdateDetails updates the authenticated user's name and email.
//
// @Summary      Update account details
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateDetailsRequest  true  "New details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /auth/updatedetails [put]
func (h *AuthHandler) UpdateDetails(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateDetailsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateDetails(c.Request().Context(), userID, req.Name, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Data: user})
}

// UpdatePassword changes the authenticated user's password and issues a
// fresh session token.
//
// @Summary      Update password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Current and new password"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  map[string]any
// @Router       /auth/updatepassword [put]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.UpdatePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	return h.sendToken(c, token)
}

// Logout clears the session cookie. No server-side invalidation happens;
// the token stays valid until its natural expiry.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(expiredSessionCookie(h.cookie))
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "You successfully logged out"})
}

// sendToken writes the token response body and the matching session cookie.
func (h *AuthHandler) sendToken(c echo.Context, token string) error {
	c.SetCookie(sessionCookie(h.cookie, token))
	return c.JSON(http.StatusOK, tokenResponse{Success: true, Token: token})
}

// allow consults the rate limiter; limiter outages fail open.
func (h *AuthHandler) allow(c echo.Context, action, email string) error {
	if h.limiter == nil {
		return nil
	}
	ok, err := h.limiter.Allow(c.Request().Context(), action, email+":"+c.RealIP())
	if err != nil {
		h.logger.Warn().Err(err).Str("action", action).Msg("rate limiter unavailable")
		return nil
	}
	if !ok {
		return domain.ErrTooManyRequests
	}
	return nil
}
