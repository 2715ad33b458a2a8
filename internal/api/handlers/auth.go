package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/config"
	"github.com/trendprints/storefront/internal/errors"
	"github.com/trendprints/storefront/internal/metrics"
	"github.com/trendprints/storefront/internal/models"
	service "github.com/trendprints/storefront/internal/services"
	"github.com/trendprints/storefront/internal/utils/response"
)

// AuthHandler serves the signup, login and logout forms. Failures are
// answered in plain text, successes redirect to the dashboard.
type AuthHandler struct {
	userService    service.UserService
	sessionService service.SessionService
	cookie         config.Security
	validator      *validator.Validate
}

func NewAuthHandler(userService service.UserService, sessionService service.SessionService, cookie config.Security) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		sessionService: sessionService,
		cookie:         cookie,
		validator:      validator.New(),
	}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionService.TTL() / time.Second),
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func dashboardURL(username string) string {
	return "/dashboard?user=" + url.QueryEscape(username)
}

// startSession issues the cookie for user and redirects to the dashboard.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *models.User, failure string) {

	logger := middleware.LoggerFromContext(r.Context())

	token, err := h.sessionService.Start(r.Context(), user)
	if err != nil {
		logger.Error("Failed to start session", slog.String("userId", user.ID.Hex()), slog.Any("error", err))
		response.PlainText(w, http.StatusInternalServerError, failure)
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, dashboardURL(user.Username), http.StatusFound)
}

func (h *AuthHandler) Signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if err := r.ParseForm(); err != nil {
			response.PlainText(w, http.StatusBadRequest, "Invalid form data")
			return
		}

		req := models.SignupRequest{
			Username: r.PostFormValue("username"),
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		}

		if err := h.validator.Struct(&req); err != nil {
			logger.Warn("Invalid signup form", slog.String("error", err.Error()))
			response.PlainText(w, http.StatusBadRequest, "Username, valid email and password are required")
			return
		}

		user, err := h.userService.Signup(r.Context(), &req)
		if err != nil {
			if appErr, ok := errors.IsAppError(err); ok {
				switch appErr.Code {
				case errors.ErrCodeDuplicateEntry:
					logger.Info("Signup with existing email")
					response.PlainText(w, http.StatusOK, appErr.Message)
					return
				case errors.ErrCodeValidation:
					response.PlainText(w, http.StatusBadRequest, appErr.Message)
					return
				}
			}

			logger.Error("Signup failed", slog.Any("error", err))
			response.PlainText(w, http.StatusInternalServerError, "Signup error")
			return
		}

		logger.Info("User signed up", slog.String("userId", user.ID.Hex()))
		h.startSession(w, r, user, "Signup error")
	}
}

func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if err := r.ParseForm(); err != nil {
			response.PlainText(w, http.StatusBadRequest, "Invalid form data")
			return
		}

		req := models.LoginRequest{
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		}

		if err := h.validator.Struct(&req); err != nil {
			response.PlainText(w, http.StatusOK, "Invalid email or password")
			return
		}

		result, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.Any("error", err))
			response.PlainText(w, http.StatusInternalServerError, "Login error")
			return
		}

		if !result.Success {
			if result.RetryAfter > 0 {
				metrics.LoginAttempt(metrics.LoginThrottled)
				logger.Warn("Login throttled", slog.Int("retryAfter", result.RetryAfter))
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
				response.PlainText(w, http.StatusTooManyRequests, result.Message)
				return
			}

			metrics.LoginAttempt(metrics.LoginRejected)
			response.PlainText(w, http.StatusOK, result.Message)
			return
		}

		metrics.LoginAttempt(metrics.LoginSuccess)
		logger.Info("User logged in", slog.String("userId", result.User.ID.Hex()))
		h.startSession(w, r, result.User, "Login error")
	}
}

// Logout destroys the server side session and sends the caller home.
func (h *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if cookie, err := r.Cookie(h.cookie.CookieName); err == nil && cookie.Value != "" {
			if err := h.sessionService.End(r.Context(), cookie.Value); err != nil {
				middleware.LoggerFromContext(r.Context()).Error("Failed to end session", slog.Any("error", err))
			}
		}

		h.clearSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// CheckSession reports whether the caller is logged in.
func (h *AuthHandler) CheckSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		status := models.SessionStatus{}

		if session, ok := middleware.SessionFromContext(r.Context()); ok {
			status = models.SessionStatus{
				LoggedIn: true,
				Username: session.Username,
				IsAdmin:  session.IsAdmin(),
			}
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
