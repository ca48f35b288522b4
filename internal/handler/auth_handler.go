package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"katalog/internal/config"
	"katalog/internal/middleware"
	"katalog/internal/model"
	"katalog/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// loginResponse is returned on a successful sign-in. The token is also set
// as a cookie; API clients send it back as a bearer token.
type loginResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthHandler handles admin sign-in, sign-out and session checks.
type AuthHandler struct {
	sessions session.Service
	cfg      config.AuthConfig
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(sessions session.Service, cfg config.AuthConfig, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /admin/login requests with a JSON or form body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
			return
		}
	} else {
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "email and password are required", h.logger)
		return
	}

	sess, err := h.sessions.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	expires := sess.CreatedAt.Add(h.cfg.SessionTTL)
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, loginResponse{Token: sess.Token, Email: sess.Email, ExpiresAt: expires})
}

// Logout handles POST /admin/logout requests. It runs behind the session
// gate, revokes the session and sends the browser back to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		if err := h.sessions.SignOut(r.Context(), sess.Token); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.cfg.LoginPath, http.StatusSeeOther)
}

// Session handles GET /admin/session requests from the login page: 200 with
// the session when already signed in, 401 otherwise.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.GetSession(r.Context(), middleware.TokenFromRequest(r, h.cfg.CookieName))
	if err != nil {
		h.logger.Warn().Err(err).Msg("session check failed")
	}
	if err != nil || sess == nil {
		writeJSON(w, http.StatusUnauthorized, model.ErrorResponse{
			Error:   model.ErrUnauthorised.Code,
			Message: model.ErrUnauthorised.Message,
		})
		return
	}

	writeJSON(w, http.StatusOK, sess)
}
