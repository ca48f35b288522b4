package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"katalog/internal/config"
	"katalog/internal/model"
	"katalog/internal/session"

	"github.com/rs/zerolog"
)

type contextKey struct{}

var sessionKey contextKey

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *model.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the session stored by SessionGate, or nil.
func SessionFromContext(ctx context.Context) *model.Session {
	s, _ := ctx.Value(sessionKey).(*model.Session)
	return s
}

// TokenFromRequest reads the session token from the named cookie, falling
// back to an "Authorization: Bearer" header.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}

// SessionGate runs a fresh session gate for every request. Authorized
// requests proceed with the session in their context. Unauthorized browser
// requests are redirected to the login path with 303; other clients get 401
// and a Location header. The wrapped handler never runs for them.
func SessionGate(checker session.SessionChecker, cfg config.AuthConfig, logger zerolog.Logger) func(http.Handler) http.Handler {
	logger = logger.With().Str("middleware", "session-gate").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gate := session.NewGate(checker, logger)
			decision := gate.Enter(r.Context(), TokenFromRequest(r, cfg.CookieName))

			if decision.State == session.StateAuthorized {
				next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), decision.Session)))
				return
			}

			logger.Warn().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Bool("redirect", decision.Redirect).
				Msg("unauthorised request")

			if wantsHTML(r) {
				http.Redirect(w, r, cfg.LoginPath, http.StatusSeeOther)
				return
			}

			w.Header().Set("Location", cfg.LoginPath)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(model.ErrorResponse{
				Error:   model.ErrUnauthorised.Code,
				Message: model.ErrUnauthorised.Message,
			})
		})
	}
}

// wantsHTML reports whether the request comes from a browser navigation.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
