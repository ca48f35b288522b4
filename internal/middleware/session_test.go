package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"katalog/internal/config"
	"katalog/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSessionChecker is a mock implementation of session.SessionChecker.
type MockSessionChecker struct {
	mock.Mock
}

func (m *MockSessionChecker) GetSession(ctx context.Context, token string) (*model.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

var testAuth = config.AuthConfig{CookieName: "katalog_session", LoginPath: "/admin"}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{name: "Cookie", cookie: "from-cookie", want: "from-cookie"},
		{name: "Bearer header", header: "Bearer from-header", want: "from-header"},
		{name: "Cookie wins", cookie: "from-cookie", header: "Bearer from-header", want: "from-cookie"},
		{name: "Other scheme", header: "Basic abc", want: ""},
		{name: "Nothing", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/api/products", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "katalog_session", Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			assert.Equal(t, tt.want, TokenFromRequest(req, "katalog_session"))
		})
	}
}

func TestSessionGate(t *testing.T) {
	live := &model.Session{Token: "tok", UserID: 1, Email: "admin@example.com"}

	tests := []struct {
		name           string
		token          string
		accept         string
		session        *model.Session
		err            error
		expectedStatus int
		expectHandler  bool
		expectLocation string
	}{
		{
			name:           "Live session",
			token:          "tok",
			session:        live,
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:           "No session, API client",
			token:          "tok",
			expectedStatus: http.StatusUnauthorized,
			expectLocation: "/admin",
		},
		{
			name:           "No session, browser",
			token:          "tok",
			accept:         "text/html,application/xhtml+xml",
			expectedStatus: http.StatusSeeOther,
			expectLocation: "/admin",
		},
		{
			name:           "Lookup failure fails closed",
			token:          "tok",
			err:            errors.New("redis down"),
			expectedStatus: http.StatusUnauthorized,
			expectLocation: "/admin",
		},
		{
			name:           "Missing token",
			token:          "",
			expectedStatus: http.StatusUnauthorized,
			expectLocation: "/admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := new(MockSessionChecker)
			checker.On("GetSession", mock.Anything, tt.token).Return(tt.session, tt.err)

			var seen *model.Session
			handlerCalled := false
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				seen = SessionFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := SessionGate(checker, testAuth, zerolog.Nop())(testHandler)

			req := httptest.NewRequest(http.MethodGet, "/admin/api/products", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectHandler, handlerCalled)
			assert.Equal(t, tt.expectLocation, w.Header().Get("Location"))
			if tt.expectHandler {
				require.NotNil(t, seen)
				assert.Equal(t, live.Email, seen.Email)
			}
			checker.AssertNumberOfCalls(t, "GetSession", 1)
		})
	}
}

func TestSessionGate_FreshGatePerRequest(t *testing.T) {
	checker := new(MockSessionChecker)
	checker.On("GetSession", mock.Anything, "tok").Return(nil, nil).Once()
	checker.On("GetSession", mock.Anything, "tok").Return(&model.Session{Token: "tok", UserID: 1}, nil).Once()

	handler := SessionGate(checker, testAuth, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/admin/api/products", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusOK}, codes)
}

func TestSessionFromContext_Empty(t *testing.T) {
	assert.Nil(t, SessionFromContext(context.Background()))
}
