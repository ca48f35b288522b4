package router

import (
	"net/http"

	"katalog/internal/config"
	"katalog/internal/handler"
	"katalog/internal/middleware"
	"katalog/internal/session"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// ImagesPrefix is where locally stored images are served.
const ImagesPrefix = "/images/"

// New creates a new HTTP router with all routes and middleware configured.
// images serves locally stored objects under ImagesPrefix; pass nil when
// images live in a remote bucket.
func New(
	productHandler *handler.ProductHandler,
	catalogHandler *handler.CatalogHandler,
	authHandler *handler.AuthHandler,
	sessions session.SessionChecker,
	authCfg config.AuthConfig,
	images http.Handler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public catalogue
	mux.HandleFunc("GET /api/catalog", catalogHandler.Bestsellers)
	if images != nil {
		mux.Handle("GET "+ImagesPrefix, http.StripPrefix(ImagesPrefix, images))
	}

	// Login boundary
	mux.HandleFunc("GET /admin/session", authHandler.Session)
	mux.HandleFunc("POST /admin/login", authHandler.Login)

	// Everything below runs behind a fresh session gate per request
	gate := middleware.SessionGate(sessions, authCfg, logger)
	protect := func(h http.HandlerFunc) http.Handler { return gate(h) }

	mux.Handle("POST /admin/logout", protect(authHandler.Logout))
	mux.Handle("GET /admin/api/products", protect(productHandler.List))
	mux.Handle("POST /admin/api/products", protect(productHandler.Create))
	mux.Handle("GET /admin/api/products/{id}", protect(productHandler.GetByID))
	mux.Handle("PUT /admin/api/products/{id}", protect(productHandler.Update))
	mux.Handle("DELETE /admin/api/products/{id}", protect(productHandler.Delete))

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Metrics(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
