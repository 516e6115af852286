package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/karigor/search-service/internal/service"
	"github.com/karigor/search-service/pkg/health"
	"github.com/karigor/search-service/pkg/middleware"
)

// NewRouter creates the chi router with all search service routes registered.
func NewRouter(
	searchService *service.SearchService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	pprofAllowedCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.Identity)
	r.Use(middleware.PrometheusMetrics("search"))
	r.Use(middleware.Tracing("search"))
	r.Use(middleware.RequestLogging(logger))
	// RequestLogger last so correlation_id and the span context are set.
	r.Use(middleware.RequestLogger(logger))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	if len(pprofAllowedCIDRs) > 0 {
		middleware.RegisterPprof(r, pprofAllowedCIDRs, logger)
	}
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	searchHandler := NewSearchHandler(searchService, logger)

	r.Route("/api/v1/search", func(r chi.Router) {
		r.Get("/", searchHandler.Search)
		r.Get("/suggestions", searchHandler.Suggestions)
		r.Get("/filters", searchHandler.Filters)
		r.Get("/popular", searchHandler.Popular)
		r.Post("/reindex", searchHandler.Reindex)
	})

	return r
}
