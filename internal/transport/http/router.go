package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"govdesk/internal/platform/metrics"
	"govdesk/internal/platform/middleware"
	dErrors "govdesk/pkg/domain-errors"
	"govdesk/pkg/platform/httputil"
)

// Registrar is a module handler that mounts its own routes.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig carries the cross-cutting pieces every route shares.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
	Now            func() time.Time
}

// NewRouter wires the middleware chain, every module's routes and /metrics.
// Handlers stay thin and delegate to their services.
func NewRouter(cfg RouterConfig, modules ...Registrar) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(cfg.Metrics))
	r.Use(middleware.RequestTime(cfg.Now))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
	})

	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		for _, m := range modules {
			m.Register(r)
		}
	})
	return r
}
