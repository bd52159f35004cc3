package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govdesk/internal/platform/metrics"
	"govdesk/internal/platform/middleware"
	"govdesk/pkg/platform/httputil"
	"govdesk/pkg/requestcontext"
)

type echoModule struct{}

func (echoModule) Register(r chi.Router) {
	r.Get("/api/echo", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"now": requestcontext.Now(r.Context()).Format(time.RFC3339),
		})
	})
	r.Post("/api/echo", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/api/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	fixed := time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC)
	return NewRouter(RouterConfig{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:        metrics.NewWith(reg),
		Gatherer:       reg,
		RequestTimeout: time.Second,
		Now:            func() time.Time { return fixed },
	}, echoModule{})
}

func TestRouterMountsModules(t *testing.T) {
	router := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/echo", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"now":"2026-01-10T08:30:00Z"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(middleware.HeaderRequestID))
}

func TestRouterErrors(t *testing.T) {
	router := newTestRouter(t)

	t.Run("unknown route", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), `"error":"not_found"`)
	})

	t.Run("wrong method", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/echo", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})

	t.Run("panic", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/panic", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"internal_error"}`, rr.Body.String())
	})

	t.Run("non json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader("a=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRouterServesMetrics(t *testing.T) {
	router := newTestRouter(t)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/echo", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "govdesk_http_requests_total")
}
