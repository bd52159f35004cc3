package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"govdesk/internal/submission/models"
	"govdesk/pkg/domain"
	dErrors "govdesk/pkg/domain-errors"
	"govdesk/pkg/platform/httputil"
	"govdesk/pkg/requestcontext"
)

// Service defines the submission operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, req models.CreateSubmissionRequest, baseURL string) (*models.CreatedSubmission, error)
	ListAll(ctx context.Context, lang models.Lang) ([]models.View, error)
	ListByService(ctx context.Context, serviceID int, lang models.Lang) ([]models.View, error)
	ListForUser(ctx context.Context, email string, lang models.Lang) ([]models.View, error)
	View(ctx context.Context, id domain.SubmissionID, viewer string, lang models.Lang) (models.View, error)
	MarkViewed(ctx context.Context, id domain.SubmissionID, adminID string) error
	Update(ctx context.Context, id domain.SubmissionID, req models.UpdateSubmissionRequest) (string, models.View, error)
	Stats(ctx context.Context) (models.Stats, error)
}

// Handler serves /api/submissions and /api/health.
type Handler struct {
	logger        *slog.Logger
	service       Service
	publicBaseURL string
}

// New creates a submission Handler. An empty publicBaseURL derives the QR
// link base from each request.
func New(service Service, logger *slog.Logger, publicBaseURL string) *Handler {
	return &Handler{
		logger:        logger,
		service:       service,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Register registers the submission routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/health", h.handleHealth)
	r.Route("/api/submissions", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Post("/create", h.handleCreate)
		r.Get("/create", h.handleHealth)
		r.Get("/list", h.handleList)
		r.Get("/user", h.handleListForUser)
		r.Get("/{id}", h.handleGet)
		r.Post("/{id}/view", h.handleMarkViewed)
		r.Patch("/{id}", h.handleUpdate)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.CreateSubmissionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid create submission request", err)
		return
	}
	created, err := h.service.Create(ctx, req, h.baseURL(r))
	if err != nil {
		h.fail(ctx, w, "failed to create submission", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, models.CreateSubmissionResponse{Success: true, Submission: *created})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	lang := models.ParseLang(q.Get("lang"))

	var (
		views []models.View
		err   error
	)
	if raw := strings.TrimSpace(q.Get("serviceId")); raw != "" {
		serviceID, convErr := strconv.Atoi(raw)
		if convErr != nil {
			h.fail(ctx, w, "invalid serviceId", dErrors.New(dErrors.CodeBadRequest, "serviceId must be an integer"))
			return
		}
		views, err = h.service.ListByService(ctx, serviceID, lang)
	} else {
		views, err = h.service.ListAll(ctx, lang)
	}
	if err != nil {
		h.fail(ctx, w, "failed to list submissions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ListSubmissionsResponse{Success: true, Submissions: views})
}

func (h *Handler) handleListForUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	views, err := h.service.ListForUser(ctx, q.Get("email"), models.ParseLang(q.Get("lang")))
	if err != nil {
		h.fail(ctx, w, "failed to list user submissions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ListSubmissionsResponse{Success: true, Submissions: views})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseSubmissionID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(ctx, w, "invalid submission id", err)
		return
	}
	q := r.URL.Query()
	view, err := h.service.View(ctx, id, q.Get("viewer"), models.ParseLang(q.Get("lang")))
	if err != nil {
		h.fail(ctx, w, "failed to get submission", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.SubmissionResponse{Success: true, Submission: view})
}

func (h *Handler) handleMarkViewed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseSubmissionID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(ctx, w, "invalid submission id", err)
		return
	}
	var req models.MarkViewedRequest
	if r.ContentLength != 0 {
		if err := httputil.DecodeJSON(r, &req); err != nil {
			h.fail(ctx, w, "invalid mark viewed request", err)
			return
		}
	}
	if err := h.service.MarkViewed(ctx, id, req.AdminID); err != nil {
		h.fail(ctx, w, "failed to mark submission viewed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseSubmissionID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(ctx, w, "invalid submission id", err)
		return
	}
	var req models.UpdateSubmissionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid update submission request", err)
		return
	}
	msg, view, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.fail(ctx, w, "failed to update submission", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.SubmissionResponse{Success: true, Message: msg, Submission: view})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.service.Stats(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to compute stats", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Stats: stats})
}

// baseURL prefers the configured public URL, then forwarded headers.
func (h *Handler) baseURL(r *http.Request) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}
	proto := r.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = "http"
	}
	return proto + "://" + r.Host
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	code := dErrors.CodeOf(err)
	if code == dErrors.CodeInternal || code == dErrors.CodeUnavailable {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
