package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"govdesk/internal/notification/models"
	dErrors "govdesk/pkg/domain-errors"
	"govdesk/pkg/platform/httputil"
	"govdesk/pkg/requestcontext"
)

// Service defines the notification operations exposed over HTTP.
type Service interface {
	Notify(ctx context.Context, msg models.Message) (*models.Notification, error)
	List(ctx context.Context, email string) ([]*models.Notification, error)
	Update(ctx context.Context, req models.UpdateRequest) error
}

// Handler serves /api/notifications.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the notification routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/notifications", h.handleList)
	r.Post("/api/notifications", h.handleCreate)
	r.Patch("/api/notifications", h.handleUpdate)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.service.List(ctx, r.URL.Query().Get("userEmail"))
	if err != nil {
		h.fail(ctx, w, "failed to list notifications", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ListResponse{Success: true, Notifications: out})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var msg models.Message
	if err := httputil.DecodeJSON(r, &msg); err != nil {
		h.fail(ctx, w, "invalid notification request", err)
		return
	}
	n, err := h.service.Notify(ctx, msg)
	if err != nil {
		h.fail(ctx, w, "failed to create notification", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, models.CreateResponse{Success: true, Notification: n})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.UpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid notification update", err)
		return
	}
	if err := h.service.Update(ctx, req); err != nil {
		h.fail(ctx, w, "failed to update notification", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}
