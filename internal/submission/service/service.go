package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	nmodels "govdesk/internal/notification/models"
	"govdesk/internal/submission/metrics"
	"govdesk/internal/submission/models"
	"govdesk/pkg/domain"
	dErrors "govdesk/pkg/domain-errors"
	"govdesk/pkg/platform/sentinel"
	"govdesk/pkg/requestcontext"
)

// Store is the submission persistence the service orchestrates.
type Store interface {
	CreateSubmission(ctx context.Context, serviceName string, serviceID int, details map[string]any) (*models.Submission, error)
	GetAllSubmissions(ctx context.Context, includeExpired bool) ([]*models.Submission, error)
	GetServiceSubmissions(ctx context.Context, serviceID int, includeExpired bool) ([]*models.Submission, error)
	GetSubmission(ctx context.Context, id domain.SubmissionID) (*models.Submission, error)
	MarkViewed(ctx context.Context, id domain.SubmissionID, adminID string) error
	UpdateStatus(ctx context.Context, id domain.SubmissionID, status models.Status, changedBy, notes string) error
	UpdateDetails(ctx context.Context, id domain.SubmissionID, updates map[string]any, adminID string) error
	MarkExpiryNotified(ctx context.Context, ids []domain.SubmissionID) (int, error)
	GetStats(ctx context.Context) (models.Stats, error)
}

// Notifier raises a user-facing notification.
type Notifier interface {
	Notify(ctx context.Context, msg nmodels.Message) (*nmodels.Notification, error)
}

// DefaultAdminID attributes admin actions that did not name an actor.
const DefaultAdminID = "admin"

// Service implements the submission lifecycle on top of Store.
type Service struct {
	store    Store
	notifier Notifier
	logger   *slog.Logger
	metrics  *metrics.Metrics

	// expiryMu serializes the check, notify and latch cycle so concurrent
	// listings raise each expiry notice once.
	expiryMu sync.Mutex
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, notifier Notifier, opts ...Option) *Service {
	s := &Service{store: store, notifier: notifier, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates and persists a new submission. baseURL prefixes the
// scannable tracking link.
func (s *Service) Create(ctx context.Context, req models.CreateSubmissionRequest, baseURL string) (*models.CreatedSubmission, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sub, err := s.store.CreateSubmission(ctx, req.ServiceName, req.ServiceID, req.UserDetails)
	if err != nil {
		return nil, translate(err, "failed to create submission")
	}
	return &models.CreatedSubmission{
		ID:          sub.ID,
		ServiceID:   sub.ServiceID,
		ServiceName: sub.ServiceName,
		QRCode:      sub.QRCode,
		QRURL:       strings.TrimRight(baseURL, "/") + "/submission/" + sub.ID.String(),
		Status:      sub.Status,
		StatusLabel: sub.Status.Label(),
		SubmittedAt: sub.SubmittedAt,
	}, nil
}

// ListAll returns every submission, expired included, for the admin desk.
func (s *Service) ListAll(ctx context.Context, lang models.Lang) ([]models.View, error) {
	subs, err := s.store.GetAllSubmissions(ctx, true)
	if err != nil {
		return nil, translate(err, "failed to list submissions")
	}
	return models.ToViews(subs, requestcontext.Now(ctx), lang), nil
}

// ListByService returns one service's submissions, expired included.
func (s *Service) ListByService(ctx context.Context, serviceID int, lang models.Lang) ([]models.View, error) {
	subs, err := s.store.GetServiceSubmissions(ctx, serviceID, true)
	if err != nil {
		return nil, translate(err, "failed to list submissions")
	}
	return models.ToViews(subs, requestcontext.Now(ctx), lang), nil
}

// ListForUser returns the applicant's submissions and raises the expiry
// notification for each that expired without review. The latch is persisted
// for every raised notification in a single save, so a repeat call raises
// nothing new.
func (s *Service) ListForUser(ctx context.Context, email string, lang models.Lang) ([]models.View, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}
	now := requestcontext.Now(ctx)
	mine, pending, err := s.userSubmissions(ctx, email, now)
	if err != nil {
		return nil, err
	}
	if pending == 0 {
		return models.ToViews(mine, now, lang), nil
	}

	s.expiryMu.Lock()
	defer s.expiryMu.Unlock()

	// Another listing may have latched these while we waited.
	mine, _, err = s.userSubmissions(ctx, email, now)
	if err != nil {
		return nil, err
	}
	var latched []domain.SubmissionID
	for _, sub := range mine {
		if !sub.NeedsExpiryNotice(now) {
			continue
		}
		if _, err := s.notifier.Notify(ctx, expiryMessage(sub, email)); err != nil {
			s.metrics.IncrementNotificationError()
			s.logger.WarnContext(ctx, "failed to raise expiry notification",
				"submission_id", sub.ID,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
			continue
		}
		latched = append(latched, sub.ID)
		sub.NotifiedExpiry = true
	}

	if len(latched) > 0 {
		n, err := s.store.MarkExpiryNotified(ctx, latched)
		if err != nil {
			// Notifications already went out; the next listing may repeat them.
			s.logger.ErrorContext(ctx, "failed to persist expiry latch",
				"submissions", len(latched),
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
			return nil, translate(err, "failed to record expiry notifications")
		}
		s.metrics.AddExpiryNotifications(n)
		s.logger.InfoContext(ctx, "expiry notifications raised", "count", n)
	}
	return models.ToViews(mine, now, lang), nil
}

// userSubmissions returns the applicant's submissions and how many of them
// still owe an expiry notice.
func (s *Service) userSubmissions(ctx context.Context, email string, now time.Time) ([]*models.Submission, int, error) {
	all, err := s.store.GetAllSubmissions(ctx, true)
	if err != nil {
		return nil, 0, translate(err, "failed to list submissions")
	}
	mine := make([]*models.Submission, 0)
	pending := 0
	for _, sub := range all {
		if !sub.BelongsTo(email) {
			continue
		}
		mine = append(mine, sub)
		if sub.NeedsExpiryNotice(now) {
			pending++
		}
	}
	return mine, pending, nil
}

// View returns one submission. A non-empty viewer is recorded first.
func (s *Service) View(ctx context.Context, id domain.SubmissionID, viewer string, lang models.Lang) (models.View, error) {
	if viewer = strings.TrimSpace(viewer); viewer != "" {
		if err := s.store.MarkViewed(ctx, id, viewer); err != nil {
			return models.View{}, translate(err, "failed to record viewer")
		}
	}
	sub, err := s.get(ctx, id)
	if err != nil {
		return models.View{}, err
	}
	return models.ToView(sub, requestcontext.Now(ctx), lang), nil
}

// MarkViewed records an admin review. Unknown ids are NotFound.
func (s *Service) MarkViewed(ctx context.Context, id domain.SubmissionID, adminID string) error {
	if adminID = strings.TrimSpace(adminID); adminID == "" {
		adminID = DefaultAdminID
	}
	if err := s.store.MarkViewed(ctx, id, adminID); err != nil {
		return translate(err, "failed to mark submission viewed")
	}
	_, err := s.get(ctx, id)
	return err
}

// UpdateStatus moves the workflow and notifies the applicant.
func (s *Service) UpdateStatus(ctx context.Context, id domain.SubmissionID, status models.Status, adminID, notes string) (models.View, error) {
	if !status.IsValid() {
		return models.View{}, dErrors.New(dErrors.CodeValidation, "newStatus is not a known status")
	}
	if adminID = strings.TrimSpace(adminID); adminID == "" {
		adminID = DefaultAdminID
	}
	if err := s.store.UpdateStatus(ctx, id, status, adminID, notes); err != nil {
		return models.View{}, translate(err, "failed to update status")
	}
	sub, err := s.get(ctx, id)
	if err != nil {
		return models.View{}, err
	}
	s.metrics.IncrementStatusChange(string(status))
	s.logger.InfoContext(ctx, "submission status changed",
		"submission_id", id,
		"status", status,
		"changed_by", adminID,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.notifyStatus(ctx, sub, status, notes)
	return models.ToView(sub, requestcontext.Now(ctx), models.LangEnglish), nil
}

// UpdateDetails saves admin edits without touching the status.
func (s *Service) UpdateDetails(ctx context.Context, id domain.SubmissionID, updates map[string]any, adminID string) (models.View, error) {
	if len(updates) == 0 {
		return models.View{}, dErrors.New(dErrors.CodeValidation, "updates must not be empty")
	}
	if adminID = strings.TrimSpace(adminID); adminID == "" {
		adminID = DefaultAdminID
	}
	if err := s.store.UpdateDetails(ctx, id, updates, adminID); err != nil {
		return models.View{}, translate(err, "failed to save submission details")
	}
	sub, err := s.get(ctx, id)
	if err != nil {
		return models.View{}, err
	}
	return models.ToView(sub, requestcontext.Now(ctx), models.LangEnglish), nil
}

// Update dispatches a PATCH request by mode and returns the confirmation
// message with the updated view.
func (s *Service) Update(ctx context.Context, id domain.SubmissionID, req models.UpdateSubmissionRequest) (string, models.View, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", models.View{}, err
	}
	switch req.Mode {
	case models.UpdateModeStatus:
		view, err := s.UpdateStatus(ctx, id, req.NewStatus, req.AdminID, req.Notes)
		if err != nil {
			return "", models.View{}, err
		}
		return "Status changed to " + req.NewStatus.Label() + ".", view, nil
	case models.UpdateModeSave:
		view, err := s.UpdateDetails(ctx, id, req.Updates, req.AdminID)
		if err != nil {
			return "", models.View{}, err
		}
		return "Submission details saved successfully.", view, nil
	default:
		if len(req.Updates) > 0 {
			if _, err := s.UpdateDetails(ctx, id, req.Updates, req.AdminID); err != nil {
				return "", models.View{}, err
			}
		}
		view, err := s.UpdateStatus(ctx, id, models.StatusReadyForCollection, req.AdminID, req.Notes)
		if err != nil {
			return "", models.View{}, err
		}
		return "Application processed and ready for collection.", view, nil
	}
}

// Stats aggregates the collection.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	st, err := s.store.GetStats(ctx)
	if err != nil {
		return models.Stats{}, translate(err, "failed to compute stats")
	}
	return st, nil
}

func (s *Service) get(ctx context.Context, id domain.SubmissionID) (*models.Submission, error) {
	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, translate(err, "failed to load submission")
	}
	return sub, nil
}

func (s *Service) notifyStatus(ctx context.Context, sub *models.Submission, status models.Status, notes string) {
	email := domain.NormalizeEmail(sub.Email())
	if email == "" {
		s.logger.WarnContext(ctx, "no applicant email, status notification skipped", "submission_id", sub.ID)
		return
	}
	msg, ok := statusMessage(sub, status, notes)
	if !ok {
		return
	}
	msg.UserEmail = email
	if _, err := s.notifier.Notify(ctx, msg); err != nil {
		s.metrics.IncrementNotificationError()
		s.logger.WarnContext(ctx, "failed to raise status notification",
			"submission_id", sub.ID,
			"status", status,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

// translate maps store sentinels onto domain error codes.
func translate(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "submission not found")
	case errors.Is(err, sentinel.ErrClosed), errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "submission store unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	default:
		if _, ok := dErrors.As(err); ok {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
