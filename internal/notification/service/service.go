package service

import (
	"context"
	"log/slog"

	"govdesk/internal/notification/models"
	"govdesk/pkg/domain"
	dErrors "govdesk/pkg/domain-errors"
	"govdesk/pkg/requestcontext"
)

// Store persists notifications per recipient.
type Store interface {
	Add(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, email string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id domain.NotificationID) error
	ClearAll(ctx context.Context, email string) (int, error)
}

// Publisher fans a stored notification out to another channel.
type Publisher interface {
	Publish(ctx context.Context, n *models.Notification) error
}

// Service is the notification sink. A notification counts as raised once it
// is stored; publisher failures are logged and do not fail the call.
type Service struct {
	store      Store
	publishers []Publisher
	logger     *slog.Logger
}

type Option func(*Service)

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publishers = append(s.publishers, p)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify stores msg for its recipient and publishes it.
func (s *Service) Notify(ctx context.Context, msg models.Message) (*models.Notification, error) {
	msg.Normalize()
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	n := models.NewNotification(msg, requestcontext.Now(ctx))
	if err := s.store.Add(ctx, n); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store notification")
	}
	for _, p := range s.publishers {
		if err := p.Publish(ctx, n); err != nil {
			s.logger.WarnContext(ctx, "failed to publish notification",
				"notification_id", n.ID,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}
	s.logger.InfoContext(ctx, "notification raised",
		"notification_id", n.ID,
		"type", n.Type,
		"submission_id", n.SubmissionID,
	)
	return n, nil
}

// List returns the recipient's notifications, newest first.
func (s *Service) List(ctx context.Context, email string) ([]*models.Notification, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "userEmail is required")
	}
	out, err := s.store.ListByUser(ctx, email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notifications")
	}
	return out, nil
}

// Update applies a PATCH request: clear everything for a user, or mark one read.
func (s *Service) Update(ctx context.Context, req models.UpdateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.Action == models.ActionClearAll && req.UserEmail != "" {
		removed, err := s.store.ClearAll(ctx, req.UserEmail)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear notifications")
		}
		s.logger.InfoContext(ctx, "notifications cleared", "removed", removed)
		return nil
	}
	if err := s.store.MarkRead(ctx, req.ID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark notification read")
	}
	return nil
}
