package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"govdesk/internal/submission/metrics"
	"govdesk/internal/submission/models"
	"govdesk/pkg/domain"
	"govdesk/pkg/platform/sentinel"
	"govdesk/pkg/requestcontext"
)

const tracerName = "govdesk/internal/submission/store"

// Store is the in-process cache of the submission collection. The adapter is
// the source of truth: reads reload before answering, mutations reload, mutate
// a copy and save the whole collection back. The mutex serializes operations
// within one process; across processes the last save wins.
//
// Unknown ids passed to MarkViewed, UpdateStatus and UpdateDetails are silent
// no-ops. Callers that need to distinguish must re-read with GetSubmission.
type Store struct {
	mu      sync.Mutex
	adapter Adapter
	subs    []*models.Submission
	fresh   bool // cache matches the adapter as of the last load or save
	closed  bool

	readThrough bool
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithTracerProvider overrides the global OpenTelemetry provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Store) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithReadThrough controls whether reads reload from the adapter (the
// default). Disabling it serves reads from the cache while it is fresh, which
// is only safe when this process is the sole writer.
func WithReadThrough(enabled bool) Option {
	return func(s *Store) {
		s.readThrough = enabled
	}
}

// Open loads the collection and returns a ready store. Corrupt data fails.
func Open(ctx context.Context, adapter Adapter, opts ...Option) (*Store, error) {
	s := &Store{
		adapter:     adapter,
		readThrough: true,
		logger:      slog.Default(),
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reloadLocked(ctx); err != nil {
		return nil, fmt.Errorf("open submission store: %w", err)
	}
	s.logger.InfoContext(ctx, "submission store opened", "submissions", len(s.subs))
	return s, nil
}

// Close releases the cache. Further calls return sentinel.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = nil
	s.fresh = false
	return nil
}

// Reload forces the cache to re-read the adapter.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sentinel.ErrClosed
	}
	return s.reloadLocked(ctx)
}

// CreateSubmission persists a new pending submission.
func (s *Store) CreateSubmission(ctx context.Context, serviceName string, serviceID int, details map[string]any) (*models.Submission, error) {
	now := requestcontext.Now(ctx)
	var created *models.Submission
	err := s.mutate(ctx, "CreateSubmission", func(subs []*models.Submission) ([]*models.Submission, bool) {
		id := domain.NewSubmissionID(now)
		for slices.ContainsFunc(subs, func(x *models.Submission) bool { return x.ID == id }) {
			id = domain.NewSubmissionID(now)
		}
		created = models.NewSubmission(id, serviceName, serviceID, details, now)
		return append(subs, created), true
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementCreated()
	s.logger.InfoContext(ctx, "submission created",
		"submission_id", created.ID,
		"service_id", serviceID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return created.Clone(), nil
}

// GetAllSubmissions returns submissions in insertion order. Expired ones are
// dropped unless includeExpired is set.
func (s *Store) GetAllSubmissions(ctx context.Context, includeExpired bool) ([]*models.Submission, error) {
	return s.query(ctx, "GetAllSubmissions", includeExpired, func(*models.Submission) bool { return true })
}

// GetServiceSubmissions is GetAllSubmissions restricted to one service id.
func (s *Store) GetServiceSubmissions(ctx context.Context, serviceID int, includeExpired bool) ([]*models.Submission, error) {
	return s.query(ctx, "GetServiceSubmissions", includeExpired, func(sub *models.Submission) bool {
		return sub.ServiceID == serviceID
	})
}

// GetSubmission returns one submission or sentinel.ErrNotFound.
func (s *Store) GetSubmission(ctx context.Context, id domain.SubmissionID) (*models.Submission, error) {
	subs, err := s.query(ctx, "GetSubmission", true, func(sub *models.Submission) bool { return sub.ID == id })
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, fmt.Errorf("submission %s: %w", id, sentinel.ErrNotFound)
	}
	return subs[0], nil
}

// MarkViewed records adminID as a reviewer. Idempotent.
func (s *Store) MarkViewed(ctx context.Context, id domain.SubmissionID, adminID string) error {
	return s.mutate(ctx, "MarkViewed", func(subs []*models.Submission) ([]*models.Submission, bool) {
		sub := find(subs, id)
		if sub == nil {
			return subs, false
		}
		return subs, sub.AddViewer(adminID)
	})
}

// UpdateStatus appends a status change to the audit trail and records
// changedBy as a reviewer.
func (s *Store) UpdateStatus(ctx context.Context, id domain.SubmissionID, status models.Status, changedBy, notes string) error {
	now := requestcontext.Now(ctx)
	return s.mutate(ctx, "UpdateStatus", func(subs []*models.Submission) ([]*models.Submission, bool) {
		sub := find(subs, id)
		if sub == nil {
			return subs, false
		}
		sub.ApplyStatus(status, changedBy, notes, now)
		sub.AddViewer(changedBy)
		return subs, true
	})
}

// UpdateDetails merges admin edits into the user details and records the
// admin as a reviewer. Status is untouched.
func (s *Store) UpdateDetails(ctx context.Context, id domain.SubmissionID, updates map[string]any, adminID string) error {
	now := requestcontext.Now(ctx)
	return s.mutate(ctx, "UpdateDetails", func(subs []*models.Submission) ([]*models.Submission, bool) {
		sub := find(subs, id)
		if sub == nil {
			return subs, false
		}
		sub.MergeDetails(updates, now)
		sub.AddViewer(adminID)
		return subs, true
	})
}

// MarkExpiryNotified latches NotifiedExpiry for every listed id that is not
// already latched. All latches land in one save. Returns how many changed.
func (s *Store) MarkExpiryNotified(ctx context.Context, ids []domain.SubmissionID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	changed := 0
	err := s.mutate(ctx, "MarkExpiryNotified", func(subs []*models.Submission) ([]*models.Submission, bool) {
		for _, id := range ids {
			if sub := find(subs, id); sub != nil && !sub.NotifiedExpiry {
				sub.NotifiedExpiry = true
				changed++
			}
		}
		return subs, changed > 0
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

// GetStats aggregates the collection without side effects.
func (s *Store) GetStats(ctx context.Context) (models.Stats, error) {
	subs, err := s.GetAllSubmissions(ctx, true)
	if err != nil {
		return models.Stats{}, err
	}
	return models.ComputeStats(subs, requestcontext.Now(ctx)), nil
}

// Fresh reports whether the cache matched the adapter after the last load or save.
func (s *Store) Fresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fresh
}

func (s *Store) query(ctx context.Context, op string, includeExpired bool, keep func(*models.Submission) bool) ([]*models.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "submission.store."+op)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, sentinel.ErrClosed
	}
	if s.readThrough || !s.fresh {
		if err := s.reloadLocked(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "reload failed")
			return nil, err
		}
	}

	now := requestcontext.Now(ctx)
	out := make([]*models.Submission, 0, len(s.subs))
	for _, sub := range s.subs {
		if !keep(sub) {
			continue
		}
		if !includeExpired && models.IsExpired(sub, now) {
			continue
		}
		out = append(out, sub.Clone())
	}
	span.SetAttributes(attribute.Int("submissions.returned", len(out)))
	return out, nil
}

// mutate runs fn on a deep copy of the freshly reloaded collection. When fn
// reports a change the copy is saved and swapped in; if the save fails the
// cache keeps its last-known-good state.
func (s *Store) mutate(ctx context.Context, op string, fn func([]*models.Submission) ([]*models.Submission, bool)) error {
	ctx, span := s.tracer.Start(ctx, "submission.store."+op)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sentinel.ErrClosed
	}
	if err := s.reloadLocked(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reload failed")
		return err
	}

	next, changed := fn(cloneAll(s.subs))
	if !changed {
		return nil
	}
	start := time.Now()
	if err := s.adapter.Save(ctx, next); err != nil {
		s.fresh = false
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		s.logger.ErrorContext(ctx, "failed to save submissions",
			"op", op,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return err
	}
	s.metrics.ObserveSave(start)
	s.subs = next
	s.fresh = true
	span.SetAttributes(attribute.Int("submissions.total", len(next)))
	return nil
}

func (s *Store) reloadLocked(ctx context.Context) error {
	start := time.Now()
	subs, err := s.adapter.Load(ctx)
	if err != nil {
		s.fresh = false
		return err
	}
	s.metrics.ObserveLoad(start, len(subs))
	s.subs = subs
	s.fresh = true
	return nil
}

func find(subs []*models.Submission, id domain.SubmissionID) *models.Submission {
	for _, sub := range subs {
		if sub.ID == id {
			return sub
		}
	}
	return nil
}

func cloneAll(subs []*models.Submission) []*models.Submission {
	out := make([]*models.Submission, len(subs))
	for i, sub := range subs {
		out[i] = sub.Clone()
	}
	return out
}
