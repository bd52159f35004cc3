package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"govdesk/internal/submission/metrics"
	"govdesk/internal/submission/models"
	"govdesk/internal/submission/store"
	"govdesk/pkg/domain"
	"govdesk/pkg/platform/sentinel"
	"govdesk/pkg/requestcontext"
)

var errDiskFull = errors.New("disk full")

// flakyAdapter fails saves on demand and counts them.
type flakyAdapter struct {
	*store.MemoryAdapter
	mu       sync.Mutex
	failSave bool
	saves    int
}

func (a *flakyAdapter) Save(ctx context.Context, subs []*models.Submission) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failSave {
		return errDiskFull
	}
	a.saves++
	return a.MemoryAdapter.Save(ctx, subs)
}

func (a *flakyAdapter) saveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}

type StoreSuite struct {
	suite.Suite
	adapter *flakyAdapter
	store   *store.Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.adapter = &flakyAdapter{MemoryAdapter: store.NewMemoryAdapter()}
	st, err := store.Open(context.Background(), s.adapter,
		store.WithMetrics(metrics.NewWith(prometheus.NewRegistry())),
	)
	s.Require().NoError(err)
	s.store = st
}

func (s *StoreSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func at(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func (s *StoreSuite) create(now time.Time, serviceID int, email string) *models.Submission {
	sub, err := s.store.CreateSubmission(at(now), "Income Certificate", serviceID, map[string]any{"email": email})
	s.Require().NoError(err)
	return sub
}

func (s *StoreSuite) TestCreateSubmission() {
	sub := s.create(t0, 4, "asha@example.in")

	s.Equal(models.StatusPending, sub.Status)
	s.True(sub.SubmittedAt.Equal(t0))
	s.True(sub.ExpiresAt.Equal(t0.Add(24 * time.Hour)))
	s.Empty(sub.ViewedBy)
	s.False(sub.NotifiedExpiry)
	s.Require().Len(sub.StatusHistory, 1)
	s.Equal("Application submitted by user", sub.StatusHistory[0].Notes)

	_, err := domain.ParseSubmissionID(sub.ID.String())
	s.NoError(err)
	s.Equal(1, s.adapter.saveCount(), "persisted immediately")

	stored, err := s.store.GetSubmission(at(t0), sub.ID)
	s.Require().NoError(err)
	s.Equal(sub.ID, stored.ID)
}

func (s *StoreSuite) TestCreatedIDsAreUnique() {
	seen := make(map[domain.SubmissionID]struct{})
	for range 50 {
		sub := s.create(t0, 1, "same@example.in")
		_, dup := seen[sub.ID]
		s.Require().False(dup, "duplicate id %s", sub.ID)
		seen[sub.ID] = struct{}{}
	}
	all, err := s.store.GetAllSubmissions(at(t0), true)
	s.Require().NoError(err)
	s.Len(all, 50)
}

func (s *StoreSuite) TestGetAllSubmissionsExpiryFilter() {
	old := s.create(t0, 1, "a@example.in")
	fresh := s.create(t0.Add(20*time.Hour), 1, "b@example.in")

	atBoundary, err := s.store.GetAllSubmissions(at(old.ExpiresAt), false)
	s.Require().NoError(err)
	s.Len(atBoundary, 2, "not expired at exactly expiresAt")

	later := old.ExpiresAt.Add(time.Millisecond)
	active, err := s.store.GetAllSubmissions(at(later), false)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal(fresh.ID, active[0].ID)

	all, err := s.store.GetAllSubmissions(at(later), true)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(old.ID, all[0].ID, "insertion order")
	s.Equal(fresh.ID, all[1].ID)
}

func (s *StoreSuite) TestGetServiceSubmissions() {
	s.create(t0, 1, "a@example.in")
	mine := s.create(t0, 2, "b@example.in")
	s.create(t0, 3, "c@example.in")

	subs, err := s.store.GetServiceSubmissions(at(t0), 2, true)
	s.Require().NoError(err)
	s.Require().Len(subs, 1)
	s.Equal(mine.ID, subs[0].ID)

	none, err := s.store.GetServiceSubmissions(at(t0.Add(48*time.Hour)), 2, false)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *StoreSuite) TestGetSubmissionNotFound() {
	_, err := s.store.GetSubmission(at(t0), "SUB_1_missing00")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *StoreSuite) TestReturnedRecordsAreCopies() {
	sub := s.create(t0, 1, "a@example.in")
	sub.UserDetails["email"] = "mutated@example.in"
	sub.ViewedBy = append(sub.ViewedBy, "intruder")

	got, err := s.store.GetSubmission(at(t0), sub.ID)
	s.Require().NoError(err)
	s.Equal("a@example.in", got.UserDetails["email"])
	s.Empty(got.ViewedBy)
}

func (s *StoreSuite) TestMarkViewedIsIdempotent() {
	sub := s.create(t0, 1, "a@example.in")
	saves := s.adapter.saveCount()

	s.Require().NoError(s.store.MarkViewed(at(t0), sub.ID, "admin-7"))
	s.Require().NoError(s.store.MarkViewed(at(t0), sub.ID, "admin-7"))

	got, err := s.store.GetSubmission(at(t0), sub.ID)
	s.Require().NoError(err)
	s.Equal([]string{"admin-7"}, got.ViewedBy)
	s.Equal(saves+1, s.adapter.saveCount(), "second mark is not saved")
}

func (s *StoreSuite) TestMarkViewedUnknownIDIsNoop() {
	s.create(t0, 1, "a@example.in")
	saves := s.adapter.saveCount()

	s.NoError(s.store.MarkViewed(at(t0), "SUB_1_missing00", "admin"))
	s.Equal(saves, s.adapter.saveCount())
}

func (s *StoreSuite) TestUpdateStatusAppendsHistory() {
	sub := s.create(t0, 1, "a@example.in")
	t1 := t0.Add(time.Hour)
	t2 := t0.Add(3 * time.Hour)

	s.Require().NoError(s.store.UpdateStatus(at(t1), sub.ID, models.StatusUnderReview, "admin", ""))
	s.Require().NoError(s.store.UpdateStatus(at(t2), sub.ID, models.StatusCompleted, "admin", "all good"))

	got, err := s.store.GetSubmission(at(t2), sub.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, got.Status)
	s.Require().Len(got.StatusHistory, 3)
	s.Equal(models.StatusPending, got.StatusHistory[0].Status)
	s.Equal(models.StatusUnderReview, got.StatusHistory[1].Status)
	s.Equal(models.StatusCompleted, got.StatusHistory[2].Status)
	s.Equal("all good", got.AdminNotes)
	s.Require().NotNil(got.StatusChangedAt)
	s.True(got.StatusChangedAt.Equal(t2))
	s.True(got.ModifiedAt.Equal(t2))
	s.True(got.ExpiresAt.Equal(sub.ExpiresAt), "expiresAt is immutable")
}

func (s *StoreSuite) TestUpdateStatusRecordsReviewer() {
	sub := s.create(t0, 1, "a@example.in")

	s.Require().NoError(s.store.UpdateStatus(at(t0), sub.ID, models.StatusProcessing, "admin-4", ""))
	s.Require().NoError(s.store.UpdateStatus(at(t0), sub.ID, models.StatusCompleted, "admin-4", ""))

	got, err := s.store.GetSubmission(at(t0), sub.ID)
	s.Require().NoError(err)
	s.Equal([]string{"admin-4"}, got.ViewedBy)
	s.False(got.NeedsExpiryNotice(t0.Add(48 * time.Hour)))
}

func (s *StoreSuite) TestUpdateStatusUnknownIDIsNoop() {
	saves := s.adapter.saveCount()
	s.NoError(s.store.UpdateStatus(at(t0), "SUB_1_missing00", models.StatusCompleted, "admin", ""))
	s.Equal(saves, s.adapter.saveCount())
}

func (s *StoreSuite) TestUpdateDetails() {
	sub := s.create(t0, 1, "a@example.in")
	t1 := t0.Add(time.Hour)

	err := s.store.UpdateDetails(at(t1), sub.ID, map[string]any{"address": "12 MG Road"}, "admin-2")
	s.Require().NoError(err)

	got, err := s.store.GetSubmission(at(t1), sub.ID)
	s.Require().NoError(err)
	s.Equal("12 MG Road", got.UserDetails["address"])
	s.Equal("a@example.in", got.UserDetails["email"])
	s.Equal([]string{"admin-2"}, got.ViewedBy)
	s.Equal(models.StatusPending, got.Status)
	s.True(got.ModifiedAt.Equal(t1))
}

func (s *StoreSuite) TestMarkExpiryNotifiedBatchesOneSave() {
	a := s.create(t0, 1, "a@example.in")
	b := s.create(t0, 1, "a@example.in")
	saves := s.adapter.saveCount()

	n, err := s.store.MarkExpiryNotified(at(t0), []domain.SubmissionID{a.ID, b.ID, "SUB_1_missing00"})
	s.Require().NoError(err)
	s.Equal(2, n)
	s.Equal(saves+1, s.adapter.saveCount())

	n, err = s.store.MarkExpiryNotified(at(t0), []domain.SubmissionID{a.ID, b.ID})
	s.Require().NoError(err)
	s.Zero(n, "latch only moves once")
	s.Equal(saves+1, s.adapter.saveCount())

	n, err = s.store.MarkExpiryNotified(at(t0), nil)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *StoreSuite) TestFailedSaveKeepsLastKnownGood() {
	sub := s.create(t0, 1, "a@example.in")
	s.adapter.mu.Lock()
	s.adapter.failSave = true
	s.adapter.mu.Unlock()

	err := s.store.UpdateStatus(at(t0), sub.ID, models.StatusRejected, "admin", "")
	s.ErrorIs(err, errDiskFull)
	_, err = s.store.CreateSubmission(at(t0), "Other", 2, map[string]any{"email": "b@example.in"})
	s.ErrorIs(err, errDiskFull)

	s.adapter.mu.Lock()
	s.adapter.failSave = false
	s.adapter.mu.Unlock()

	all, err := s.store.GetAllSubmissions(at(t0), true)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(models.StatusPending, all[0].Status)
	s.Len(all[0].StatusHistory, 1)
}

func (s *StoreSuite) TestGetStats() {
	a := s.create(t0, 1, "a@example.in")
	s.create(t0, 1, "b@example.in")
	s.create(t0.Add(30*time.Hour), 2, "c@example.in")
	s.Require().NoError(s.store.UpdateStatus(at(t0), a.ID, models.StatusRejected, "admin", ""))

	stats, err := s.store.GetStats(at(t0.Add(30 * time.Hour)))
	s.Require().NoError(err)
	s.Equal(3, stats.Total)
	s.Equal(2, stats.Active)
	s.Equal(1, stats.Completed)
	s.Equal(2, stats.ByStatus[models.StatusPending])
	s.Equal(1, stats.ByStatus[models.StatusRejected])
	s.Equal(2, stats.ByService["1"])
	s.Equal(1, stats.ByService["2"])
}

func (s *StoreSuite) TestClosedStoreRejectsCalls() {
	st, err := store.Open(context.Background(), store.NewMemoryAdapter())
	s.Require().NoError(err)
	s.Require().NoError(st.Close())

	_, err = st.GetAllSubmissions(at(t0), true)
	s.ErrorIs(err, sentinel.ErrClosed)
	_, err = st.CreateSubmission(at(t0), "x", 1, map[string]any{"email": "a@example.in"})
	s.ErrorIs(err, sentinel.ErrClosed)
	s.ErrorIs(st.Reload(at(t0)), sentinel.ErrClosed)
}

func TestStoreSeesExternalWrites(t *testing.T) {
	ctx := at(t0)
	path := filepath.Join(t.TempDir(), "submissions.json")

	writer, err := store.Open(ctx, store.NewFileAdapter(path))
	if err != nil {
		t.Fatal(err)
	}
	reader, err := store.Open(ctx, store.NewFileAdapter(path))
	if err != nil {
		t.Fatal(err)
	}

	created, err := writer.CreateSubmission(ctx, "Caste Certificate", 9, map[string]any{"email": "a@example.in"})
	if err != nil {
		t.Fatal(err)
	}
	got, err := reader.GetSubmission(ctx, created.ID)
	if err != nil {
		t.Fatalf("reader did not see external write: %v", err)
	}
	if got.ServiceName != "Caste Certificate" {
		t.Fatalf("unexpected service name %q", got.ServiceName)
	}
}

func TestCachedReadsNeedReload(t *testing.T) {
	ctx := at(t0)
	adapter := store.NewMemoryAdapter()
	st, err := store.Open(ctx, adapter, store.WithReadThrough(false))
	if err != nil {
		t.Fatal(err)
	}

	external := models.NewSubmission("SUB_1768033800000_ext000001", "Pension", 5, map[string]any{"email": "x@example.in"}, t0)
	if err := adapter.Save(ctx, []*models.Submission{external}); err != nil {
		t.Fatal(err)
	}

	subs, err := st.GetAllSubmissions(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 0 {
		t.Fatalf("expected cached empty view, got %d", len(subs))
	}

	if err := st.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	subs, err = st.GetAllSubmissions(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 || subs[0].ID != external.ID {
		t.Fatalf("expected external record after reload, got %+v", subs)
	}
}

func TestStoreRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	adapter := &flakyAdapter{MemoryAdapter: store.NewMemoryAdapter()}
	st, err := store.Open(at(t0), adapter, store.WithTracerProvider(tp))
	require.NoError(t, err)

	_, err = st.CreateSubmission(at(t0), "Pension", 5, map[string]any{"email": "x@example.in"})
	require.NoError(t, err)
	adapter.failSave = true
	_, err = st.CreateSubmission(at(t0), "Pension", 5, map[string]any{"email": "y@example.in"})
	require.ErrorIs(t, err, errDiskFull)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "submission.store.CreateSubmission", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "save failed", spans[1].Status().Description)
}
