package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the submission module.
// Tracks lifecycle counts and persistence latency.
type Metrics struct {
	SubmissionsCreated  prometheus.Counter
	ExpiryNotifications prometheus.Counter
	StatusChanges       *prometheus.CounterVec
	NotificationErrors  prometheus.Counter
	LoadDuration        prometheus.Histogram
	SaveDuration        prometheus.Histogram
	CollectionSize      prometheus.Gauge
}

var persistenceBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics with reg. Tests pass a fresh registry so
// repeated construction does not panic on duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SubmissionsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "govdesk_submissions_created_total",
			Help: "Total number of submissions created",
		}),
		ExpiryNotifications: f.NewCounter(prometheus.CounterOpts{
			Name: "govdesk_expiry_notifications_total",
			Help: "Expiry notifications raised for submissions that were never reviewed",
		}),
		StatusChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "govdesk_status_changes_total",
			Help: "Admin status changes by target status",
		}, []string{"status"}),
		NotificationErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "govdesk_notification_errors_total",
			Help: "Notifications the sink failed to accept",
		}),
		LoadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "govdesk_submission_load_duration_seconds",
			Help:    "Duration of whole-collection loads",
			Buckets: persistenceBuckets,
		}),
		SaveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "govdesk_submission_save_duration_seconds",
			Help:    "Duration of whole-collection saves",
			Buckets: persistenceBuckets,
		}),
		CollectionSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "govdesk_submissions",
			Help: "Number of submissions in the last loaded collection",
		}),
	}
}

// IncrementCreated records a successful creation.
func (m *Metrics) IncrementCreated() {
	if m == nil {
		return
	}
	m.SubmissionsCreated.Inc()
}

// AddExpiryNotifications records n raised expiry notifications.
func (m *Metrics) AddExpiryNotifications(n int) {
	if m == nil || n == 0 {
		return
	}
	m.ExpiryNotifications.Add(float64(n))
}

// IncrementStatusChange records a status transition.
func (m *Metrics) IncrementStatusChange(status string) {
	if m == nil {
		return
	}
	m.StatusChanges.WithLabelValues(status).Inc()
}

// IncrementNotificationError records a sink failure.
func (m *Metrics) IncrementNotificationError() {
	if m == nil {
		return
	}
	m.NotificationErrors.Inc()
}

// ObserveLoad records the duration of a load and the resulting size.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveLoad(start time.Time, size int) {
	if m == nil {
		return
	}
	m.LoadDuration.Observe(time.Since(start).Seconds())
	m.CollectionSize.Set(float64(size))
}

// ObserveSave records the duration of a save.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSave(start time.Time) {
	if m == nil {
		return
	}
	m.SaveDuration.Observe(time.Since(start).Seconds())
}
