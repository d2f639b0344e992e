package observability

import (
	"sync"
	"time"

	"github.com/spec-kit/sla-monitor/internal/domain"
)

// Metrics provides basic in-memory counters for the SLA monitor, surfaced on
// the status endpoint.
type Metrics struct {
	mu                   sync.Mutex
	passesRun            int64
	passFailures         int64
	alertsRaised         map[domain.AlertKind]int64
	alertsSuppressed     int64
	evaluationErrors     int64
	notificationFailures int64
	lastPassAt           time.Time
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	PassesRun            int64                      `json:"passes_run"`
	PassFailures         int64                      `json:"pass_failures"`
	AlertsRaised         map[domain.AlertKind]int64 `json:"alerts_raised"`
	AlertsSuppressed     int64                      `json:"alerts_suppressed"`
	EvaluationErrors     int64                      `json:"evaluation_errors"`
	NotificationFailures int64                      `json:"notification_failures"`
	LastPassAt           *time.Time                 `json:"last_pass_at,omitempty"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		alertsRaised: make(map[domain.AlertKind]int64),
	}
}

// RecordPass counts one completed breach-check pass.
func (m *Metrics) RecordPass(at time.Time) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passesRun++
	m.lastPassAt = at
}

// RecordPassFailure counts a pass that aborted before completing.
func (m *Metrics) RecordPassFailure() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passFailures++
}

// RecordAlert counts one alert raised for the given kind.
func (m *Metrics) RecordAlert(kind domain.AlertKind) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alertsRaised[kind]++
}

// RecordSuppressed counts an alert skipped by the dedup window.
func (m *Metrics) RecordSuppressed() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alertsSuppressed++
}

// RecordEvaluationError counts a single-ticket evaluation failure.
func (m *Metrics) RecordEvaluationError() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evaluationErrors++
}

// RecordNotificationFailure counts a swallowed delivery failure.
func (m *Metrics) RecordNotificationFailure() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notificationFailures++
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{AlertsRaised: map[domain.AlertKind]int64{}}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	raised := make(map[domain.AlertKind]int64, len(m.alertsRaised))
	for kind, count := range m.alertsRaised {
		raised[kind] = count
	}
	snap := MetricsSnapshot{
		PassesRun:            m.passesRun,
		PassFailures:         m.passFailures,
		AlertsRaised:         raised,
		AlertsSuppressed:     m.alertsSuppressed,
		EvaluationErrors:     m.evaluationErrors,
		NotificationFailures: m.notificationFailures,
	}
	if !m.lastPassAt.IsZero() {
		t := m.lastPassAt
		snap.LastPassAt = &t
	}
	return snap
}
