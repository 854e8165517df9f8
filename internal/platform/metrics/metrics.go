package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the wizard engine. Register once
// in main; services treat a nil *Metrics as "metrics disabled" so unit
// tests can skip registration entirely.
type Metrics struct {
	SessionLoads      prometheus.Counter
	SessionExpiries   prometheus.Counter
	SessionCorruption prometheus.Counter
	StorageErrors     prometheus.Counter

	SnapshotSaves  prometheus.Counter
	SnapshotClears prometheus.Counter

	LookupCacheHits      prometheus.Counter
	LookupCacheMisses    prometheus.Counter
	LookupStaleFallbacks prometheus.Counter
	LookupFailures       prometheus.Counter

	StepSubmissions *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SessionLoads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regwizard_session_loads_total",
			Help: "Total number of session records loaded from durable storage",
		}),
		SessionExpiries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regwizard_session_expiries_total",
			Help: "Total number of session records discarded because their TTL lapsed",
		}),
		SessionCorruption: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regwizard_session_corruption_total",
			Help: "Total number of session or snapshot records discarded as unparseable",
		}),
		StorageErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regwizard_storage_errors_total",
			Help: "Total number of durable-store failures absorbed by the session and recovery layers",
		}),
		SnapshotSaves: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regwizard_snapshot_saves_total",
			Help: "Total number of recovery snapshots written",
		}),
		SnapshotClears: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regwizard_snapshot_clears_total",
			Help: "Total number of recovery snapshots deleted",
		}),
		LookupCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regwizard_lookup_cache_hits_total",
			Help: "Total number of location lookups served from fresh cache entries",
		}),
		LookupCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regwizard_lookup_cache_misses_total",
			Help: "Total number of location lookups that went to the network",
		}),
		LookupStaleFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regwizard_lookup_stale_fallbacks_total",
			Help: "Total number of location lookups served from expired cache entries after a network failure",
		}),
		LookupFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regwizard_lookup_failures_total",
			Help: "Total number of location lookups that failed with no cached value to fall back on",
		}),
		StepSubmissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "regwizard_step_submissions_total",
			Help: "Total number of step submissions by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncrementSessionLoads() {
	if m == nil {
		return
	}
	m.SessionLoads.Inc()
}

func (m *Metrics) IncrementSessionExpiries() {
	if m == nil {
		return
	}
	m.SessionExpiries.Inc()
}

func (m *Metrics) IncrementSessionCorruption() {
	if m == nil {
		return
	}
	m.SessionCorruption.Inc()
}

func (m *Metrics) IncrementStorageErrors() {
	if m == nil {
		return
	}
	m.StorageErrors.Inc()
}

func (m *Metrics) IncrementSnapshotSaves() {
	if m == nil {
		return
	}
	m.SnapshotSaves.Inc()
}

func (m *Metrics) IncrementSnapshotClears() {
	if m == nil {
		return
	}
	m.SnapshotClears.Inc()
}

func (m *Metrics) IncrementLookupCacheHits() {
	if m == nil {
		return
	}
	m.LookupCacheHits.Inc()
}

func (m *Metrics) IncrementLookupCacheMisses() {
	if m == nil {
		return
	}
	m.LookupCacheMisses.Inc()
}

func (m *Metrics) IncrementLookupStaleFallbacks() {
	if m == nil {
		return
	}
	m.LookupStaleFallbacks.Inc()
}

func (m *Metrics) IncrementLookupFailures() {
	if m == nil {
		return
	}
	m.LookupFailures.Inc()
}

// IncrementStepSubmissions records one submission outcome: accepted,
// rejected, or completed.
func (m *Metrics) IncrementStepSubmissions(outcome string) {
	if m == nil {
		return
	}
	m.StepSubmissions.WithLabelValues(outcome).Inc()
}
