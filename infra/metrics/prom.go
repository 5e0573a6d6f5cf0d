package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/courtflow/courtflow/core/metrics"
)

// PromSink records scheduling events in Prometheus metrics.
type PromSink struct {
	attempts  *prometheus.CounterVec
	conflicts prometheus.Counter
	searches  prometheus.Counter
	latency   prometheus.Histogram
}

// NewPromSink registers scheduling metrics on the default Prometheus
// registerer. The Prometheus server should be started separately on
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hearing_schedule_attempts_total",
		Help: "Total number of schedule and reschedule attempts",
	}, []string{"operation", "committed"})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hearing_schedule_conflicts_total",
		Help: "Total number of conflicts reported by rejected scheduling attempts",
	})
	searches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "slot_searches_total",
		Help: "Total number of slot searches",
	})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "slot_search_duration_seconds",
		Help:    "Time spent enumerating and ranking candidate slots",
		Buckets: prometheus.DefBuckets,
	})

	if err := reg.Register(attempts); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			attempts = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(conflicts); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			conflicts = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(searches); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			searches = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{attempts: attempts, conflicts: conflicts, searches: searches, latency: latency}, nil
}

// RecordSchedule counts the attempt and any conflicts it reported.
func (s *PromSink) RecordSchedule(ev coremetrics.ScheduleEvent) error {
	s.attempts.WithLabelValues(ev.Operation, strconv.FormatBool(ev.Committed)).Inc()
	if ev.Conflicts > 0 {
		s.conflicts.Add(float64(ev.Conflicts))
	}
	return nil
}

// RecordSlotSearch counts the search and observes its duration.
func (s *PromSink) RecordSlotSearch(ev coremetrics.SlotSearchEvent) error {
	s.searches.Inc()
	s.latency.Observe(ev.Elapsed.Seconds())
	return nil
}
