// Package metrics exposes Prometheus instrumentation for the vitals engine.
package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config labels every metric with service identity.
type Config struct {
	Environment string
}

type EngineMetrics struct {
	eventsEmitted     *prometheus.CounterVec
	notifications     *prometheus.CounterVec
	evaluationSeconds prometheus.Histogram
	sweepProcessed    *prometheus.CounterVec
	sweepBacklog      prometheus.Gauge
}

var (
	engineMetricsOnce sync.Once
	engineMetrics     *EngineMetrics
)

// Engine returns the process-wide engine metrics, registering them on first use.
func Engine() *EngineMetrics {
	return EngineWithConfig(Config{})
}

func EngineWithConfig(cfg Config) *EngineMetrics {
	engineMetricsOnce.Do(func() {
		engineMetrics = newEngineMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return engineMetrics
}

func ResetEngineMetricsForTest() {
	engineMetricsOnce = sync.Once{}
	engineMetrics = nil
}

func newEngineMetrics(registerer prometheus.Registerer, cfg Config) *EngineMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": "farmheart",
		"env":     environment,
	}

	eventsEmitted := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "farmheart_vitals_events_total",
			Help:        "Candidate events produced by the threshold evaluator.",
			ConstLabels: constLabels,
		},
		[]string{"type"},
	)

	notifications := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "farmheart_notifications_total",
			Help:        "Dispatch outcomes per candidate event.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // created | suppressed | skipped | failed
	)

	evaluationSeconds := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:        "farmheart_vitals_evaluation_seconds",
			Help:        "Wall time of a single stat update evaluation pass.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		},
	)

	sweepProcessed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "farmheart_sweep_animals_total",
			Help:        "Animals processed by the decay sweep.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // decayed | skipped | failed
	)

	sweepBacklog := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:        "farmheart_sweep_backlog_total",
			Help:        "Animals overdue for a decay pass.",
			ConstLabels: constLabels,
		},
	)

	registerer.MustRegister(
		eventsEmitted,
		notifications,
		evaluationSeconds,
		sweepProcessed,
		sweepBacklog,
	)

	return &EngineMetrics{
		eventsEmitted:     eventsEmitted,
		notifications:     notifications,
		evaluationSeconds: evaluationSeconds,
		sweepProcessed:    sweepProcessed,
		sweepBacklog:      sweepBacklog,
	}
}

func (m *EngineMetrics) IncEventEmitted(eventType string) {
	if m == nil {
		return
	}
	m.eventsEmitted.WithLabelValues(eventType).Inc()
}

func (m *EngineMetrics) IncNotification(result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(result).Inc()
}

func (m *EngineMetrics) ObserveEvaluation(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.evaluationSeconds.Observe(elapsed.Seconds())
}

func (m *EngineMetrics) IncSweepProcessed(result string) {
	if m == nil {
		return
	}
	m.sweepProcessed.WithLabelValues(result).Inc()
}

func (m *EngineMetrics) SetSweepBacklog(value int64) {
	if m == nil {
		return
	}
	m.sweepBacklog.Set(float64(value))
}
