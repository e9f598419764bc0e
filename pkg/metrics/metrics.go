package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess         = "success"
	OutcomeGenerationError = "generation_error"
	OutcomeDecodeError     = "decode_error"
)

// Metrics owns its registry so tests can build as many as they like.
type Metrics struct {
	registry    *prometheus.Registry
	generations *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	costUpdates *prometheus.CounterVec
	pending     prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		generations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jelajah",
			Name:      "itinerary_generations_total",
			Help:      "Itinerary generations by provider and outcome.",
		}, []string{"provider", "outcome"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jelajah",
			Name:      "itinerary_generation_seconds",
			Help:      "Wall time of the completion call plus parsing.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
		}, []string{"provider"}),
		costUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jelajah",
			Name:      "cost_updates_total",
			Help:      "User cost edits, split by whether they changed the itinerary.",
		}, []string{"applied"}),
		pending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "jelajah",
			Name:      "generations_in_flight",
			Help:      "Generations currently waiting on the completion service.",
		}),
	}
}

func (m *Metrics) ObserveGeneration(provider, outcome string, elapsed time.Duration) {
	m.generations.WithLabelValues(provider, outcome).Inc()
	m.latency.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveCostUpdate(applied bool) {
	label := "false"
	if applied {
		label = "true"
	}
	m.costUpdates.WithLabelValues(label).Inc()
}

func (m *Metrics) GenerationStarted()  { m.pending.Inc() }
func (m *Metrics) GenerationFinished() { m.pending.Dec() }

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
