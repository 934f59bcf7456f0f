// Package metrics exposes retrieval, Slack API and cache metrics to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "slack_archiver"

// Collector records metrics. It satisfies the observer ports of the use cases
// and slackapi.CallObserver.
type Collector struct {
	retrievals        *prometheus.CounterVec
	retrievalDuration prometheus.Histogram
	apiCalls          *prometheus.CounterVec
	apiLatency        *prometheus.HistogramVec
	cacheLookups      *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		retrievals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrievals_total",
			Help:      "Conversation retrievals by result class.",
		}, []string{"class"}),
		retrievalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "retrieval_duration_seconds",
			Help:      "Wall time of a whole retrieval.",
			Buckets:   prometheus.DefBuckets,
		}),
		apiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slack_api_calls_total",
			Help:      "Slack API calls by method and outcome.",
		}, []string{"method", "outcome"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "slack_api_latency_seconds",
			Help:      "Slack API call latency by method.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Archive cache lookups by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.retrievals,
		c.retrievalDuration,
		c.apiCalls,
		c.apiLatency,
		c.cacheLookups,
	)

	return c
}

func (c *Collector) ObserveRetrieval(class string, elapsed time.Duration) {
	c.retrievals.WithLabelValues(class).Inc()
	c.retrievalDuration.Observe(elapsed.Seconds())
}

func (c *Collector) ObserveCall(method, outcome string, elapsed time.Duration) {
	c.apiCalls.WithLabelValues(method, outcome).Inc()
	c.apiLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}

// Handler serves the gathered metrics in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
