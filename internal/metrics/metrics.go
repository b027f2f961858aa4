package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments of the recorder and query path.
type Metrics struct {
	registry *prometheus.Registry

	WritesTotal  *prometheus.CounterVec // labels: pair
	GrowsTotal   prometheus.Counter
	QueriesTotal prometheus.Counter
	QueryErrors  prometheus.Counter
	CommitDur    prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		WritesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "netvolume_writes_total",
			Help: "Observation writes committed to a pair's ring.",
		}, []string{"pair"}),
		GrowsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "netvolume_grows_total",
			Help: "Ring capacity grow operations.",
		}),
		QueriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "netvolume_queries_total",
			Help: "Historical observe queries served.",
		}),
		QueryErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "netvolume_query_errors_total",
			Help: "Observe queries rejected, mostly targets older than retention.",
		}),
		CommitDur: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "netvolume_commit_duration_seconds",
			Help:    "Duration of one per-second commit across all pairs.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
