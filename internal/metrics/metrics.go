package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "seminar"

// Registry holds every metric this service exports.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

var (
	// SeminarOperations counts rule engine calls by operation and outcome
	// ("ok", "rejected" or "error").
	SeminarOperations = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Seminar rule engine operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	// RuleRejections counts business-rule rejections by HTTP status.
	RuleRejections = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_rejections_total",
			Help:      "Requests rejected by a seminar business rule",
		},
		[]string{"operation", "status"},
	)

	// CacheLookups counts read-through cache results by cache name.
	CacheLookups = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Read-through cache lookups by result (hit or miss)",
		},
		[]string{"cache", "result"},
	)
)

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
