package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quill"

// outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	GenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_total",
			Help:      "Generation calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	GenerationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_failures_total",
			Help:      "Failed generation calls by error category",
		},
		[]string{"provider", "category"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time of one generation call",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 40, 80, 160, 320},
		},
		[]string{"provider"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Submissions rejected before any call, by field",
		},
		[]string{"field"},
	)

	BusyRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "busy_rejections_total",
			Help:      "Submissions rejected because a generation was in flight",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

func RecordGeneration(provider string, elapsed time.Duration, category string) {
	GenerationDuration.WithLabelValues(provider).Observe(elapsed.Seconds())

	if category == "" {
		GenerationTotal.WithLabelValues(provider, OutcomeSuccess).Inc()
		return
	}

	GenerationTotal.WithLabelValues(provider, OutcomeFailure).Inc()
	GenerationFailures.WithLabelValues(provider, category).Inc()
}

func RecordValidationFailure(field string) {
	ValidationFailures.WithLabelValues(field).Inc()
}

func RecordBusy() {
	BusyRejections.Inc()
}

// counts requests by route template so unmatched paths share one label
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
