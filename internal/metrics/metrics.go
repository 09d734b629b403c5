package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcomes
const (
	OutcomeSuccess      = "success"
	OutcomeTypeMismatch = "type_mismatch"
	OutcomeError        = "error"
)

var (
	HTTPResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_responses_total",
		Help: "The total number of HTTP responses",
	}, []string{"path", "status_code"})

	ContractResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contract_resolutions_total",
		Help: "Contract client initializations by expected type and outcome",
	}, []string{"contract_type", "outcome"})

	ContractResolutionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "contract_resolution_duration_seconds",
		Help:    "Duration of contract client initialization",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
	}, []string{"contract_type"})

	ContractDetections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contract_detections_total",
		Help: "Contract type detections by detected type",
	}, []string{"contract_type"})
)

// ObserveResolution records one initialization attempt
func ObserveResolution(contractType, outcome string, elapsed time.Duration) {
	ContractResolutions.WithLabelValues(contractType, outcome).Inc()
	ContractResolutionDuration.WithLabelValues(contractType).Observe(elapsed.Seconds())
}
