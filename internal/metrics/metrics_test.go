package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveResolution(t *testing.T) {
	before := testutil.ToFloat64(ContractResolutions.WithLabelValues("nft-drop", OutcomeSuccess))
	ObserveResolution("nft-drop", OutcomeSuccess, 20*time.Millisecond)
	ObserveResolution("nft-drop", OutcomeSuccess, 30*time.Millisecond)

	after := testutil.ToFloat64(ContractResolutions.WithLabelValues("nft-drop", OutcomeSuccess))
	assert.Equal(t, before+2, after)
	assert.Equal(t, 1, testutil.CollectAndCount(ContractResolutionDuration.WithLabelValues("nft-drop").(prometheus.Histogram)))
}

func TestHTTPResponses(t *testing.T) {
	HTTPResponses.WithLabelValues("/health", "200").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPResponses.WithLabelValues("/health", "200")))
}

func TestMetricsRegistration(t *testing.T) {
	metrics := []prometheus.Collector{
		HTTPResponses,
		ContractResolutions,
		ContractResolutionDuration,
		ContractDetections,
	}

	for _, metric := range metrics {
		err := prometheus.Register(metric)
		if err != nil {
			_, ok := err.(prometheus.AlreadyRegisteredError)
			assert.True(t, ok, "Metric should already be registered")
		}
	}
}
