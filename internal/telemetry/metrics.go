package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FramesProcessed counts management frames read from a capture source
	FramesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wparse",
			Name:      "frames_processed_total",
			Help:      "Total number of management frames read from a capture source",
		},
		[]string{"source"},
	)

	// ElementsDecoded counts information elements decoded per element ID
	ElementsDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wparse",
			Name:      "elements_decoded_total",
			Help:      "Total number of information elements decoded",
		},
		[]string{"eid"},
	)

	// DecodeFailures counts frames or elements that could not be decoded
	DecodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wparse",
			Name:      "decode_failures_total",
			Help:      "Total number of frames or elements rejected as malformed",
		},
		[]string{"reason"},
	)

	// NetworksStored counts BSS rows written to storage
	NetworksStored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wparse",
			Name:      "networks_stored_total",
			Help:      "Total number of BSS records written to storage",
		},
		[]string{"session"},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry
// This function is idempotent and can be called multiple times safely
func InitMetrics() {
	once.Do(func() {
		// Register metrics, ignoring errors if already registered
		// This prevents panics when metrics are already in the registry
		prometheus.DefaultRegisterer.Register(FramesProcessed)
		prometheus.DefaultRegisterer.Register(ElementsDecoded)
		prometheus.DefaultRegisterer.Register(DecodeFailures)
		prometheus.DefaultRegisterer.Register(NetworksStored)
	})
}
