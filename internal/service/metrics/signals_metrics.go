package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	SignalsLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "signalmix",
			Subsystem: "signals",
			Name:      "latency_seconds",
			Help:      "Latency of signal endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	SignalsErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signalmix",
			Subsystem: "signals",
			Name:      "errors_total",
			Help:      "Errors by signal endpoint and kind",
		},
		[]string{"endpoint", "kind"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(SignalsLatency, SignalsErrors)
	})
}
