package fetcher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK      = "ok"
	outcomeStatus  = "status"
	outcomeNetwork = "network"
	outcomeTimeout = "timeout"
	outcomeDecode  = "decode"
)

var (
	proxyAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tgchan_proxy_attempts_total",
			Help: "Upstream fetch attempts by proxy and outcome",
		},
		[]string{"proxy", "outcome"},
	)

	proxyAttemptDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tgchan_proxy_attempt_duration_seconds",
			Help:    "Duration of a single upstream fetch attempt",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		},
		[]string{"proxy"},
	)
)

func observe(proxy, outcome string, d time.Duration) {
	proxyAttemptsTotal.WithLabelValues(proxy, outcome).Inc()
	proxyAttemptDuration.WithLabelValues(proxy).Observe(d.Seconds())
}
