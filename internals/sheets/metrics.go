package sheets

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK        = "ok"
	outcomeRemote    = "remote_error"
	outcomeTransport = "transport_error"
)

var (
	storeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "suratku_store_requests_total",
		Help: "Jumlah panggilan ke endpoint spreadsheet per aksi dan hasil.",
	}, []string{"action", "outcome"})

	storeRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "suratku_store_request_duration_seconds",
		Help:    "Durasi panggilan ke endpoint spreadsheet.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32},
	}, []string{"action"})
)

func observe(action Action, outcome string, start time.Time) {
	storeRequestsTotal.WithLabelValues(action.String(), outcome).Inc()
	storeRequestDuration.WithLabelValues(action.String()).Observe(time.Since(start).Seconds())
}
