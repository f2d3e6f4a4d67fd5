package metrics

import (
	"time"

	"github.com/a2sh3r/mlmnet/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	distributionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mlmnet_distributions_total",
			Help: "Commission distributions by event kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
	creditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mlmnet_commission_credits_total",
			Help: "Ledger entries written by event kind and level",
		},
		[]string{"kind", "level"},
	)
	creditedAmount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mlmnet_commission_credited_amount",
			Help: "Sum of credited commission amounts by event kind",
		},
		[]string{"kind"},
	)
	withdrawalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mlmnet_withdrawals_total",
			Help: "Withdrawal workflow transitions by resulting status",
		},
		[]string{"status"},
	)
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mlmnet_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mlmnet_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

var levelLabels = [...]string{"1", "2", "3", "4", "5", "6", "7", "8"}

// RecordDistribution counts one distribution and every credit it wrote.
func RecordDistribution(kind models.EventKind, outcome string, credits []models.Credit) {
	distributionsTotal.WithLabelValues(string(kind), outcome).Inc()

	for _, c := range credits {
		if c.Level >= 1 && c.Level <= len(levelLabels) {
			creditsTotal.WithLabelValues(string(kind), levelLabels[c.Level-1]).Inc()
		}
		creditedAmount.WithLabelValues(string(kind)).Add(c.Amount.InexactFloat64())
	}
}

func RecordWithdrawal(status models.WithdrawalStatus) {
	withdrawalsTotal.WithLabelValues(string(status)).Inc()
}

func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
