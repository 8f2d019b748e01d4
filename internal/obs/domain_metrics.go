package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// OrdersProcessedTotal counts per-order pipeline outcomes.
	OrdersProcessedTotal *prometheus.CounterVec
	// OrderFailuresTotal counts per-order failures by taxonomy code.
	OrderFailuresTotal *prometheus.CounterVec
	// OrdersFlaggedTotal counts orders flagged for manual review.
	OrdersFlaggedTotal prometheus.Counter
	// OrderFinalTotal records the final payable amount per successful order.
	OrderFinalTotal prometheus.Histogram
	// BatchDuration records end-to-end batch run latency in seconds.
	BatchDuration prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		OrdersProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_processed_total",
			Help:      "Count of processed orders by outcome.",
		}, []string{"result"})
		OrderFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_failures_total",
			Help:      "Count of failed orders by failure code.",
		}, []string{"code"})
		OrdersFlaggedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_flagged_total",
			Help:      "Count of orders flagged for manual review.",
		})
		OrderFinalTotal = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_final_total",
			Help:      "Final payable totals for successful orders.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		})
		BatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "End-to-end batch run duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		})
		reg.MustRegister(OrdersProcessedTotal, OrderFailuresTotal, OrdersFlaggedTotal, OrderFinalTotal, BatchDuration)
	})
}
