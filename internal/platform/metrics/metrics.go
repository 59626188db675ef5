package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the storefront's Prometheus collectors.
type Metrics struct {
	CartMutations      *prometheus.CounterVec
	SlotWriteFailures  prometheus.Counter
	CheckoutLinks      *prometheus.CounterVec
	FilterApplications prometheus.Counter
	ActiveSessions     prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CartMutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart mutations by operation",
		}, []string{"op"}),
		SlotWriteFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "storefront_cart_slot_write_failures_total",
			Help: "Cart slot writes that failed and were dropped",
		}),
		CheckoutLinks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_checkout_links_total",
			Help: "Messaging links built by kind",
		}, []string{"kind"}),
		FilterApplications: f.NewCounter(prometheus.CounterOpts{
			Name: "storefront_catalog_filter_applications_total",
			Help: "Catalog filter recomputations",
		}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_sessions_active",
			Help: "Sessions currently held in memory",
		}),
	}
}

func (m *Metrics) CartMutation(op string) {
	m.CartMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) SlotWriteFailed() {
	m.SlotWriteFailures.Inc()
}

func (m *Metrics) CheckoutLink(kind string) {
	m.CheckoutLinks.WithLabelValues(kind).Inc()
}

func (m *Metrics) FilterApplied() {
	m.FilterApplications.Inc()
}

func (m *Metrics) SessionsActive(n int) {
	m.ActiveSessions.Set(float64(n))
}
