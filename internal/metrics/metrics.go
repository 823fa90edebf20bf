package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "cafeteria"

// Rejection reasons for OrdersRejected.
const (
	ReasonInsufficientFunds = "insufficient_funds"
	ReasonInvalidCart       = "invalid_cart"
	ReasonForbidden         = "forbidden"
	ReasonPersistence       = "persistence"
)

type Metrics struct {
	OrdersPlaced   prometheus.Counter
	OrdersRejected *prometheus.CounterVec
	Revenue        prometheus.Counter
	MenuImports    *prometheus.CounterVec
	StoreSaves     *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		OrdersPlaced: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders committed from a student cart.",
		}),
		OrdersRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_rejected_total",
			Help:      "Order placements refused, by reason.",
		}, []string{"reason"}),
		Revenue: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_revenue_total",
			Help:      "Sum of committed order totals.",
		}),
		MenuImports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menu_imports_total",
			Help:      "Menu import attempts, by result.",
		}, []string{"result"}),
		StoreSaves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_saves_total",
			Help:      "Writes of the persisted document, by result.",
		}, []string{"result"}),
	}
}

// NewUnregistered builds counters on a private registry. Used by tests and by
// callers that do not expose metrics.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}

// The Observe methods do nothing on a nil *Metrics.
func (m *Metrics) ObserveOrder(total decimal.Decimal) {
	if m == nil {
		return
	}
	m.OrdersPlaced.Inc()
	m.Revenue.Add(total.InexactFloat64())
}

func (m *Metrics) ObserveRejection(reason string) {
	if m == nil {
		return
	}
	m.OrdersRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveImport(err error) {
	if m == nil {
		return
	}
	m.MenuImports.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) ObserveSave(err error) {
	if m == nil {
		return
	}
	m.StoreSaves.WithLabelValues(result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Handler exposes the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
