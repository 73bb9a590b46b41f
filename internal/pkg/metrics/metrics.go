package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records storefront business and HTTP metrics.
type Collector struct {
	ordersPlaced    *prometheus.CounterVec
	ordersCancelled prometheus.Counter
	fundsAdded      prometheus.Counter
	stateEvents     *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewCollector registers the storefront metrics on the provided registerer.
// A nil registerer yields a collector whose methods are no-ops.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		return &Collector{}
	}
	ordersPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Orders placed, by payment method.",
	}, []string{"payment_method"})
	ordersCancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_cancelled_total",
		Help: "Orders cancelled by customers.",
	})
	fundsAdded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_wallet_funds_added_total",
		Help: "Successful wallet top-ups.",
	})
	stateEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_state_events_total",
		Help: "State change notifications, by topic.",
	}, []string{"topic"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(ordersPlaced, ordersCancelled, fundsAdded, stateEvents, httpDuration)
	return &Collector{
		ordersPlaced:    ordersPlaced,
		ordersCancelled: ordersCancelled,
		fundsAdded:      fundsAdded,
		stateEvents:     stateEvents,
		httpDuration:    httpDuration,
	}
}

// IncOrderPlaced counts a placed order.
func (c *Collector) IncOrderPlaced(paymentMethod string) {
	if c == nil || c.ordersPlaced == nil {
		return
	}
	c.ordersPlaced.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

// IncOrderCancelled counts a cancelled order.
func (c *Collector) IncOrderCancelled() {
	if c == nil || c.ordersCancelled == nil {
		return
	}
	c.ordersCancelled.Inc()
}

// IncFundsAdded counts a wallet top-up.
func (c *Collector) IncFundsAdded() {
	if c == nil || c.fundsAdded == nil {
		return
	}
	c.fundsAdded.Inc()
}

// IncStateEvent counts a change notification on topic.
func (c *Collector) IncStateEvent(topic string) {
	if c == nil || c.stateEvents == nil {
		return
	}
	c.stateEvents.WithLabelValues(normalizeLabel(topic)).Inc()
}

// ObserveRequest records an HTTP request duration.
func (c *Collector) ObserveRequest(method, route, status string, duration time.Duration) {
	if c == nil || c.httpDuration == nil {
		return
	}
	c.httpDuration.WithLabelValues(method, normalizeLabel(route), status).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
