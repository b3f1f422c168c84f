package core

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "contactbook"

type metrics struct {
	registry        *prometheus.Registry
	messages        *prometheus.CounterVec
	sponsoredAmount prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "messages_total",
			Help:      "Handled IPC messages by message and result.",
		}, []string{"msg", "result"}),
		sponsoredAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sponsored_amount_total",
			Help:      "Amount paid by sponsorships since start.",
		}),
	}
	m.registry.MustRegister(m.messages, m.sponsoredAmount)
	return m
}

// observe counts a handled message. result is "true" or "false" for a
// completed call, or the error code name of an aborted one.
func (m *metrics) observe(msg uint, success bool, err error) {
	var result string
	switch {
	case err != nil:
		result = ErrorToCode(err).String()
	case success:
		result = "true"
	default:
		result = "false"
	}
	m.messages.WithLabelValues(MsgToString(msg), result).Inc()
}

func (m *metrics) sponsored() {
	m.sponsoredAmount.Add(float64(SponsorshipAmount))
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
