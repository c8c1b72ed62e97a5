// Package metrics collects and exposes Prometheus metrics for the RPC layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector is the interface the HTTP layer and services record through.
type Collector interface {
	RecordRequest(route string, statusCode int)
	RecordRequestLatency(route string, duration time.Duration)
	RecordSignUp(outcome string)
	RecordSignIn(outcome string)
}

// PrometheusCollector implements Collector on a prometheus.Registerer.
type PrometheusCollector struct {
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	signUps        *prometheus.CounterVec
	signIns        *prometheus.CounterVec
}

// NewCollector creates a PrometheusCollector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clipstream_rpc_requests_total",
			Help: "RPC requests by route and HTTP status code.",
		}, []string{"route", "status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clipstream_rpc_latency_seconds",
			Help:    "RPC request latency in seconds by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		signUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clipstream_signups_total",
			Help: "Sign-up attempts by outcome.",
		}, []string{"outcome"}),
		signIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clipstream_signins_total",
			Help: "Sign-in attempts by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.requests,
		c.requestLatency,
		c.signUps,
		c.signIns,
	)

	return c
}

// RecordRequest counts one completed RPC request.
func (c *PrometheusCollector) RecordRequest(route string, statusCode int) {
	c.requests.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency observes how long one RPC request took.
func (c *PrometheusCollector) RecordRequestLatency(route string, duration time.Duration) {
	c.requestLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordSignUp counts one sign-up attempt with its outcome label.
func (c *PrometheusCollector) RecordSignUp(outcome string) {
	c.signUps.WithLabelValues(outcome).Inc()
}

// RecordSignIn counts one sign-in attempt with its outcome label.
func (c *PrometheusCollector) RecordSignIn(outcome string) {
	c.signIns.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
