// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helioviewer

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes recorded in [Metrics.Requests].
const (
	outcomeOK             = "ok"
	outcomeServiceError   = "service_error"
	outcomeHTTPError      = "http_error"
	outcomeTransportError = "transport_error"
	outcomeDecodeError    = "decode_error"
)

// Metrics contains the Prometheus metrics of a [Client].
type Metrics struct {
	// Requests counts requests by endpoint and outcome.
	Requests *prometheus.CounterVec

	// Latency is the request latency by endpoint.
	Latency *prometheus.HistogramVec

	// CacheHits counts queries answered from the cache.
	CacheHits prometheus.Counter

	// CacheMisses counts queries that had to be requested.
	CacheMisses prometheus.Counter
}

// NewMetrics returns new metrics that are not registered anywhere.
func NewMetrics() *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "helioviewer_requests_total",
			Help: "Total number of Helioviewer and Helios API requests",
		}, []string{"endpoint", "outcome"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "helioviewer_request_duration_seconds",
			Help:    "Latency of Helioviewer and Helios API requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"endpoint"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "helioviewer_cache_hits_total",
			Help: "Total number of queries answered from the cache",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "helioviewer_cache_misses_total",
			Help: "Total number of queries not found in the cache",
		}),
	}
}

// NewRegisteredMetrics returns new metrics registered with the given registry.
func NewRegisteredMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := NewMetrics()
	if err := reg.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register helioviewer metrics: %w", err)
	}
	return m, nil
}

// Describe implements [prometheus.Collector].
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.Requests.Describe(ch)
	m.Latency.Describe(ch)
	m.CacheHits.Describe(ch)
	m.CacheMisses.Describe(ch)
}

// Collect implements [prometheus.Collector].
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.Requests.Collect(ch)
	m.Latency.Collect(ch)
	m.CacheHits.Collect(ch)
	m.CacheMisses.Collect(ch)
}

func (m *Metrics) observe(endpoint, outcome string) {
	m.Requests.WithLabelValues(endpoint, outcome).Inc()
}

var _ prometheus.Collector = &Metrics{}
