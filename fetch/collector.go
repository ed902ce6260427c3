package fetch

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus descriptors for the analytics collector view.
var (
	descRequestsTotal = prometheus.NewDesc(
		"fetch_client_requests_total",
		"Number of completed request attempts.",
		nil, nil,
	)
	descRequestsSucceeded = prometheus.NewDesc(
		"fetch_client_requests_succeeded_total",
		"Number of request attempts with a 2xx status.",
		nil, nil,
	)
	descRequestsFailed = prometheus.NewDesc(
		"fetch_client_requests_failed_total",
		"Number of request attempts with a non-2xx status.",
		nil, nil,
	)
	descRequestsByMethod = prometheus.NewDesc(
		"fetch_client_requests_method_total",
		"Number of completed request attempts by HTTP method.",
		[]string{"method"}, nil,
	)
	descFailuresByCode = prometheus.NewDesc(
		"fetch_client_request_failures_total",
		"Number of failed request attempts by status code.",
		[]string{"code"}, nil,
	)
	descLatencyMean = prometheus.NewDesc(
		"fetch_client_request_latency_mean_seconds",
		"Arithmetic mean of observed response latencies.",
		nil, nil,
	)
)

// analyticsCollector exposes an Analytics accumulator as a read-only
// Prometheus collector. Metrics are built from a snapshot at scrape time;
// the live counters are never handed to the registry.
type analyticsCollector struct {
	analytics *Analytics
}

// Collector returns a prometheus.Collector view over the accumulator,
// suitable for prometheus.Register:
//
//	prometheus.MustRegister(client.Analytics().Collector())
func (a *Analytics) Collector() prometheus.Collector {
	return &analyticsCollector{analytics: a}
}

// Describe implements prometheus.Collector.
func (c *analyticsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descRequestsTotal
	ch <- descRequestsSucceeded
	ch <- descRequestsFailed
	ch <- descRequestsByMethod
	ch <- descFailuresByCode
	ch <- descLatencyMean
}

// Collect implements prometheus.Collector.
func (c *analyticsCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.analytics.Snapshot()

	ch <- prometheus.MustNewConstMetric(
		descRequestsTotal, prometheus.CounterValue, float64(snap.TotalRequests))
	ch <- prometheus.MustNewConstMetric(
		descRequestsSucceeded, prometheus.CounterValue, float64(snap.SuccessfulRequests))
	ch <- prometheus.MustNewConstMetric(
		descRequestsFailed, prometheus.CounterValue, float64(snap.FailedRequests))

	for method, count := range snap.RequestMethods {
		ch <- prometheus.MustNewConstMetric(
			descRequestsByMethod, prometheus.CounterValue, float64(count), method)
	}
	for code, count := range snap.ErrorCodes {
		ch <- prometheus.MustNewConstMetric(
			descFailuresByCode, prometheus.CounterValue, float64(count), strconv.Itoa(code))
	}

	ch <- prometheus.MustNewConstMetric(
		descLatencyMean, prometheus.GaugeValue, snap.AverageLatency.Seconds())
}
