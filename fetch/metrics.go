package fetch

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// scope is the instrumentation scope name for OpenTelemetry.
const scope = "github.com/meridian-labs/fetch-go/fetch"

// otelInstruments mirrors analytics observations to OpenTelemetry metrics.
// The in-process counters in Analytics remain the source of truth; the
// mirror exists so deployments already exporting OTel metrics see the same
// traffic without scraping snapshots.
type otelInstruments struct {
	// requests counts observations, attributed by method and status.
	requests metric.Int64Counter

	// duration records response latency in seconds.
	duration metric.Float64Histogram
}

// WithMeterProvider mirrors every analytics observation to OpenTelemetry
// instruments registered on the given provider.
//
//	analytics := fetch.NewAnalytics(fetch.WithMeterProvider(provider))
//	client := fetch.New(fetch.WithAnalytics(analytics))
func WithMeterProvider(mp metric.MeterProvider) AnalyticsOption {
	return func(a *Analytics) {
		// Instrument creation only fails on malformed names; the mirror
		// stays disabled in that case.
		inst, err := newOtelInstruments(mp.Meter(scope))
		if err != nil {
			return
		}
		a.otel = inst
	}
}

// newOtelInstruments creates and registers the metric instruments.
func newOtelInstruments(meter metric.Meter) (*otelInstruments, error) {
	m := &otelInstruments{}
	var err error

	m.requests, err = meter.Int64Counter(
		"fetch.client.requests",
		metric.WithDescription("Number of completed request attempts"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.duration, err = meter.Float64Histogram(
		"fetch.client.request.duration",
		metric.WithDescription("Duration of requests in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.005, 0.01, 0.025, 0.05, 0.075, 0.1, 0.25, 0.5, 0.75, 1, 2.5, 5, 7.5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// record mirrors one observation. Nil-safe so Analytics can call it
// unconditionally.
func (m *otelInstruments) record(ctx context.Context, method string, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.Int("http.response.status_code", statusCode),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
