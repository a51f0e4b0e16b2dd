package httpclient

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/klogs-hub/klogs-pgw-go/http_client"

const (
	outcomeSuccess   = "success"
	outcomeAPIError  = "api_error"
	outcomeMalformed = "malformed_response"
	outcomeTransport = "transport_error"
)

type metrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// newMetrics never fails. A registration problem is logged and the
// instrument falls back to a no-op.
func newMetrics(mp metric.MeterProvider, log *zap.Logger) *metrics {
	meter := mp.Meter(instrumentationName)

	requests, err := meter.Int64Counter(
		"klogs.client.requests",
		metric.WithDescription("Number of requests sent to the payment gateway"),
	)
	if err != nil {
		log.Warn("failed to create requests counter", zap.Error(err))
		requests = noop.Int64Counter{}
	}

	duration, err := meter.Float64Histogram(
		"klogs.client.duration",
		metric.WithDescription("Duration of payment gateway calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		log.Warn("failed to create duration histogram", zap.Error(err))
		duration = noop.Float64Histogram{}
	}

	return &metrics{requests: requests, duration: duration}
}

func (m *metrics) record(ctx context.Context, method, path, outcome string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
		attribute.String("outcome", outcome),
		attribute.Int("http.response.status_code", status),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
