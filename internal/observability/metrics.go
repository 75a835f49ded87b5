package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "mortgage-service"

// Metrics holds the service-level instruments. Quote counters carry a
// product attribute; cache counters do not.
type Metrics struct {
	QuotesTotal   metric.Int64Counter
	QuoteFailures metric.Int64Counter
	CacheHits     metric.Int64Counter
	CacheMisses   metric.Int64Counter
	QuoteDuration metric.Float64Histogram
}

// InitMetrics wires the OpenTelemetry meter provider to a Prometheus
// exporter and returns the instruments together with the scrape handler.
func InitMetrics() (*Metrics, http.Handler, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter(meterName)

	m := &Metrics{}

	if m.QuotesTotal, err = meter.Int64Counter("quotes_total",
		metric.WithDescription("Quote requests processed"),
	); err != nil {
		return nil, nil, fmt.Errorf("create quotes_total: %w", err)
	}
	if m.QuoteFailures, err = meter.Int64Counter("quote_failures_total",
		metric.WithDescription("Quote requests that ended in an error"),
	); err != nil {
		return nil, nil, fmt.Errorf("create quote_failures_total: %w", err)
	}
	if m.CacheHits, err = meter.Int64Counter("quote_cache_hits_total",
		metric.WithDescription("Quote responses served from cache"),
	); err != nil {
		return nil, nil, fmt.Errorf("create quote_cache_hits_total: %w", err)
	}
	if m.CacheMisses, err = meter.Int64Counter("quote_cache_misses_total",
		metric.WithDescription("Quote requests not found in cache"),
	); err != nil {
		return nil, nil, fmt.Errorf("create quote_cache_misses_total: %w", err)
	}
	if m.QuoteDuration, err = meter.Float64Histogram("quote_duration_seconds",
		metric.WithDescription("End-to-end quote calculation latency"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, nil, fmt.Errorf("create quote_duration_seconds: %w", err)
	}

	return m, promhttp.Handler(), nil
}
