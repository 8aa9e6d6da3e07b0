package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	LoginRequestsTotal      metric.Int64Counter
	LoginDurationSeconds    metric.Float64Histogram
	RegisterRequestsTotal   metric.Int64Counter
	RegisterDurationSeconds metric.Float64Histogram
	DbQueryErrorsTotal      metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// Get returns the application metrics instruments, creating them on first use
// from the globally configured MeterProvider. When the tracer/meter setup has
// not run (e.g. in tests) the global provider is a no-op and so are the
// instruments.
func Get() *AppMetrics {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("expensetracker-be")
		var err error
		m := &AppMetrics{}

		m.LoginRequestsTotal, err = meter.Int64Counter(
			"login_requests_total",
			metric.WithDescription("Total number of login requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create login_requests_total: %v", err)
		}

		m.LoginDurationSeconds, err = meter.Float64Histogram(
			"login_duration_seconds",
			metric.WithDescription("Duration of successful login requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create login_duration_seconds: %v", err)
		}

		m.RegisterRequestsTotal, err = meter.Int64Counter(
			"register_requests_total",
			metric.WithDescription("Total number of register requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create register_requests_total: %v", err)
		}

		m.RegisterDurationSeconds, err = meter.Float64Histogram(
			"register_duration_seconds",
			metric.WithDescription("Duration of successful register requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create register_duration_seconds: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		appMetrics = m
	})
	return appMetrics
}
