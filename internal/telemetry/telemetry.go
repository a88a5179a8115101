// Package telemetry provides OpenTelemetry instrumentation for Honeycomb.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/samdwyer/minesweeper/internal/config"
)

const (
	serviceName    = "minesweeper"
	serviceVersion = "0.1.0"

	honeycombEndpoint = "api.honeycomb.io"
)

// Setup initializes OpenTelemetry with an OTLP HTTP exporter pointed at
// Honeycomb. Standard OTEL_* environment variables still apply on top.
//
// Returns a shutdown function that should be called on application exit.
func Setup(ctx context.Context, cfg config.Telemetry) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(honeycombEndpoint),
		otlptracehttp.WithHeaders(map[string]string{
			"x-honeycomb-team":    cfg.APIKey,
			"x-honeycomb-dataset": cfg.Dataset,
		}),
	)
	if err != nil {
		return nil, err
	}

	// Own resource instead of merging with Default() to avoid schema URL conflicts
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("telemetry.sdk.language", "go"),
			attribute.String("telemetry.sdk.name", "opentelemetry"),
			attribute.String("host.name", getHostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.name", "go"),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Init sets up export when an API key is configured. Failures are logged and
// the game keeps running without observability. The returned shutdown is
// always safe to call.
func Init(ctx context.Context, cfg config.Telemetry, log logrus.FieldLogger) func(context.Context) error {
	nop := func(context.Context) error { return nil }
	if !cfg.Enabled() {
		log.Debug("telemetry disabled, no API key configured")
		return nop
	}

	shutdown, err := Setup(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("telemetry setup failed, game will run without observability")
		return nop
	}
	log.WithField("dataset", cfg.Dataset).Info("telemetry enabled")
	return shutdown
}

// Tracer returns a named tracer for the given component from the global
// provider.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("minesweeper/" + name)
}

// NoopTracer returns a no-op tracer for use when telemetry is disabled.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("minesweeper/noop")
}

// getHostname returns the system hostname, or "unknown" if it cannot be determined.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
