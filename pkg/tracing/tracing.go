package tracing

import (
	"context"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"focusmap/pkg/logger"
)

// EnableEnv включает трассировку, даже если endpoint не задан явно
const EnableEnv = "GATEWAY_OTEL_ENABLE"

// SetupFromEnv инициализирует OpenTelemetry, если это разрешено переменными окружения
// (GATEWAY_OTEL_ENABLE или OTEL_EXPORTER_OTLP_ENDPOINT).
// Возвращает функцию остановки провайдера и признак того, что трассировка включена.
func SetupFromEnv(serviceName string) (func(context.Context) error, bool) {
	noop := func(context.Context) error { return nil }

	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if os.Getenv(EnableEnv) == "" && endpoint == "" {
		return noop, false
	}
	if endpoint == "" {
		endpoint = "http://localhost:4318"
	}

	client := otlptracehttp.NewClient(
		otlptracehttp.WithEndpointURL(endpoint),
		otlptracehttp.WithInsecure(),
	)
	exp, err := otlptrace.New(context.Background(), client)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to init OTLP exporter, tracing disabled")
		return noop, false
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		// разные версии schema URL у SDK и semconv
		res = resource.NewSchemaless(semconv.ServiceNameKey.String(serviceName))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info().Str("endpoint", endpoint).Msg("OpenTelemetry tracing enabled")

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, true
}
