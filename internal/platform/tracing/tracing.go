package tracing

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/velore/contactbook/internal/platform/envutil"
	"github.com/velore/contactbook/internal/platform/logger"
)

var (
	initOnce sync.Once
	shutdown func(context.Context) error
)

// Init wires a global tracer provider when OTEL_ENABLED is set. The returned
// shutdown func is nil when tracing is disabled.
func Init(ctx context.Context, log *logger.Logger, serviceName string) func(context.Context) error {
	initOnce.Do(func() {
		if !envutil.Bool("OTEL_ENABLED", false) {
			return
		}
		serviceName = strings.TrimSpace(serviceName)
		if serviceName == "" {
			serviceName = "contactbook"
		}

		res, err := resource.New(ctx, resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		))
		if err != nil && log != nil {
			log.Warn("otel resource init failed (continuing)", "error", err)
		}

		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			if log != nil {
				log.Warn("otel exporter init failed, tracing disabled", "error", err)
			}
			return
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		shutdown = tp.Shutdown
		if log != nil {
			log.Info("otel tracing initialized", "service", serviceName)
		}
	})
	return shutdown
}
