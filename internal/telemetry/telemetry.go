package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const TracerName = "github.com/binarymatt/k4q"

func Tracer() oteltrace.Tracer {
	return otel.GetTracerProvider().Tracer(TracerName)
}

func Meter() metric.Meter {
	return otel.GetMeterProvider().Meter(TracerName)
}

type Options struct {
	ServiceName    string
	OTLP           bool
	MetricsAddress string
}

// Init installs the global meter provider and, when requested, an OTLP tracer
// provider and a prometheus endpoint. The returned closer flushes everything.
func Init(ctx context.Context, opts Options) (func(), error) {
	if opts.ServiceName == "" {
		opts.ServiceName = "k4q"
	}
	closers := []func(){}
	closer := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	if err := setupMetrics(); err != nil {
		return closer, err
	}
	if opts.OTLP {
		c, err := initProvider(ctx, opts.ServiceName)
		if err != nil {
			return closer, err
		}
		closers = append(closers, c)
	}
	if opts.MetricsAddress != "" {
		closers = append(closers, serveMetrics(opts.MetricsAddress))
	}
	return closer, nil
}

func initProvider(ctx context.Context, serviceName string) (func(), error) {
	client := otlptracegrpc.NewClient()
	exp, err := otlptrace.New(ctx, client)
	if err != nil {
		slog.Error("Error initializing trace", "error", err)
		return func() {}, err
	}
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		slog.Error("Error creating trace resource", "error", err)
		return func() {}, err
	}
	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(r),
	)
	closer := func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			slog.Error("error shutting down trace provider", "error", err)
		}
		if err := exp.Shutdown(context.Background()); err != nil {
			slog.Error("error shutting down trace exporter", "error", err)
		}
	}
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
	return closer, nil
}

var (
	metricsOnce sync.Once
	metricsErr  error
)

// setupMetrics registers the prometheus exporter with the default registry, which
// only accepts it once per process.
func setupMetrics() error {
	metricsOnce.Do(func() {
		exporter, err := prometheus.New()
		if err != nil {
			metricsErr = err
			return
		}
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
		otel.SetMeterProvider(provider)
	})
	return metricsErr
}

func serveMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("serving metrics", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server stopped", "error", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("error shutting down metrics server", "error", err)
		}
	}
}
