// Package telemetry wires slog, OpenTelemetry and the Prometheus textfile
// for a single command run.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	promclient "github.com/prometheus/client_golang/prometheus"
	sloglogrus "github.com/samber/slog-logrus/v2"
	slogmulti "github.com/samber/slog-multi"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/contrib/exporters/autoexport"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	logglobal "go.opentelemetry.io/otel/log/global"
	logsdk "go.opentelemetry.io/otel/sdk/log"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	AppName string
	// Verbose enables debug logging.
	Verbose bool
	// MetricsTextfile, when set, receives the run metrics in the Prometheus
	// text format on Shutdown.
	MetricsTextfile string
}

type Client struct {
	log *slog.Logger

	registry        *promclient.Registry
	metricsTextfile string

	tracerProvider *tracesdk.TracerProvider
	metricProvider *metricsdk.MeterProvider
	loggerProvider *logsdk.LoggerProvider
}

func setEnvIfNotSet(key, value string) {
	if _, ok := os.LookupEnv(key); !ok {
		os.Setenv(key, value)
	}
}

// Setup installs global providers and the default slog logger. Exporters
// are picked from the OTEL_*_EXPORTER variables and default to none.
func Setup(ctx context.Context, cfg Config) (*Client, error) {
	setEnvIfNotSet("OTEL_TRACES_EXPORTER", "none")
	setEnvIfNotSet("OTEL_LOGS_EXPORTER", "none")
	setEnvIfNotSet("OTEL_METRICS_EXPORTER", "none")

	client := &Client{
		registry:        promclient.NewRegistry(),
		metricsTextfile: cfg.MetricsTextfile,
	}

	hostName, _ := os.Hostname()
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.AppName),
			semconv.HostName(hostName),
			semconv.ServiceInstanceID(uuid.NewString()),
		),
	)
	if err != nil {
		return nil, err
	}

	promExporter, err := otelprom.New(otelprom.WithNamespace(cfg.AppName), otelprom.WithRegisterer(client.registry))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}
	metricExporter, err := autoexport.NewMetricReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metric exporter: %w", err)
	}
	client.metricProvider = metricsdk.NewMeterProvider(
		metricsdk.WithResource(r),
		metricsdk.WithReader(promExporter),
		metricsdk.WithReader(metricExporter),
	)
	otel.SetMeterProvider(client.metricProvider)

	spanExporter, err := autoexport.NewSpanExporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize trace exporter: %w", err)
	}
	client.tracerProvider = tracesdk.NewTracerProvider(
		tracesdk.WithResource(r),
		tracesdk.WithBatcher(spanExporter),
	)
	otel.SetTracerProvider(client.tracerProvider)

	logsExporter, err := autoexport.NewLogExporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize log exporter: %w", err)
	}
	client.loggerProvider = logsdk.NewLoggerProvider(
		logsdk.WithResource(r),
		logsdk.WithProcessor(logsdk.NewBatchProcessor(logsExporter)),
	)
	logglobal.SetLoggerProvider(client.loggerProvider)

	level := slog.LevelInfo
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Verbose {
		level = slog.LevelDebug
		logrus.SetLevel(logrus.DebugLevel)
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(
		sloglogrus.Option{Level: level, Logger: logrus.StandardLogger()}.NewLogrusHandler(),
		otelslog.NewHandler(cfg.AppName, otelslog.WithLoggerProvider(client.loggerProvider)),
	)))

	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(cause error) {
		client.log.Error("otel error", "error", cause.Error())
	}))
	client.log = slog.With("component", "telemetry")

	return client, nil
}

func (client *Client) Flush(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return client.metricProvider.ForceFlush(ctx)
	})
	g.Go(func() error {
		return client.loggerProvider.ForceFlush(ctx)
	})
	g.Go(func() error {
		return client.tracerProvider.ForceFlush(ctx)
	})

	return g.Wait()
}

// WriteMetrics writes everything recorded so far to the configured textfile.
func (client *Client) WriteMetrics() error {
	if client.metricsTextfile == "" {
		return nil
	}
	err := promclient.WriteToTextfile(client.metricsTextfile, client.registry)
	if err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	client.log.Info("Metrics written", "file", client.metricsTextfile)
	return nil
}

func (client *Client) Shutdown(ctx context.Context) {
	if err := client.WriteMetrics(); err != nil {
		client.log.ErrorContext(ctx, "error writing metrics", "error", err.Error())
	}

	if err := client.metricProvider.Shutdown(ctx); err != nil {
		client.log.ErrorContext(ctx, "error shutting down metric provider", "error", err.Error())
	}
	if err := client.tracerProvider.Shutdown(ctx); err != nil {
		client.log.ErrorContext(ctx, "error shutting down tracer provider", "error", err.Error())
	}
	if err := client.loggerProvider.Shutdown(ctx); err != nil {
		client.log.ErrorContext(ctx, "error shutting down logger provider", "error", err.Error())
	}
}
