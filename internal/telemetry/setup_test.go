package telemetry_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/royalcat/rdensity/internal/telemetry"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupWritesMetricsTextfile(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rdensity.prom")

	client, err := telemetry.Setup(ctx, telemetry.Config{AppName: "rdensity", MetricsTextfile: path})
	require.NoError(t, err)

	counter, err := otel.Meter("rdensity/test").Int64Counter("cells")
	require.NoError(t, err)
	counter.Add(ctx, 42)

	require.NoError(t, client.Flush(ctx))
	client.Shutdown(ctx)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "rdensity_cells")
	require.Contains(t, string(data), " 42")
}

func TestWriteMetricsWithoutTextfile(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	ctx := context.Background()
	client, err := telemetry.Setup(ctx, telemetry.Config{AppName: "rdensity"})
	require.NoError(t, err)
	defer client.Shutdown(ctx)

	require.NoError(t, client.WriteMetrics())
}
