package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/devconsole"
	"github.com/aretw0/devconsole/pkg/command"
	"github.com/aretw0/devconsole/pkg/observability"
)

func debugCommand() *command.Intermediate {
	debug := command.NewIntermediate(command.IntermediateConfig{})
	debug.PutSubCommand("true", command.Action(func(string, []string) {}))
	debug.PutSubCommand("false", command.Action(func(string, []string) {}))
	return debug
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	console := devconsole.New(devconsole.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, console.Register("debug", debugCommand()))

	ctx := context.Background()
	_, err = console.Execute(ctx, "debug true")
	require.NoError(t, err)
	_, err = console.Execute(ctx, "debug false")
	require.NoError(t, err)
	_, err = console.Execute(ctx, "debug maybe")
	require.Error(t, err)
	_, err = console.Execute(ctx, "debug")
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lines.WithLabelValues("debug", "executed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lines.WithLabelValues("debug", "unresolved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lines.WithLabelValues("debug", "incomplete")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NodeRuns.WithLabelValues("debug", "intermediate")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NodeRuns.WithLabelValues("debug", "terminal")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.LineDuration))
}

func TestNewMetrics_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	second, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	assert.Same(t, first.Lines, second.Lines)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	console := devconsole.New(devconsole.WithLifecycleHooks(observability.LoggingHooks(logger)))
	require.NoError(t, console.Register("debug", debugCommand()))

	ctx := context.Background()
	_, _ = console.Execute(ctx, "debug true")
	_, _ = console.Execute(ctx, "debug maybe")

	out := buf.String()
	assert.Contains(t, out, `"msg":"node_run"`)
	assert.Contains(t, out, `"msg":"line_done"`)
	assert.Contains(t, out, `"msg":"line_failed"`)
	assert.Contains(t, out, `"outcome":"unresolved"`)
	assert.Contains(t, out, `"kind":"terminal"`)
}
