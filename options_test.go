package dispatch

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Biometria-se/grizzly-sub003/internal/logging"
	"github.com/Biometria-se/grizzly-sub003/internal/metrics"
	"github.com/Biometria-se/grizzly-sub003/types"
)

func TestOptions(t *testing.T) {
	t.Run("injected logger receives dispatch events", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		logger := logging.NewSlog(slog.New(handler))

		d, err := NewWeighted(testWorkers("1"), equalWeightClasses("User1"),
			WithLogger(logger))
		require.NoError(t, err)
		require.NoError(t, d.NewDispatch(types.Request{TargetUserCount: 2, SpawnRate: fastRate}))
		consume(t, d)

		out := buf.String()
		require.Contains(t, out, "new dispatch")
		require.Contains(t, out, "started user")
		require.Contains(t, out, "state transition")
	})

	t.Run("injected collector observes iterations and rebalances", func(t *testing.T) {
		collector := metrics.NewHistogram()

		d, err := NewWeighted(testWorkers("1", "2"), equalWeightClasses("User1"),
			WithMetrics(collector))
		require.NoError(t, err)
		require.NoError(t, d.NewDispatch(types.Request{TargetUserCount: 4, SpawnRate: fastRate}))
		consume(t, d)

		require.NoError(t, d.AddWorker(types.WorkerNode{ID: "3"}))
		consume(t, d)

		require.Equal(t, int64(5), collector.Iterations())
		require.Equal(t, int64(1), collector.Rebalances())
	})

	t.Run("defaults apply when no options are given", func(t *testing.T) {
		d, err := NewWeighted(testWorkers("1"), equalWeightClasses("User1"))
		require.NoError(t, err)
		require.NoError(t, d.NewDispatch(types.Request{TargetUserCount: 1, SpawnRate: fastRate}))
		consume(t, d)
	})
}
