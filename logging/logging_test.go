package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitStoresLogger(t *testing.T) {
	ctx, err := Init(context.Background(), WithLogLevel("debug"), WithLogFormat(LogFormatConsole))
	require.NoError(t, err)
	l := ctxzap.Extract(ctx)
	require.NotNil(t, l)
	require.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestInitBadLevelFallsBackToInfo(t *testing.T) {
	ctx, err := Init(context.Background(), WithLogLevel("loud"))
	require.NoError(t, err)
	l := ctxzap.Extract(ctx)
	require.False(t, l.Core().Enabled(zapcore.DebugLevel))
	require.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestWithRank(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	ctxzap.Extract(WithRank(ctx, 3)).Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, int64(3), entries[0].ContextMap()["rank"])
}

func TestWithOutputPathsWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ringpath.log")
	ctx, err := Init(context.Background(), WithLogFormat(LogFormatJSON), WithOutputPaths([]string{path}))
	require.NoError(t, err)

	l := ctxzap.Extract(ctx)
	l.Info("round done", zap.Int("step", 2))
	require.NoError(t, l.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"msg":"round done"`)
	require.Contains(t, string(raw), `"step":2`)
}

func TestWithOutputPathsEmptyKeepsStderr(t *testing.T) {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stderr"}
	WithOutputPaths(nil)(&zc)
	require.Equal(t, []string{"stderr"}, zc.OutputPaths)
}
