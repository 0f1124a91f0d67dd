package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestSplitCore_RoutesErrorsToErrOut(t *testing.T) {
	out := &zaptest.Buffer{}
	errOut := &zaptest.Buffer{}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	l := zap.New(splitCore(enc, zapcore.InfoLevel, out, errOut))
	l.Debug("dropped")
	l.Info("user created")
	l.Warn("slow")
	l.Error("seed failed")

	require.Len(t, out.Lines(), 2)
	assert.Contains(t, out.Lines()[0], "user created")
	assert.Contains(t, out.Lines()[1], "slow")

	require.Len(t, errOut.Lines(), 1)
	assert.Contains(t, errOut.Lines()[0], "seed failed")
}

func TestSplitCore_RespectsMinimumAboveError(t *testing.T) {
	out := &zaptest.Buffer{}
	errOut := &zaptest.Buffer{}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	l := zap.New(splitCore(enc, zapcore.DPanicLevel, out, errOut))
	l.Error("below minimum")

	assert.Empty(t, out.Lines())
	assert.Empty(t, errOut.Lines())
}

func TestNewWithConfig_FileOutput(t *testing.T) {
	path := t.TempDir() + "/seed.log"

	l, err := NewWithConfig(Config{
		Level:       "info",
		Format:      "json",
		OutputPath:  path,
		ServiceName: "user-seed",
	})
	require.NoError(t, err)
	l.Info("hello")
	assert.NoError(t, Sync(l))
}

func TestWithRunID(t *testing.T) {
	ctx, id := WithRunID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetRunID(ctx))
	assert.Empty(t, GetRunID(context.Background()))
}

func TestWithContext_AddsRunID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	ctx, id := WithRunID(context.Background())
	WithContext(ctx, base).Info("with id")
	WithContext(context.Background(), base).Info("without id")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, id, entries[0].ContextMap()["run_id"])
	assert.NotContains(t, entries[1].ContextMap(), "run_id")
}
