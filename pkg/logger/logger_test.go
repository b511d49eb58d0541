package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gogetmemo/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	t.Run("development with explicit level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		require.NotNil(t, log)
		assert.True(t, log.Zap().Core().Enabled(zap.DebugLevel))
	})

	t.Run("production defaults to info", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "")
		require.NoError(t, err)
		assert.False(t, log.Zap().Core().Enabled(zap.DebugLevel))
		assert.True(t, log.Zap().Core().Enabled(zap.InfoLevel))
	})

	t.Run("level is case insensitive", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "WARN")
		require.NoError(t, err)
		assert.False(t, log.Zap().Core().Enabled(zap.InfoLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "loud")
		require.Error(t, err)
		assert.Nil(t, log)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestFromContext(t *testing.T) {
	t.Run("success when logger exists in context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		retrieved, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, retrieved)
	})

	t.Run("error when no logger in context", func(t *testing.T) {
		retrieved, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, retrieved)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})

	t.Run("error when context has non-logger value", func(t *testing.T) {
		type ctxKeyType struct{}
		ctx := context.WithValue(context.Background(), ctxKeyType{}, "not a logger")

		retrieved, err := logger.FromContext(ctx)
		require.Error(t, err)
		assert.Nil(t, retrieved)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLog(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	t.Run("prefers context logger", func(t *testing.T) {
		ctxLogger := logger.NewNop()
		globalLogger := logger.NewNop()
		logger.SetGlobalLogger(globalLogger)

		ctx := logger.NewContext(context.Background(), ctxLogger)
		assert.Same(t, ctxLogger, logger.Log(ctx))
	})

	t.Run("falls back to global logger", func(t *testing.T) {
		globalLogger := logger.NewNop()
		logger.SetGlobalLogger(globalLogger)

		assert.Same(t, globalLogger, logger.Log(context.Background()))
	})

	t.Run("falls back to fallback logger", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		log := logger.Log(context.Background())
		require.NotNil(t, log)
		assert.NotPanics(t, func() {
			log.Warn(context.Background(), "fallback works")
		})
	})
}

func TestInitGlobalLogger(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	t.Run("initializes once", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		require.NoError(t, logger.InitGlobalLogger(logger.Production))
		first := logger.Log(context.Background())

		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "debug"))
		second := logger.Log(context.Background())

		assert.Same(t, first, second)
	})

	t.Run("invalid level", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		err := logger.InitGlobalLoggerWithLevel(logger.Development, "nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, logger.ErrInitGlobalLogger)
	})
}

func TestRequestID(t *testing.T) {
	t.Run("keeps provided id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-42")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-42", id)
	})

	t.Run("generates uuid when empty", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})

	t.Run("logging with request id does not panic", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewRequestIDContext(context.Background(), "")
		assert.NotPanics(t, func() {
			log.With(zap.String("method", "test")).Info(ctx, "message", zap.Int("n", 1))
			log.Debug(ctx, "debug")
			log.Warn(ctx, "warn")
			log.Error(ctx, "error")
		})
	})
}
