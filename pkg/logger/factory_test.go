package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratoflow/tenantcore/pkg/environment"
	"github.com/pratoflow/tenantcore/pkg/logger"
	"github.com/pratoflow/tenantcore/pkg/requestid"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with static attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "tenantcore")),
		)
		log.Info("started")

		record := logLine(t, &buf)
		assert.Equal(t, "started", record["msg"])
		assert.Equal(t, "tenantcore", record["service"])
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Zero(t, buf.Len())

		log.Warn("kept")
		assert.NotZero(t, buf.Len())
	})

	t.Run("context extractors annotate records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextExtractors(requestid.LoggerExtractor()),
		)

		ctx := requestid.WithContext(context.Background(), "req-123")
		log.InfoContext(ctx, "handled")

		record := logLine(t, &buf)
		assert.Equal(t, "req-123", record["request_id"])
	})

	t.Run("extractor stays silent without context value", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextExtractors(requestid.LoggerExtractor()),
		)
		log.InfoContext(context.Background(), "handled")

		record := logLine(t, &buf)
		assert.NotContains(t, record, "request_id")
	})

	t.Run("environment presets", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithEnvironment(environment.Production, "tenantcore"),
		)
		log.Debug("dropped in production")
		assert.Zero(t, buf.Len())

		log.Info("kept")
		record := logLine(t, &buf)
		assert.Equal(t, "tenantcore", record["service"])
		assert.Equal(t, "production", record["env"])
	})
}

func TestErrorAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))
	log.Error("lookup failed", logger.Error(errors.New("boom")))

	record := logLine(t, &buf)
	assert.Equal(t, "boom", record["error"])
}
