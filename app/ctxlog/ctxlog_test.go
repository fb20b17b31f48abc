package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestWithLogger_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Info("hello", "section_id", 7)

	assert.Contains(t, buf.String(), "section_id=7")
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(&buf, "json", "warn")
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)

	_, err = New(&buf, "xml", "info")
	assert.Error(t, err)
	_, err = New(&buf, "text", "verbose")
	assert.Error(t, err)
}
