package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWith_StampsAttributes(t *testing.T) {
	t.Parallel()
	// Arrange
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	// Act
	ctx = With(ctx, "pass_id", "p1")
	ctx = With(ctx, "block", "i2c:bus_a")
	FromContext(ctx).Info("Routine completed.")

	// Assert
	assert.Contains(t, buf.String(), "pass_id=p1 block=i2c:bus_a")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	t.Parallel()
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
