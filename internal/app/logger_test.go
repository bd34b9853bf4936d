package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		level     string
		format    string
		wantDebug bool
		wantJSON  bool
	}{
		{name: "debug text", level: "debug", format: "text", wantDebug: true},
		{name: "info json", level: "info", format: "json", wantJSON: true},
		{name: "unknown level falls back to info", level: "loud", format: "text"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// Arrange
			var buf bytes.Buffer
			logger := newLogger(tc.level, tc.format, &buf)

			// Act
			logger.Debug("hidden unless debug")
			logger.Info("always shown", "pass_id", "p1")

			// Assert
			assert.Equal(t, tc.wantDebug, bytes.Contains(buf.Bytes(), []byte("hidden unless debug")))
			assert.Contains(t, buf.String(), "always shown")
			assert.Equal(t, tc.wantJSON, bytes.Contains(buf.Bytes(), []byte(`"pass_id":"p1"`)))
		})
	}
}
