package output

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "json", "warn", false)

	l.Info("hidden")
	l.Warn("shown", "file", "a.sca")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "a.sca", rec["file"])
	assert.NotContains(t, rec, slog.SourceKey)
}

func TestNewLoggerVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "text", "error", true)

	l.Debug("details")
	assert.Contains(t, buf.String(), "msg=details")
	assert.Contains(t, buf.String(), "source=")
}

func TestSetLogger(t *testing.T) {
	orig := Logger
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, "text", "info", false))
	Logger.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
