package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_SilentByDefault(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should discard everything")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTextLogger(&buf, slog.LevelDebug))
	defer SetLogger(nil)

	Logger().Debug("frame rendered", "seq", 3)
	if !strings.Contains(buf.String(), "frame rendered") || !strings.Contains(buf.String(), "seq=3") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
