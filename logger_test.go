package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("hello", "layer", 1)
	if !strings.Contains(buf.String(), "msg=hello layer=1") {
		t.Errorf("unexpected log output %q", buf.String())
	}

	SetLogger(nil)
	Logger().Info("dropped")
	if strings.Contains(buf.String(), "dropped") {
		t.Error("nil logger still writes")
	}
}
