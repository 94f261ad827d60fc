package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/tether/internal/errors"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseLevel("loud"); !errors.HasCode(err, "E160") {
		t.Errorf("got %v, want E160", err)
	}
}

func TestNewRenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, "text")
	logger.Info("failed", "error", "boom")

	if !strings.Contains(buf.String(), "err=boom") {
		t.Errorf("output %q should contain err=boom", buf.String())
	}
}

func TestNewJSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, "json")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered, got %q", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("output %q should be JSON with msg shown", out)
	}
}
