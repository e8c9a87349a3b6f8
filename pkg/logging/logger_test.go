package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWritesToGivenWriter(t *testing.T) {
	oldLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	var buf bytes.Buffer
	logger := New(&buf)
	logger.Info().Str("roster", "clients.csv").Msg("loaded")

	out := buf.String()
	if !strings.Contains(out, `"roster":"clients.csv"`) {
		t.Errorf("expected structured field in output, got %q", out)
	}
	if !strings.Contains(out, "loaded") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNopDiscards(t *testing.T) {
	// Must not panic and must not write anywhere.
	Nop.Info().Msg("discarded")
}

func TestTestLoggerCapture(t *testing.T) {
	tl := NewTestLogger(t)
	tl.Debug().Str("phase", "fuzzy").Msg("batch complete")

	if !tl.Contains("batch complete") {
		t.Error("expected captured output to contain message")
	}
	if len(tl.Lines()) != 1 {
		t.Errorf("expected 1 line, got %d", len(tl.Lines()))
	}
}
