package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil || logger.Logger == nil {
		t.Fatal("NewLogger() returned an unusable logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected slog.Level
	}{
		{"debug level", "DEBUG", slog.LevelDebug},
		{"info level", "INFO", slog.LevelInfo},
		{"warn level", "WARN", slog.LevelWarn},
		{"warning level", "WARNING", slog.LevelWarn},
		{"error level", "ERROR", slog.LevelError},
		{"lowercase debug", "debug", slog.LevelDebug},
		{"padded", "  warn ", slog.LevelWarn},
		{"invalid level", "INVALID", slog.LevelInfo},
		{"empty value", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.value); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestNewLogger_ReadsEnvLevel(t *testing.T) {
	t.Setenv(LevelEnvVar, "ERROR")
	logger := NewLogger()
	if logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("WARN should be disabled when ORBIT_LOG_LEVEL=ERROR")
	}
}

func TestCorrelationID(t *testing.T) {
	t.Run("generate correlation ID", func(t *testing.T) {
		id1 := GenerateCorrelationID()
		id2 := GenerateCorrelationID()

		if id1 == "" || id1 == id2 {
			t.Errorf("GenerateCorrelationID() returned %q and %q", id1, id2)
		}
		if len(id1) != 16 {
			t.Errorf("GenerateCorrelationID() returned wrong length: %d", len(id1))
		}
	})

	t.Run("context round trip", func(t *testing.T) {
		ctx := WithCorrelationID(context.Background(), "run-1")
		if got := GetCorrelationID(ctx); got != "run-1" {
			t.Errorf("GetCorrelationID() = %q", got)
		}
	})

	t.Run("auto-generate correlation ID", func(t *testing.T) {
		ctx := WithCorrelationID(context.Background(), "")
		if id := GetCorrelationID(ctx); len(id) != 16 {
			t.Errorf("auto-generated id = %q", id)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if id := GetCorrelationID(context.Background()); id != "" {
			t.Errorf("GetCorrelationID() = %q, want empty", id)
		}
	})
}

func TestSanitizeAttributes(t *testing.T) {
	tests := []struct {
		name     string
		attr     slog.Attr
		expected string
	}{
		{"password field", slog.String("password", "secret123"), "[REDACTED]"},
		{"token field", slog.String("auth_token", "bearer-token"), "[REDACTED]"},
		{"normal field", slog.String("frontend", "engo"), "engo"},
		{"case insensitive", slog.String("PASSWORD", "x"), "[REDACTED]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeAttributes(nil, tt.attr).Value.String(); got != tt.expected {
				t.Errorf("sanitizeAttributes() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLogger_WritesJSONWithCorrelation(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelDebug)
	ctx := WithCorrelationID(context.Background(), "abc")

	logger.Error(ctx, "step failed", errors.New("boom"), "frame", 7)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
	}
	if record["msg"] != "step failed" || record["error"] != "boom" || record["correlation_id"] != "abc" {
		t.Errorf("record = %v", record)
	}
	if record["frame"] != float64(7) {
		t.Errorf("frame attr = %v", record["frame"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)
	ctx := context.Background()

	logger.Debug(ctx, "hidden debug")
	logger.Info(ctx, "hidden info")
	logger.Warn(ctx, "shown warn")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("records below WARN were written: %s", out)
	}
	if !strings.Contains(out, "shown warn") {
		t.Errorf("WARN record missing: %s", out)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("Discard() logger should drop errors too")
	}
}

func TestWrapError(t *testing.T) {
	base := errors.New("base")

	if WrapError(nil, "ctx") != nil {
		t.Error("WrapError(nil) should be nil")
	}

	wrapped := WrapError(base, "loading %s", "config")
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error does not unwrap to base")
	}
	if wrapped.Error() != "loading config: base" {
		t.Errorf("message = %q", wrapped.Error())
	}
}
