package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/go-orbit/pkg/config"
	"github.com/opd-ai/go-orbit/pkg/event"
	"github.com/opd-ai/go-orbit/pkg/logging"
)

func TestDemoScript(t *testing.T) {
	script := demoScript(90)
	if len(script) != 90 {
		t.Fatalf("len = %d, want 90", len(script))
	}

	fires, rotations := 0, 0
	for _, st := range script {
		if st.Fire {
			fires++
		}
		if st.RotateRight {
			rotations++
		}
		if st.QuitRequested() || st.RotateLeft {
			t.Fatalf("unexpected input %+v", st)
		}
	}
	if fires != 3 || rotations != 18 {
		t.Errorf("fires = %d, rotations = %d, want 3 and 18", fires, rotations)
	}
}

func TestOpenLogOutput(t *testing.T) {
	tests := []struct {
		name     string
		frontend string
		file     bool
		want     io.Writer
	}{
		{"headless to stderr", config.FrontendHeadless, false, os.Stderr},
		{"terminal discards", config.FrontendTerminal, false, io.Discard},
		{"file", config.FrontendTerminal, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Frontend = tt.frontend
			if tt.file {
				cfg.Log.File = filepath.Join(t.TempDir(), "orbit.log")
			}

			w, closeLog, err := openLogOutput(cfg)
			if err != nil {
				t.Fatalf("openLogOutput() error = %v", err)
			}
			defer closeLog()

			if tt.want != nil && w != tt.want {
				t.Errorf("writer = %T, want %T", w, tt.want)
			}
			if tt.file {
				if _, err := os.Stat(cfg.Log.File); err != nil {
					t.Errorf("log file not created: %v", err)
				}
			}
		})
	}
}

func TestLogEvents(t *testing.T) {
	var buf bytes.Buffer
	bus := event.NewEventBus()
	logEvents(context.Background(), logging.New(&buf, slog.LevelDebug), bus)

	bus.Publish(event.NewAimEvent(nil, 3, 0.5))
	bus.Publish(event.NewQuitEvent(nil))

	output := buf.String()
	for _, want := range []string{"Aim rotated", `"planet_id":3`, "Quit requested"} {
		if !strings.Contains(output, want) {
			t.Errorf("log output lacks %q: %s", want, output)
		}
	}
}
