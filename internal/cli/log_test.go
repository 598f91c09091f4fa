package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("Loaded graph") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("cache miss") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("cache miss") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("not optimal") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)

	if prog.elapsed() < 10*time.Millisecond {
		t.Errorf("elapsed = %v, want at least 10ms", prog.elapsed())
	}

	prog.done("Search complete: 3 colors", "optimal", true)

	out := buf.String()
	for _, want := range []string{"Search complete: 3 colors", "optimal=true", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), custom))
	if got != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	got.Info("test")
	if buf.Len() == 0 {
		t.Error("attached logger should write to its buffer")
	}
}
