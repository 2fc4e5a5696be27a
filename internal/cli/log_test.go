package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", LogInfo, func(l *log.Logger) { l.Info("built token") }, true},
		{"debug at info level", LogInfo, func(l *log.Logger) { l.Debug("cache miss") }, false},
		{"debug at debug level", LogDebug, func(l *log.Logger) { l.Debug("cache miss") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatal("debug output at info level")
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("debug output missing after SetLogLevel")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo), "generate")
	prog.done("files", 3, "seed", uint64(7))

	out := buf.String()
	for _, want := range []string{"generate", "files=3", "seed=7", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output = %q, want it to contain %q", out, want)
		}
	}
}

func TestProgressDoneBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.WarnLevel), "token").done("nodes", 10)
	if buf.Len() != 0 {
		t.Errorf("progress logged below the logger level: %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, LogInfo)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}
}
