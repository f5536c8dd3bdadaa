package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridplace/pkg/placement"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
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

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("placed 9 elements")

	if !strings.Contains(buf.String(), "placed 9 elements") {
		t.Errorf("progress output %q should contain message", buf.String())
	}
}

func TestStepLogger(t *testing.T) {
	var buf bytes.Buffer
	obs := stepLogger(newLogger(&buf, log.DebugLevel))
	obs.OnStep(placement.Step{Iteration: 1, Element: 4, J: 7, Candidates: []int{2, 4}, Position: 2, F: 3, Placed: 2, Unplaced: 2})

	out := buf.String()
	for _, want := range []string{"step", "element=4", "J=7", "position=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("step log %q missing %q", out, want)
		}
	}
}

func TestStepLoggerQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	stepLogger(newLogger(&buf, log.InfoLevel)).OnStep(placement.Step{Iteration: 1})
	if buf.Len() != 0 {
		t.Errorf("step log should be debug only, got %q", buf.String())
	}
}
