package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridplace/pkg/placement"
)

// newLogger creates a logger that writes to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// the elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Placed 9 elements (1ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// stepLogger reports every placement step at debug level.
func stepLogger(l *log.Logger) placement.Observer {
	return placement.ObserverFunc(func(s placement.Step) {
		l.Debug("step",
			"iter", s.Iteration,
			"element", s.Element,
			"J", s.J,
			"candidates", s.Candidates,
			"position", s.Position,
			"F", s.F,
			"placed", s.Placed,
			"unplaced", s.Unplaced)
	})
}
