// Package logging provides the leveled diagnostic logger.
//
// The logger formats a message once and hands it to a [Sink]. The default
// sink is the console; package report wraps it to mirror messages into a
// report file. Level and formatting flags are changed through
// [Logger.ApplyDirective], which accepts the --loglevel syntax.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/backmassage/muxinfo/internal/config"
	"github.com/backmassage/muxinfo/internal/term"
)

// Sink receives every formatted line regardless of the logger level. Sinks
// do their own filtering.
type Sink interface {
	Write(level Level, line string)
}

// Logger is safe for concurrent use.
type Logger struct {
	mu       sync.Mutex
	level    Level
	flags    Flags
	sink     Sink
	watchers []func(Level)
}

// New returns a logger at info level writing to a console sink on w.
func New(w io.Writer) *Logger {
	l := &Logger{level: LevelInfo}
	l.sink = NewConsole(l, w)
	return l
}

// NewLogger configures colors from cfg and returns a logger writing to w
// (stderr when nil) with cfg.LogLevel applied.
func NewLogger(cfg *config.Config, w io.Writer) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	if w == nil {
		w = os.Stderr
	}
	l := New(w)
	if cfg.LogLevel != "" {
		if err := l.ApplyDirective(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("--loglevel: %w (%s)", err, Grammar.Hint())
		}
	}
	return l, nil
}

// Level returns the current console level.
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Flags returns the current formatting flags.
func (l *Logger) Flags() Flags {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flags
}

// SetLevel changes the level and notifies level watchers.
func (l *Logger) SetLevel(level Level) {
	l.set(l.Flags(), level)
}

// ApplyDirective parses a --loglevel directive against the current flags
// and level. The logger is unchanged when the directive is invalid.
func (l *Logger) ApplyDirective(text string) error {
	l.mu.Lock()
	flags, level := uint64(l.flags), int(l.level)
	l.mu.Unlock()

	if err := Grammar.Parse(text, &flags, &level); err != nil {
		return err
	}
	l.set(Flags(flags), Level(level))
	return nil
}

func (l *Logger) set(flags Flags, level Level) {
	l.mu.Lock()
	changed := level != l.level
	l.flags, l.level = flags, level
	watchers := append([]func(Level){}, l.watchers...)
	l.mu.Unlock()

	if changed {
		for _, fn := range watchers {
			fn(level)
		}
	}
}

// OnLevelChange registers fn to run after every level change.
func (l *Logger) OnLevelChange(fn func(Level)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.watchers = append(l.watchers, fn)
}

// Sink returns the current sink.
func (l *Logger) Sink() Sink {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sink
}

// SetSink replaces the sink. Wrapping sinks should capture the previous
// one through [Logger.Sink] first.
func (l *Logger) SetSink(s Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink = s
}

// Log formats one message and delivers it to the sink.
func (l *Logger) Log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	sink, flags := l.sink, l.flags
	l.mu.Unlock()
	if sink == nil {
		return
	}

	line := fmt.Sprintf(format, args...)
	if flags&FlagLevel != 0 {
		line = "[" + level.String() + "] " + line
	}
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	sink.Write(level, line)
}

// Fatal logs at fatal level. It does not exit.
func (l *Logger) Fatal(format string, args ...interface{}) { l.Log(LevelFatal, format, args...) }

// Error logs at error level.
func (l *Logger) Error(format string, args ...interface{}) { l.Log(LevelError, format, args...) }

// Warn logs at warning level.
func (l *Logger) Warn(format string, args ...interface{}) { l.Log(LevelWarning, format, args...) }

// Info logs at info level.
func (l *Logger) Info(format string, args ...interface{}) { l.Log(LevelInfo, format, args...) }

// Verbose logs at verbose level.
func (l *Logger) Verbose(format string, args ...interface{}) { l.Log(LevelVerbose, format, args...) }

// Debug logs at debug level.
func (l *Logger) Debug(format string, args ...interface{}) { l.Log(LevelDebug, format, args...) }

// Trace logs at trace level.
func (l *Logger) Trace(format string, args ...interface{}) { l.Log(LevelTrace, format, args...) }
