package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/backmassage/muxinfo/internal/term"
)

// settings is the part of the logger the console consults per line.
type settings interface {
	Level() Level
	Flags() Flags
}

// Console is the default sink. It drops lines above the logger level,
// collapses repeated lines unless [FlagRepeat] is set, adds time prefixes
// and colors by severity.
type Console struct {
	mu      sync.Mutex
	cfg     settings
	w       io.Writer
	now     func() time.Time
	last    string
	repeats int
}

// NewConsole returns a console sink writing to w and reading level and
// flags from cfg.
func NewConsole(cfg settings, w io.Writer) *Console {
	return &Console{cfg: cfg, w: w, now: time.Now}
}

// Write implements [Sink].
func (c *Console) Write(level Level, line string) {
	if level > c.cfg.Level() {
		return
	}
	flags := c.cfg.Flags()

	c.mu.Lock()
	defer c.mu.Unlock()

	if flags&FlagRepeat == 0 && line == c.last {
		c.repeats++
		return
	}
	if c.repeats > 0 {
		fmt.Fprintf(c.w, "    Last message repeated %d times\n", c.repeats)
		c.repeats = 0
	}
	c.last = line

	prefix := ""
	switch {
	case flags&FlagDatetime != 0:
		prefix = c.now().Format("2006-01-02 15:04:05.000") + " "
	case flags&FlagTime != 0:
		prefix = c.now().Format("15:04:05.000") + " "
	}

	color := colorFor(level)
	if color == "" {
		_, _ = io.WriteString(c.w, prefix+line)
		return
	}
	_, _ = io.WriteString(c.w, prefix+color+strings.TrimSuffix(line, "\n")+term.NC+"\n")
}

func colorFor(level Level) string {
	switch {
	case level <= LevelFatal:
		return term.Magenta
	case level <= LevelError:
		return term.Red
	case level <= LevelWarning:
		return term.Yellow
	case level >= LevelDebug:
		return term.Gray
	default:
		return ""
	}
}
