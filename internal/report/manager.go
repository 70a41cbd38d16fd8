package report

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/backmassage/muxinfo/internal/logging"
)

// Manager owns the report file. The zero value is not usable; see
// [NewManager].
type Manager struct {
	mu        sync.Mutex
	program   string
	log       *logging.Logger
	now       func() time.Time
	opened    bool
	file      *os.File
	path      string
	threshold logging.Level
	explicit  bool
}

// NewManager returns an inactive manager for log. program fills %p.
func NewManager(program string, log *logging.Logger) *Manager {
	m := &Manager{program: program, log: log, now: time.Now}
	log.OnLevelChange(m.raise)
	return m
}

// Activate opens the report and starts mirroring log messages into it. It
// is a no-op once a previous call succeeded.
//
// A nil template means [DefaultTemplate]. A nil level means the greater of
// debug and the logger's current level.
func (m *Manager) Activate(template *string, level *logging.Level) error {
	now, path, threshold, err := m.open(template, level)
	if err != nil || path == "" {
		return err
	}
	m.log.Info("%s started on %04d-%02d-%02d at %02d:%02d:%02d",
		m.program, now.Year(), int(now.Month()), now.Day(), now.Hour(), now.Minute(), now.Second())
	m.log.Info("Report written to \"%s\"", path)
	m.log.Info("Log level: %d", int(threshold))
	return nil
}

// open creates the file and installs the sink. It returns an empty path
// when the report was already open.
func (m *Manager) open(template *string, level *logging.Level) (time.Time, string, logging.Level, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.opened {
		return time.Time{}, "", 0, nil
	}

	now := m.now()
	tpl := DefaultTemplate
	if template != nil {
		tpl = *template
	}
	path := ExpandTemplate(tpl, m.program, now)

	threshold := logging.LevelDebug
	explicit := level != nil
	if explicit {
		threshold = *level
	} else if cur := m.log.Level(); cur > threshold {
		threshold = cur
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return time.Time{}, "", 0, &OpenError{Path: path, Err: err}
	}

	m.file, m.path = f, path
	m.threshold, m.explicit = threshold, explicit
	m.opened = true
	m.log.SetSink(&fanout{next: m.log.Sink(), m: m})
	return now, path, threshold, nil
}

// ActivateWith is [Manager.Activate] with parsed [Settings].
func (m *Manager) ActivateWith(s Settings) error {
	return m.Activate(s.Template, s.Level)
}

// Active reports whether the report file is open.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened
}

// Path returns the report path, or "" before activation.
func (m *Manager) Path() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

// Threshold returns the current report level.
func (m *Manager) Threshold() logging.Level {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.threshold
}

// raise follows logger level increases when no level was given explicitly.
func (m *Manager) raise(level logging.Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.opened && !m.explicit && level > m.threshold {
		m.threshold = level
	}
}

// WriteCommandLine records the invocation in the report. It does nothing
// before activation.
func (m *Manager) WriteCommandLine(args []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.opened {
		return
	}
	var b strings.Builder
	b.WriteString("Command line:\n")
	for i, a := range args {
		b.WriteString(QuoteArg(a))
		if i < len(args)-1 {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(m.file, b.String())
}

// write appends line when level passes the threshold.
func (m *Manager) write(level logging.Level, line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.opened || level > m.threshold {
		return
	}
	_, _ = io.WriteString(m.file, line)
}

// fanout forwards to the previous sink and mirrors into the report.
type fanout struct {
	next logging.Sink
	m    *Manager
}

func (f *fanout) Write(level logging.Level, line string) {
	if f.next != nil {
		f.next.Write(level, line)
	}
	f.m.write(level, line)
}

// QuoteArg returns a as-is when it only contains shell-safe characters,
// otherwise double-quoted with \ " $ ` escaped and non-printable bytes as
// \xNN.
func QuoteArg(a string) string {
	safe := true
	for i := 0; i < len(a); i++ {
		c := a[i]
		if !((c >= '+' && c <= ':') || (c >= '@' && c <= 'Z') || c == '_' || (c >= 'a' && c <= 'z')) {
			safe = false
			break
		}
	}
	if safe {
		return a
	}

	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(a); i++ {
		c := a[i]
		switch {
		case c == '\\' || c == '"' || c == '$' || c == '`':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < ' ' || c > '~':
			const hex = "0123456789abcdef"
			b.WriteString(`\x`)
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xf])
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
