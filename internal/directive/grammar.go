package directive

import (
	"fmt"
	"strconv"
	"strings"
)

// Keyword binds a flag name to its bit.
type Keyword struct {
	Name string
	Bit  uint64
}

// LevelName binds a symbolic level to its value.
type LevelName struct {
	Name  string
	Level int
}

// Grammar is the per-option customization of the directive syntax.
type Grammar struct {
	Flags  []Keyword
	Levels []LevelName

	// NoLevel rejects any text left after the flag tokens.
	NoLevel bool
}

// Mode says how the flag delta combines with the baseline.
type Mode int

const (
	Relative Mode = iota // Baseline is kept and toggled.
	Absolute             // Baseline is cleared first.
)

func (m Mode) String() string {
	if m == Absolute {
		return "absolute"
	}
	return "relative"
}

// Directive is a parsed directive, not yet applied.
type Directive struct {
	Mode     Mode
	Set      uint64
	Clear    uint64
	HasLevel bool
	Level    int
}

// Flags returns the result of applying the directive to base.
func (d Directive) Flags(base uint64) uint64 {
	if d.Mode == Absolute {
		base = 0
	}
	return base&^d.Clear | d.Set
}

// Apply writes the directive into flags and level.
func (d Directive) Apply(flags *uint64, level *int) {
	*flags = d.Flags(*flags)
	if d.HasLevel {
		*level = d.Level
	}
}

// Parse parses text and, on success, updates flags and level. On error
// neither is modified.
func (g *Grammar) Parse(text string, flags *uint64, level *int) error {
	d, err := g.Compile(text)
	if err != nil {
		return err
	}
	d.Apply(flags, level)
	return nil
}

// Compile parses text into a [Directive].
//
// Rules, applied left to right:
//   - a token is an optional '+' or '-' followed by the longest flag keyword
//     matching at that position; '+' (or no sign) sets, '-' clears;
//   - a bare keyword is accepted only as the very first token and switches
//     to absolute mode (the baseline is cleared, the keyword still sets);
//   - scanning stops at the first position that is not a token;
//   - whatever remains is the level, after dropping one leading '+'; it must
//     be a level name or a base-10 integer.
func (g *Grammar) Compile(text string) (Directive, error) {
	s := scanner{g: g, text: text}
	s.scanFlags()
	return s.finish()
}

type scanner struct {
	g        *Grammar
	text     string
	pos      int
	consumed int
	d        Directive
}

// match returns the longest keyword that prefixes s.
func (g *Grammar) match(s string) (Keyword, bool) {
	var best Keyword
	found := false
	for _, k := range g.Flags {
		if k.Name == "" || !strings.HasPrefix(s, k.Name) {
			continue
		}
		if !found || len(k.Name) > len(best.Name) {
			best, found = k, true
		}
	}
	return best, found
}

func (s *scanner) scanFlags() {
	for s.pos < len(s.text) {
		p := s.pos
		sign := byte(0)
		if c := s.text[p]; c == '+' || c == '-' {
			sign = c
			p++
		}
		if sign == 0 && s.consumed > 0 {
			return
		}
		kw, ok := s.g.match(s.text[p:])
		if !ok {
			return
		}
		if sign == 0 {
			s.d.Mode = Absolute
		}
		if sign == '-' {
			s.d.Clear |= kw.Bit
			s.d.Set &^= kw.Bit
		} else {
			s.d.Set |= kw.Bit
			s.d.Clear &^= kw.Bit
		}
		s.pos = p + len(kw.Name)
		s.consumed++
	}
}

func (s *scanner) finish() (Directive, error) {
	rest := s.text[s.pos:]
	if rest == "" {
		return s.d, nil
	}
	levelPos := s.pos
	if rest[0] == '+' {
		rest = rest[1:]
		levelPos++
	}
	if s.g.NoLevel {
		return Directive{}, s.fail(s.pos, "unrecognized flag")
	}
	if rest == "" {
		return Directive{}, s.fail(levelPos, "missing level")
	}
	for _, l := range s.g.Levels {
		if l.Name == rest {
			s.d.HasLevel, s.d.Level = true, l.Level
			return s.d, nil
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return Directive{}, s.fail(levelPos, fmt.Sprintf("%q is not a flag, level name or number", rest))
	}
	s.d.HasLevel, s.d.Level = true, n
	return s.d, nil
}

func (s *scanner) fail(pos int, reason string) error {
	return &InvalidDirectiveError{Text: s.text, Pos: pos, Reason: reason}
}

// Keywords returns the flag names in table order.
func (g *Grammar) Keywords() []string {
	names := make([]string, len(g.Flags))
	for i, k := range g.Flags {
		names[i] = k.Name
	}
	return names
}

// LevelNames returns the level names in table order.
func (g *Grammar) LevelNames() []string {
	names := make([]string, len(g.Levels))
	for i, l := range g.Levels {
		names[i] = l.Name
	}
	return names
}

// Hint lists the accepted flag and level names, for error messages.
func (g *Grammar) Hint() string {
	hint := "flags: " + strings.Join(g.Keywords(), ", ")
	if !g.NoLevel {
		hint += "; levels: " + strings.Join(g.LevelNames(), ", ") + " or a number"
	}
	return hint
}

// Format renders flags as "+a+b" using the keyword table.
func (g *Grammar) Format(flags uint64) string {
	var b strings.Builder
	for _, k := range g.Flags {
		if flags&k.Bit != 0 {
			b.WriteByte('+')
			b.WriteString(k.Name)
		}
	}
	return b.String()
}
