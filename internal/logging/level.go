package logging

import (
	"strconv"

	"github.com/backmassage/muxinfo/internal/directive"
)

// Level is a message severity. Lower values are more severe; a logger set
// to level L shows every message whose level is <= L.
type Level int

const (
	LevelQuiet   Level = -8
	LevelPanic   Level = 0
	LevelFatal   Level = 8
	LevelError   Level = 16
	LevelWarning Level = 24
	LevelInfo    Level = 32
	LevelVerbose Level = 40
	LevelDebug   Level = 48
	LevelTrace   Level = 56
)

// Flags control console formatting.
type Flags uint64

const (
	FlagRepeat   Flags = 1 << iota // Print repeated lines instead of collapsing them.
	FlagLevel                      // Prefix lines with "[level]".
	FlagTime                       // Prefix lines with the wall-clock time.
	FlagDatetime                   // Prefix lines with date and time.
)

// Grammar is the directive grammar of the --loglevel option.
var Grammar = directive.Grammar{
	Flags: []directive.Keyword{
		{Name: "repeat", Bit: uint64(FlagRepeat)},
		{Name: "level", Bit: uint64(FlagLevel)},
		{Name: "time", Bit: uint64(FlagTime)},
		{Name: "datetime", Bit: uint64(FlagDatetime)},
	},
	Levels: []directive.LevelName{
		{Name: "quiet", Level: int(LevelQuiet)},
		{Name: "panic", Level: int(LevelPanic)},
		{Name: "fatal", Level: int(LevelFatal)},
		{Name: "error", Level: int(LevelError)},
		{Name: "warning", Level: int(LevelWarning)},
		{Name: "info", Level: int(LevelInfo)},
		{Name: "verbose", Level: int(LevelVerbose)},
		{Name: "debug", Level: int(LevelDebug)},
		{Name: "trace", Level: int(LevelTrace)},
	},
}

func (l Level) String() string {
	for _, n := range Grammar.Levels {
		if n.Level == int(l) {
			return n.Name
		}
	}
	return strconv.Itoa(int(l))
}
