package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/backmassage/muxinfo/internal/logging"
)

// Settings are the optional activation parameters. Nil fields take their
// defaults.
type Settings struct {
	Template *string
	Level    *logging.Level
}

// ParseEnv parses the MUXINFO_REPORT form "file=<template>:level=<n>".
// Unknown keys are logged and ignored. A pair without '=' stops parsing;
// it is logged when at least one pair was read before it. A level that is
// not an integer is an error.
func ParseEnv(env string, log *logging.Logger) (Settings, error) {
	var s Settings
	count := 0
	for env != "" {
		pair, rest, _ := strings.Cut(env, ":")
		env = rest

		key, val, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			if count > 0 && log != nil {
				log.Error("Failed to parse report settings: %q is not key=value", pair)
			}
			break
		}
		count++

		switch key {
		case "file":
			tpl := val
			s.Template = &tpl
		case "level":
			n, err := strconv.Atoi(val)
			if err != nil {
				return Settings{}, fmt.Errorf("%w: level %q is not an integer", ErrInvalidEnv, val)
			}
			lvl := logging.Level(n)
			s.Level = &lvl
		default:
			if log != nil {
				log.Error("Unknown key '%s' in report settings", key)
			}
		}
	}
	return s, nil
}
