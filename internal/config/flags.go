package config

// This file registers the persistent CLI flags. Values are not read from
// the flag set directly; [Load] resolves them together with the
// environment and config file.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flag names, also used as config-file keys.
const (
	KeyFFmpeg     = "ffmpeg"
	KeyCatalog    = "catalog"
	KeyLogLevel   = "loglevel"
	KeyReport     = "report"
	KeyReportEnv  = "report-env"
	KeyHideBanner = "hide-banner"
	KeyColorMode  = "color-mode"
	KeyCPUFlags   = "cpuflags"
	KeyCPUCount   = "cpucount"
	KeyConfig     = "config"

	flagColor   = "color"
	flagNoColor = "no-color"
)

// RegisterFlags defines the persistent flags on fs with defaults from
// [DefaultConfig].
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	mode := d.ColorMode

	fs.String(KeyFFmpeg, d.FFmpegPath, "ffmpeg binary queried for capabilities")
	fs.String(KeyCatalog, "", "Read capabilities from a YAML snapshot instead of ffmpeg")
	fs.StringP(KeyLogLevel, "v", "", "Log flags and level, e.g. \"repeat+level+verbose\"")
	fs.Bool(KeyReport, false, "Write a diagnostic report to <program>-<timestamp>.log")
	fs.Bool(KeyHideBanner, false, "Do not print the banner")
	fs.Var(&colorModeValue{&mode}, KeyColorMode, "Color output: auto | always | never")
	fs.Bool(flagColor, false, "Same as --color-mode always")
	fs.Bool(flagNoColor, false, "Same as --color-mode never")
	fs.String(KeyCPUFlags, "", "CPU feature directive, e.g. \"-avx512\"")
	fs.Int(KeyCPUCount, d.CPUCount, "Concurrent ffmpeg queries (-1 = auto)")
	fs.String(KeyConfig, "", "Config file (YAML)")
}

// applyNegatedFlags maps --color / --no-color onto ColorMode. --no-color wins.
func applyNegatedFlags(fs *pflag.FlagSet, cfg *Config) {
	if on, _ := fs.GetBool(flagNoColor); on {
		cfg.ColorMode = ColorNever
	} else if on, _ := fs.GetBool(flagColor); on {
		cfg.ColorMode = ColorAlways
	}
}

// pflag.Value adapter so ColorMode is validated at parse time.

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	switch ColorMode(strings.ToLower(s)) {
	case ColorAuto:
		*c.p = ColorAuto
	case ColorAlways:
		*c.p = ColorAlways
	case ColorNever:
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
