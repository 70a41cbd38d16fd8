// Package config holds runtime configuration: defaults, flag registration,
// loading from flags, environment and config file, and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// CPUCountAuto sizes concurrent ffmpeg queries to the host CPU count.
const CPUCountAuto = -1

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then overridden by [Load] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Capability source.
	FFmpegPath  string // Default: "ffmpeg".
	CatalogFile string // YAML capability snapshot; when set ffmpeg is not run.

	// Diagnostics.
	LogLevel   string    // --loglevel directive applied over the default info level.
	Report     bool      // --report.
	ReportEnv  string    // MUXINFO_REPORT, "file=<template>:level=<n>". Non-empty enables the report.
	ColorMode  ColorMode // Default: "auto".
	HideBanner bool

	// CPU.
	CPUFlags string // --cpuflags directive applied over the detected features.
	CPUCount int    // Default: -1 (auto).

	// ConfigFile is the explicit --config path, if any.
	ConfigFile string
}

// DefaultConfig returns a Config with all defaults.
func DefaultConfig() Config {
	return Config{
		FFmpegPath: "ffmpeg",
		ColorMode:  ColorAuto,
		CPUCount:   CPUCountAuto,
	}
}

// ReportRequested reports whether a diagnostic report should be written.
func (c *Config) ReportRequested() bool {
	return c.Report || c.ReportEnv != ""
}

// Validate checks enum fields and ranges.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (use auto, always or never)", c.ColorMode)
	}
	if c.CPUCount < CPUCountAuto || c.CPUCount == 0 {
		return fmt.Errorf("invalid cpucount %d (use -1 or a positive number)", c.CPUCount)
	}
	if c.CatalogFile == "" && strings.TrimSpace(c.FFmpegPath) == "" {
		return errors.New("ffmpeg path must not be empty unless --catalog is set")
	}
	return nil
}
