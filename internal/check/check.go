// Package check provides the "check" diagnostics and the dependency
// validation run before live listings.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/backmassage/muxinfo/internal/config"
	"github.com/backmassage/muxinfo/internal/cpucaps"
	"github.com/backmassage/muxinfo/internal/display"
	"github.com/backmassage/muxinfo/internal/ffmpeg"
	"github.com/backmassage/muxinfo/internal/probe"
)

// Sentinel errors returned by CheckDeps.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found")
	ErrCatalogNotFound = errors.New("catalog file not found")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// Env is what RunCheck inspects.
type Env struct {
	Config *config.Config
	Runner ffmpeg.Runner
	Source probe.Source
	CPU    cpucaps.Flags
}

// RunCheck loads the catalog and reports where it came from, its size and
// the effective CPU flags. It returns the summary fields and the first
// fatal error; the fields are filled as far as the check got.
func RunCheck(ctx context.Context, env Env, log Logger) ([]display.Field, error) {
	var fields []display.Field

	if env.Config.CatalogFile != "" {
		fields = append(fields, display.Field{Key: "catalog", Value: env.Config.CatalogFile})
	} else {
		v, err := ffmpeg.Version(ctx, env.Runner)
		if err != nil {
			var exitErr *ffmpeg.ExitError
			if errors.As(err, &exitErr) && ffmpeg.MatchMissingLibrary(exitErr.Stderr) {
				log.Error("ffmpeg cannot start, a shared library is missing: %v", err)
				fields = append(fields, display.Field{Key: "ffmpeg", Value: "missing shared library", Status: display.StatusFail})
				return fields, err
			}
			log.Error("ffmpeg unusable: %v", err)
			fields = append(fields, display.Field{Key: "ffmpeg", Value: "not usable", Status: display.StatusFail})
			return fields, err
		}
		fields = append(fields, display.Field{Key: "ffmpeg", Value: v, Status: display.StatusOK})
	}

	cat, err := env.Source.Load(ctx)
	if err != nil {
		log.Error("loading registries failed: %v", err)
		fields = append(fields, display.Field{Key: "registries", Value: "failed", Status: display.StatusFail})
		return fields, err
	}

	n := cat.Counts()
	if n.Muxers == 0 && n.Demuxers == 0 {
		log.Warn("no formats found")
	}
	fields = append(fields,
		display.Field{Key: "muxers", Value: strconv.Itoa(n.Muxers)},
		display.Field{Key: "demuxers", Value: strconv.Itoa(n.Demuxers)},
		display.Field{Key: "devices", Value: strconv.Itoa(n.Devices)},
		display.Field{Key: "codecs", Value: strconv.Itoa(n.Codecs)},
		display.Field{Key: "encoders", Value: strconv.Itoa(n.Encoders)},
		display.Field{Key: "decoders", Value: strconv.Itoa(n.Decoders)},
		display.Field{Key: "cpu flags", Value: env.CPU.String()},
		display.Field{Key: "cpu count", Value: strconv.Itoa(cpucaps.Count(env.Config.CPUCount))},
	)
	log.Info("check passed")
	return fields, nil
}

// CheckDeps verifies that the configured source exists: the catalog file
// when one is set, otherwise the ffmpeg binary.
func CheckDeps(cfg *config.Config) error {
	if cfg.CatalogFile != "" {
		if _, err := os.Stat(cfg.CatalogFile); err != nil {
			return fmt.Errorf("%w: %s", ErrCatalogNotFound, cfg.CatalogFile)
		}
		return nil
	}
	if _, err := ffmpeg.NewExec(cfg.FFmpegPath, nil).Lookup(); err != nil {
		return fmt.Errorf("%w: %s", ErrFfmpegNotFound, cfg.FFmpegPath)
	}
	return nil
}
