package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/muxinfo/internal/check"
	"github.com/backmassage/muxinfo/internal/config"
	"github.com/backmassage/muxinfo/internal/cpucaps"
	"github.com/backmassage/muxinfo/internal/display"
	"github.com/backmassage/muxinfo/internal/ffmpeg"
	"github.com/backmassage/muxinfo/internal/listing"
	"github.com/backmassage/muxinfo/internal/logging"
	"github.com/backmassage/muxinfo/internal/probe"
	"github.com/backmassage/muxinfo/internal/report"
	"github.com/backmassage/muxinfo/internal/term"
)

const programName = "muxinfo"

// app carries the state built once per invocation by the root command's
// pre-run hook.
type app struct {
	argv           []string
	stdout, stderr io.Writer

	cfg    config.Config
	log    *logging.Logger
	report *report.Manager
	cpu    cpucaps.Flags
}

func newApp(argv []string, stdout, stderr io.Writer) *app {
	return &app{argv: argv, stdout: stdout, stderr: stderr}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   programName,
		Short: "Show what an ffmpeg build can read, write and encode",
		Long: "muxinfo lists the container formats, devices, codecs, encoders and decoders\n" +
			"of an ffmpeg build, either by querying the binary or from a YAML snapshot.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		a.formatsCmd("formats", "List muxers and demuxers", listing.Both, false),
		a.formatsCmd("muxers", "List muxers", listing.OutputOnly, false),
		a.formatsCmd("demuxers", "List demuxers", listing.InputOnly, false),
		a.formatsCmd("devices", "List input and output devices", listing.Both, true),
		a.codecsCmd(),
		a.implementorsCmd("encoders", true),
		a.implementorsCmd("decoders", false),
		a.cpuflagsCmd(),
		a.checkCmd(),
		a.snapshotCmd(),
		a.versionCmd(),
	)
	return root
}

// setup resolves configuration and brings up logging, the report and the
// CPU flags before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logging.NewLogger(&a.cfg, a.stderr)
	if err != nil {
		return err
	}
	a.log = log
	a.report = report.NewManager(programName, log)

	if cfg.ReportRequested() {
		settings, err := report.ParseEnv(cfg.ReportEnv, log)
		if err != nil {
			return err
		}
		if err := a.report.ActivateWith(settings); err != nil {
			return err
		}
		a.report.WriteCommandLine(a.argv)
	}

	a.cpu = cpucaps.Detect()
	if cfg.CPUFlags != "" {
		if a.cpu, err = cpucaps.Apply(a.cpu, cfg.CPUFlags); err != nil {
			return fmt.Errorf("--cpuflags: %w (%s)", err, cpucaps.Grammar.Hint())
		}
	}
	log.Verbose("cpu flags: %s, cpu count: %d", a.cpu, cpucaps.Count(cfg.CPUCount))
	if cfg.ConfigFile != "" {
		log.Verbose("config file: %s", cfg.ConfigFile)
	}

	if !cfg.HideBanner && cmd.Name() != "version" {
		display.PrintBanner(a.stderr, display.DefaultTheme(), version)
	}
	return nil
}

func (a *app) runner() ffmpeg.Runner {
	return ffmpeg.NewExec(a.cfg.FFmpegPath, a.log)
}

func (a *app) source() probe.Source {
	if a.cfg.CatalogFile != "" {
		return probe.SnapshotFile{Path: a.cfg.CatalogFile}
	}
	return &probe.FFmpeg{
		Runner:      a.runner(),
		Log:         a.log,
		Concurrency: cpucaps.Count(a.cfg.CPUCount),
	}
}

// catalog validates the configured source and loads it.
func (a *app) catalog(ctx context.Context) (*probe.Catalog, error) {
	if err := check.CheckDeps(&a.cfg); err != nil {
		return nil, err
	}
	cat, err := a.source().Load(ctx)
	if err != nil {
		return nil, err
	}
	if cat.Version != "" {
		a.log.Verbose("capabilities from %s", cat.Version)
	}
	return cat, nil
}

// printer styles stdout only when it is a terminal or colors are forced.
func (a *app) printer() *display.Printer {
	color := a.cfg.ColorMode == config.ColorAlways
	if f, ok := a.stdout.(*os.File); ok && term.Enabled() && term.IsTerminal(f) {
		color = true
	}
	return display.NewPrinter(a.stdout, display.NewTheme(color))
}
