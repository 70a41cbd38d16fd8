package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/muxinfo/internal/check"
	"github.com/backmassage/muxinfo/internal/cpucaps"
	"github.com/backmassage/muxinfo/internal/display"
	"github.com/backmassage/muxinfo/internal/listing"
	"github.com/backmassage/muxinfo/internal/probe"
)

func (a *app) formatsCmd(use, short string, side listing.Side, devicesOnly bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			p := a.printer()
			if err := p.FormatsHeader(devicesOnly); err != nil {
				return err
			}
			return listing.WalkFormats(cat.Demuxers, cat.Muxers, side, devicesOnly, p.FormatRow(devicesOnly))
		},
	}
}

func (a *app) codecsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codecs",
		Short: "List codecs with their decoders and encoders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			p := a.printer()
			if err := p.CodecsHeader(); err != nil {
				return err
			}
			return listing.WalkCodecs(cat.Codecs, cat.Decoders, cat.Encoders, p.CodecRow)
		},
	}
}

func (a *app) implementorsCmd(use string, encoders bool) *cobra.Command {
	short := "List decoders"
	if encoders {
		short = "List encoders"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			reg := cat.Decoders
			if encoders {
				reg = cat.Encoders
			}
			p := a.printer()
			if err := p.ImplementorsHeader(encoders); err != nil {
				return err
			}
			return listing.WalkImplementors(cat.Codecs, reg, p.ImplementorRow)
		},
	}
}

func (a *app) cpuflagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cpuflags [directive]",
		Short: "Show detected CPU features and the effect of a directive",
		Long: "Show the CPU features detected on this host, the features left after --cpuflags,\n" +
			"and, when a directive such as \"-avx2+sse4.2\" is given, the result of applying it.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			fields := []display.Field{
				{Key: "detected", Value: cpucaps.Detect().String()},
				{Key: "effective", Value: a.cpu.String()},
			}
			if len(args) == 1 {
				applied, err := cpucaps.Apply(a.cpu, args[0])
				if err != nil {
					return fmt.Errorf("%w (%s)", err, cpucaps.Grammar.Hint())
				}
				fields = append(fields, display.Field{Key: args[0], Value: applied.String(), Status: display.StatusOK})
			}
			fields = append(fields, display.Field{Key: "cpu count", Value: fmt.Sprint(cpucaps.Count(a.cfg.CPUCount))})
			return a.printer().Summary("CPU", fields)
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that capabilities can be loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := check.CheckDeps(&a.cfg); err != nil {
				return err
			}
			fields, err := check.RunCheck(cmd.Context(), check.Env{
				Config: &a.cfg,
				Runner: a.runner(),
				Source: a.source(),
				CPU:    a.cpu,
			}, a.log)
			if a.report.Active() {
				fields = append(fields, display.Field{Key: "report", Value: a.report.Path()})
			}
			if perr := a.printer().Summary("System check", fields); perr != nil && err == nil {
				err = perr
			}
			return err
		},
	}
}

func (a *app) snapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Write the loaded capabilities as a YAML catalog",
		Long: "Write the loaded capabilities as YAML. The output can be passed to --catalog\n" +
			"to list capabilities without running ffmpeg.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			return probe.WriteSnapshot(a.stdout, cat)
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "%s %s\n", programName, version)
			fmt.Fprintf(a.stdout, "commit: %s\n", commit)
		},
	}
}
