package probe

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/muxinfo/internal/ffmpeg"
	"github.com/backmassage/muxinfo/internal/registry"
)

// FFmpeg loads a catalog by running the ffmpeg listing commands.
type FFmpeg struct {
	Runner ffmpeg.Runner
	Log    Logger

	// Concurrency bounds the number of ffmpeg processes running at once.
	// Zero or less means unbounded.
	Concurrency int
}

// listing runs one ffmpeg listing and stores its stdout.
type listing struct {
	flag     string
	optional bool
	out      []byte
}

// Load runs every listing concurrently and assembles the catalog.
func (f *FFmpeg) Load(ctx context.Context) (*Catalog, error) {
	var (
		version  string
		muxers   = &listing{flag: "-muxers"}
		demuxers = &listing{flag: "-demuxers"}
		devices  = &listing{flag: "-devices", optional: true}
		codecs   = &listing{flag: "-codecs"}
		encoders = &listing{flag: "-encoders"}
		decoders = &listing{flag: "-decoders"}
	)

	g, gctx := errgroup.WithContext(ctx)
	if f.Concurrency > 0 {
		g.SetLimit(f.Concurrency)
	}
	g.Go(func() error {
		v, err := ffmpeg.Version(gctx, f.Runner)
		if err != nil {
			return fmt.Errorf("ffmpeg -version: %w", err)
		}
		version = v
		return nil
	})
	for _, l := range []*listing{muxers, demuxers, devices, codecs, encoders, decoders} {
		g.Go(func() error { return f.run(gctx, l) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return f.assemble(version, muxers.out, demuxers.out, devices.out, codecs.out, encoders.out, decoders.out)
}

func (f *FFmpeg) run(ctx context.Context, l *listing) error {
	out, err := f.Runner.Run(ctx, "-hide_banner", l.flag)
	if err != nil {
		if l.optional && ffmpeg.IsUnrecognizedOption(err) {
			if f.Log != nil {
				f.Log.Warn("ffmpeg does not support %s, device detection relies on the format listings", l.flag)
			}
			return nil
		}
		return fmt.Errorf("ffmpeg %s: %w", l.flag, err)
	}
	if f.Log != nil {
		f.Log.Verbose("ffmpeg %s: %d bytes", l.flag, len(out))
	}
	l.out = out
	return nil
}

func (f *FFmpeg) assemble(version string, muxOut, demuxOut, devOut, codecOut, encOut, decOut []byte) (*Catalog, error) {
	inDev, outDev := map[string]bool{}, map[string]bool{}
	if devOut != nil {
		devs, err := ParseFormats(devOut)
		if err != nil {
			return nil, fmt.Errorf("parse -devices: %w", err)
		}
		for _, d := range devs {
			inDev[d.Name] = inDev[d.Name] || d.Demux
			outDev[d.Name] = outDev[d.Name] || d.Mux
		}
	}

	muxLines, err := ParseFormats(muxOut)
	if err != nil {
		return nil, fmt.Errorf("parse -muxers: %w", err)
	}
	demuxLines, err := ParseFormats(demuxOut)
	if err != nil {
		return nil, fmt.Errorf("parse -demuxers: %w", err)
	}
	descs, err := ParseCodecs(codecOut)
	if err != nil {
		return nil, fmt.Errorf("parse -codecs: %w", err)
	}
	encs, err := ParseImplementors(encOut, registry.CategoryEncoder)
	if err != nil {
		return nil, fmt.Errorf("parse -encoders: %w", err)
	}
	decs, err := ParseImplementors(decOut, registry.CategoryDecoder)
	if err != nil {
		return nil, fmt.Errorf("parse -decoders: %w", err)
	}

	return &Catalog{
		Version:  version,
		Muxers:   registry.NewList(formatEntries(muxLines, true, outDev)...),
		Demuxers: registry.NewList(formatEntries(demuxLines, false, inDev)...),
		Encoders: registry.NewList(encs...),
		Decoders: registry.NewList(decs...),
		Codecs:   registry.NewDescriptorList(descs...),
	}, nil
}

// formatEntries converts one side of a format listing into entries.
func formatEntries(lines []FormatLine, output bool, devices map[string]bool) []registry.Entry {
	var entries []registry.Entry
	for _, l := range lines {
		if output && !l.Mux || !output && !l.Demux {
			continue
		}
		dev := l.Device || devices[l.Name]
		var cat registry.Category
		switch {
		case output && dev:
			cat = registry.CategoryOutputDevice
		case output:
			cat = registry.CategoryMuxer
		case dev:
			cat = registry.CategoryInputDevice
		default:
			cat = registry.CategoryDemuxer
		}
		entries = append(entries, registry.Entry{Name: l.Name, LongName: l.LongName, Category: cat})
	}
	return entries
}
