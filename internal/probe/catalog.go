package probe

import (
	"context"

	"github.com/backmassage/muxinfo/internal/registry"
)

// Catalog is every registry the listings consume.
type Catalog struct {
	// Version describes where the data came from, e.g. the first line of
	// "ffmpeg -version".
	Version string

	Muxers   *registry.List
	Demuxers *registry.List
	Encoders *registry.List
	Decoders *registry.List
	Codecs   *registry.DescriptorList
}

// Counts summarizes a catalog.
type Counts struct {
	Muxers, Demuxers   int
	Devices            int
	Codecs             int
	Encoders, Decoders int
}

// Counts returns the registry sizes. Devices counts device entries on
// either side.
func (c *Catalog) Counts() Counts {
	n := Counts{
		Muxers:   c.Muxers.Len(),
		Demuxers: c.Demuxers.Len(),
		Codecs:   c.Codecs.Count(),
		Encoders: c.Encoders.Len(),
		Decoders: c.Decoders.Len(),
	}
	for _, l := range []*registry.List{c.Muxers, c.Demuxers} {
		for _, e := range l.Entries() {
			if e.IsDevice() {
				n.Devices++
			}
		}
	}
	return n
}

// Source produces a catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// Logger is the subset of the logger used by the loaders.
type Logger interface {
	Warn(string, ...interface{})
	Verbose(string, ...interface{})
}
