package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/muxinfo/internal/registry"
)

// Snapshot is the YAML form of a catalog.
type Snapshot struct {
	Version  string           `yaml:"version,omitempty"`
	Muxers   []SnapshotFormat `yaml:"muxers,omitempty"`
	Demuxers []SnapshotFormat `yaml:"demuxers,omitempty"`
	Codecs   []SnapshotCodec  `yaml:"codecs,omitempty"`
	Encoders []SnapshotImpl   `yaml:"encoders,omitempty"`
	Decoders []SnapshotImpl   `yaml:"decoders,omitempty"`
}

// SnapshotFormat is a muxer or demuxer.
type SnapshotFormat struct {
	Name     string `yaml:"name"`
	LongName string `yaml:"long_name,omitempty"`
	Device   bool   `yaml:"device,omitempty"`
}

// SnapshotCodec is a codec descriptor. ID defaults to Name.
type SnapshotCodec struct {
	ID       string             `yaml:"id,omitempty"`
	Name     string             `yaml:"name"`
	LongName string             `yaml:"long_name,omitempty"`
	Type     registry.MediaType `yaml:"type"`
	Props    []string           `yaml:"props,omitempty"`
}

// SnapshotImpl is an encoder or decoder. Codec defaults to Name.
type SnapshotImpl struct {
	Name     string             `yaml:"name"`
	LongName string             `yaml:"long_name,omitempty"`
	Codec    string             `yaml:"codec,omitempty"`
	Type     registry.MediaType `yaml:"type,omitempty"`
	Caps     []string           `yaml:"caps,omitempty"`
}

var propNames = []struct {
	name string
	bit  registry.Props
}{
	{"intra-only", registry.PropIntraOnly},
	{"lossy", registry.PropLossy},
	{"lossless", registry.PropLossless},
}

var capNames = []struct {
	name string
	bit  registry.Caps
}{
	{"frame-threads", registry.CapFrameThreads},
	{"slice-threads", registry.CapSliceThreads},
	{"experimental", registry.CapExperimental},
	{"draw-horiz-band", registry.CapDrawHorizBand},
	{"direct-rendering", registry.CapDirectRendering},
}

func parseProps(names []string) (registry.Props, error) {
	var p registry.Props
next:
	for _, n := range names {
		for _, pn := range propNames {
			if pn.name == n {
				p |= pn.bit
				continue next
			}
		}
		return 0, fmt.Errorf("unknown codec property %q", n)
	}
	return p, nil
}

func parseCaps(names []string) (registry.Caps, error) {
	var c registry.Caps
next:
	for _, n := range names {
		for _, cn := range capNames {
			if cn.name == n {
				c |= cn.bit
				continue next
			}
		}
		return 0, fmt.Errorf("unknown capability %q", n)
	}
	return c, nil
}

// SnapshotFile is a [Source] backed by a YAML file.
type SnapshotFile struct {
	Path string
}

// Load implements [Source].
func (s SnapshotFile) Load(context.Context) (*Catalog, error) {
	return LoadSnapshot(s.Path)
}

// LoadSnapshot reads a catalog from a YAML file.
func LoadSnapshot(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	cat, err := s.Catalog()
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return cat, nil
}

// Catalog converts the snapshot into registries.
func (s *Snapshot) Catalog() (*Catalog, error) {
	cat := &Catalog{Version: s.Version}

	descs := make([]registry.Descriptor, 0, len(s.Codecs))
	types := map[registry.CodecID]registry.MediaType{}
	for _, c := range s.Codecs {
		if c.Name == "" {
			return nil, errors.New("codec without a name")
		}
		props, err := parseProps(c.Props)
		if err != nil {
			return nil, fmt.Errorf("codec %s: %w", c.Name, err)
		}
		id := registry.CodecID(c.ID)
		if id == "" {
			id = registry.CodecID(c.Name)
		}
		types[id] = c.Type
		descs = append(descs, registry.Descriptor{
			ID: id, Name: c.Name, LongName: c.LongName, MediaType: c.Type, Props: props,
		})
	}
	cat.Codecs = registry.NewDescriptorList(descs...)

	var err error
	if cat.Muxers, err = snapshotFormats(s.Muxers, registry.CategoryMuxer, registry.CategoryOutputDevice); err != nil {
		return nil, fmt.Errorf("muxers: %w", err)
	}
	if cat.Demuxers, err = snapshotFormats(s.Demuxers, registry.CategoryDemuxer, registry.CategoryInputDevice); err != nil {
		return nil, fmt.Errorf("demuxers: %w", err)
	}
	if cat.Encoders, err = snapshotImpls(s.Encoders, registry.CategoryEncoder, types); err != nil {
		return nil, fmt.Errorf("encoders: %w", err)
	}
	if cat.Decoders, err = snapshotImpls(s.Decoders, registry.CategoryDecoder, types); err != nil {
		return nil, fmt.Errorf("decoders: %w", err)
	}
	return cat, nil
}

func snapshotFormats(in []SnapshotFormat, plain, device registry.Category) (*registry.List, error) {
	entries := make([]registry.Entry, 0, len(in))
	for _, f := range in {
		if f.Name == "" {
			return nil, errors.New("entry without a name")
		}
		cat := plain
		if f.Device {
			cat = device
		}
		entries = append(entries, registry.Entry{Name: f.Name, LongName: f.LongName, Category: cat})
	}
	return registry.NewList(entries...), nil
}

func snapshotImpls(in []SnapshotImpl, cat registry.Category, types map[registry.CodecID]registry.MediaType) (*registry.List, error) {
	entries := make([]registry.Entry, 0, len(in))
	for _, i := range in {
		if i.Name == "" {
			return nil, errors.New("entry without a name")
		}
		caps, err := parseCaps(i.Caps)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", i.Name, err)
		}
		codec := registry.CodecID(i.Codec)
		if codec == "" {
			codec = registry.CodecID(i.Name)
		}
		mt := i.Type
		if mt == registry.MediaUnknown {
			mt = types[codec]
		}
		entries = append(entries, registry.Entry{
			Name: i.Name, LongName: i.LongName, Category: cat, Caps: caps, Codec: codec, MediaType: mt,
		})
	}
	return registry.NewList(entries...), nil
}

// NewSnapshot converts a catalog back into its YAML form.
func NewSnapshot(c *Catalog) *Snapshot {
	s := &Snapshot{Version: c.Version}
	for _, e := range c.Muxers.Entries() {
		s.Muxers = append(s.Muxers, SnapshotFormat{Name: e.Name, LongName: e.LongName, Device: e.IsDevice()})
	}
	for _, e := range c.Demuxers.Entries() {
		s.Demuxers = append(s.Demuxers, SnapshotFormat{Name: e.Name, LongName: e.LongName, Device: e.IsDevice()})
	}
	for _, d := range c.Codecs.Descriptors() {
		sc := SnapshotCodec{Name: d.Name, LongName: d.LongName, Type: d.MediaType}
		if string(d.ID) != d.Name {
			sc.ID = string(d.ID)
		}
		for _, pn := range propNames {
			if d.Props&pn.bit != 0 {
				sc.Props = append(sc.Props, pn.name)
			}
		}
		s.Codecs = append(s.Codecs, sc)
	}
	s.Encoders = snapshotImplsOf(c.Encoders)
	s.Decoders = snapshotImplsOf(c.Decoders)
	return s
}

func snapshotImplsOf(l *registry.List) []SnapshotImpl {
	var out []SnapshotImpl
	for _, e := range l.Entries() {
		si := SnapshotImpl{Name: e.Name, LongName: e.LongName, Type: e.MediaType}
		if string(e.Codec) != e.Name {
			si.Codec = string(e.Codec)
		}
		for _, cn := range capNames {
			if e.Caps&cn.bit != 0 {
				si.Caps = append(si.Caps, cn.name)
			}
		}
		out = append(out, si)
	}
	return out
}

// WriteSnapshot encodes c as YAML to w.
func WriteSnapshot(w io.Writer, c *Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewSnapshot(c)); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}
