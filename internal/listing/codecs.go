package listing

import (
	"sort"

	"github.com/backmassage/muxinfo/internal/registry"
)

// CodecRow is one line of the codec listing.
type CodecRow struct {
	Descriptor registry.Descriptor
	Decodable  bool
	Encodable  bool

	// Implementor names that differ from the descriptor name, in registry
	// order. Non-empty when a codec is aliased or has several implementors.
	DecoderAliases []string
	EncoderAliases []string

	// Every implementor name, in registry order.
	Decoders []string
	Encoders []string
}

// ImplementorRow is one line of an encoder or decoder listing.
type ImplementorRow struct {
	Entry      registry.Entry
	Descriptor registry.Descriptor
}

// Aliased reports whether the implementor name differs from its codec.
func (r ImplementorRow) Aliased() bool {
	return r.Entry.Name != r.Descriptor.Name
}

// lessDescriptor orders by media type, then name.
func lessDescriptor(a, b registry.Descriptor) bool {
	if a.MediaType != b.MediaType {
		return a.MediaType < b.MediaType
	}
	return a.Name < b.Name
}

// SortDescriptors materializes the whole domain and returns it ordered by
// (media type, name). A domain that can be rewound is rewound first.
func SortDescriptors(domain registry.Domain) []registry.Descriptor {
	if r, ok := domain.(interface{ Reset() }); ok {
		r.Reset()
	}
	descs := make([]registry.Descriptor, 0, domain.Count())
	for d, ok := domain.Next(); ok; d, ok = domain.Next() {
		descs = append(descs, d)
	}
	sort.Slice(descs, func(i, j int) bool { return lessDescriptor(descs[i], descs[j]) })
	return descs
}

// probe scans reg for implementors of id. It returns all of their names and
// those that differ from canonical.
func probe(reg registry.Registry, id registry.CodecID, canonical string) (all, aliases []string) {
	if reg == nil {
		return nil, nil
	}
	reg.Reset()
	for e, ok := reg.Next(); ok; e, ok = reg.Next() {
		if e.Codec != id {
			continue
		}
		all = append(all, e.Name)
		if e.Name != canonical {
			aliases = append(aliases, e.Name)
		}
	}
	return all, aliases
}

// Aggregate computes presence and aliases of one descriptor.
func Aggregate(d registry.Descriptor, decoders, encoders registry.Registry) CodecRow {
	row := CodecRow{Descriptor: d}
	row.Decoders, row.DecoderAliases = probe(decoders, d.ID, d.Name)
	row.Encoders, row.EncoderAliases = probe(encoders, d.ID, d.Name)
	row.Decodable = len(row.Decoders) > 0
	row.Encodable = len(row.Encoders) > 0
	return row
}

// WalkCodecs renders every non-deprecated descriptor in sorted order.
func WalkCodecs(domain registry.Domain, decoders, encoders registry.Registry, render func(CodecRow) error) error {
	for _, d := range SortDescriptors(domain) {
		if d.Deprecated() {
			continue
		}
		if err := render(Aggregate(d, decoders, encoders)); err != nil {
			return err
		}
	}
	return nil
}

// WalkImplementors renders the implementors in reg grouped under their
// sorted descriptors. Implementors whose codec is not in the domain are not
// listed.
func WalkImplementors(domain registry.Domain, reg registry.Registry, render func(ImplementorRow) error) error {
	if reg == nil {
		return nil
	}
	for _, d := range SortDescriptors(domain) {
		reg.Reset()
		for e, ok := reg.Next(); ok; e, ok = reg.Next() {
			if e.Codec != d.ID {
				continue
			}
			if err := render(ImplementorRow{Entry: e, Descriptor: d}); err != nil {
				return err
			}
		}
	}
	return nil
}
