package registry

// Registry is a forward-only cursor over provider entries. Next returns
// false once the registry is exhausted; Reset rewinds to the first entry.
// The order of entries is unspecified.
type Registry interface {
	Reset()
	Next() (Entry, bool)
}

// Domain is a single-pass cursor over canonical descriptors.
type Domain interface {
	Count() int
	Next() (Descriptor, bool)
}

// Predicate selects the entries visible to an enumeration.
type Predicate func(Entry) bool

// DevicesOnly is the predicate used for device listings.
func DevicesOnly(e Entry) bool { return e.IsDevice() }

// List is a slice-backed [Registry].
type List struct {
	entries []Entry
	pos     int
}

// NewList returns a registry over entries. The slice is not copied and must
// not be modified while the registry is in use.
func NewList(entries ...Entry) *List {
	return &List{entries: entries}
}

// Reset rewinds the cursor.
func (l *List) Reset() {
	if l != nil {
		l.pos = 0
	}
}

// Next returns the next entry.
func (l *List) Next() (Entry, bool) {
	if l == nil || l.pos >= len(l.entries) {
		return Entry{}, false
	}
	e := l.entries[l.pos]
	l.pos++
	return e, true
}

// Len returns the number of entries.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Entries returns the backing slice.
func (l *List) Entries() []Entry {
	if l == nil {
		return nil
	}
	return l.entries
}

// DescriptorList is a slice-backed [Domain]. Reset allows the same list to
// be materialized more than once.
type DescriptorList struct {
	descs []Descriptor
	pos   int
}

// NewDescriptorList returns a domain over descs.
func NewDescriptorList(descs ...Descriptor) *DescriptorList {
	return &DescriptorList{descs: descs}
}

// Count returns the total number of descriptors.
func (d *DescriptorList) Count() int {
	if d == nil {
		return 0
	}
	return len(d.descs)
}

// Next returns the next descriptor.
func (d *DescriptorList) Next() (Descriptor, bool) {
	if d == nil || d.pos >= len(d.descs) {
		return Descriptor{}, false
	}
	desc := d.descs[d.pos]
	d.pos++
	return desc, true
}

// Reset rewinds the cursor.
func (d *DescriptorList) Reset() {
	if d != nil {
		d.pos = 0
	}
}

// Descriptors returns the backing slice.
func (d *DescriptorList) Descriptors() []Descriptor {
	if d == nil {
		return nil
	}
	return d.descs
}
