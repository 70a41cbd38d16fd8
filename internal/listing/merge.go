package listing

import "github.com/backmassage/muxinfo/internal/registry"

// MergedRow is one line of a format or device listing.
type MergedRow struct {
	Name        string
	Input       bool // Present in the input registry (demuxing).
	Output      bool // Present in the output registry (muxing).
	Device      bool
	Description string
}

// Merger produces the sorted union of two registries. Either registry may
// be nil, in which case it contributes nothing.
type Merger struct {
	in, out registry.Registry
	pred    registry.Predicate

	last    string
	started bool
	done    bool
}

// NewMerger returns a merger over in (demuxers) and out (muxers). A nil
// pred accepts every entry.
func NewMerger(in, out registry.Registry, pred registry.Predicate) *Merger {
	return &Merger{in: in, out: out, pred: pred}
}

func (m *Merger) visible(e registry.Entry) bool {
	return m.pred == nil || m.pred(e)
}

// after reports whether name sorts strictly after the last emitted name.
// Before the first emission every name qualifies, including "".
func (m *Merger) after(name string) bool {
	return !m.started || name > m.last
}

// Next returns the next row in ascending name order. It rescans both
// registries from the start on every call.
func (m *Merger) Next() (MergedRow, bool) {
	if m.done {
		return MergedRow{}, false
	}

	var row MergedRow
	found := false

	if m.out != nil {
		m.out.Reset()
		for e, ok := m.out.Next(); ok; e, ok = m.out.Next() {
			if !m.visible(e) || !m.after(e.Name) {
				continue
			}
			if !found || e.Name < row.Name {
				row = MergedRow{Name: e.Name, Output: true, Device: e.IsDevice(), Description: e.LongName}
				found = true
			}
		}
	}

	if m.in != nil {
		m.in.Reset()
		for e, ok := m.in.Next(); ok; e, ok = m.in.Next() {
			if !m.visible(e) || !m.after(e.Name) {
				continue
			}
			switch {
			case !found || e.Name < row.Name:
				row = MergedRow{Name: e.Name, Input: true, Device: e.IsDevice(), Description: e.LongName}
				found = true
			case e.Name == row.Name:
				row.Input = true
				row.Device = e.IsDevice()
			}
		}
	}

	if !found {
		m.done = true
		return MergedRow{}, false
	}
	m.last = row.Name
	m.started = true
	return row, true
}

// Walk drains the merger, calling render once per row.
func (m *Merger) Walk(render func(MergedRow) error) error {
	for row, ok := m.Next(); ok; row, ok = m.Next() {
		if err := render(row); err != nil {
			return err
		}
	}
	return nil
}

// Side selects which registries a format listing consults.
type Side int

const (
	Both      Side = iota
	OutputOnly     // Muxers.
	InputOnly      // Demuxers.
)

// WalkFormats merges demuxers and muxers restricted to side. When
// devicesOnly is set, non-device entries are invisible to the merge.
func WalkFormats(demuxers, muxers registry.Registry, side Side, devicesOnly bool, render func(MergedRow) error) error {
	var pred registry.Predicate
	if devicesOnly {
		pred = registry.DevicesOnly
	}
	switch side {
	case OutputOnly:
		demuxers = nil
	case InputOnly:
		muxers = nil
	}
	return NewMerger(demuxers, muxers, pred).Walk(render)
}
