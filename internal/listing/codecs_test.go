package listing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/muxinfo/internal/registry"
)

func desc(id, name string, mt registry.MediaType) registry.Descriptor {
	return registry.Descriptor{ID: registry.CodecID(id), Name: name, MediaType: mt}
}

func impl(name, codec string, cat registry.Category) registry.Entry {
	return registry.Entry{Name: name, Codec: registry.CodecID(codec), Category: cat}
}

func TestSortDescriptors(t *testing.T) {
	domain := registry.NewDescriptorList(
		desc("h264", "h264", registry.MediaVideo),
		desc("aac", "aac", registry.MediaAudio),
		desc("av1", "av1", registry.MediaVideo),
		desc("ass", "ass", registry.MediaSubtitle),
		desc("bin_data", "bin_data", registry.MediaData),
		desc("ttf", "ttf", registry.MediaAttachment),
		desc("probe", "probe", registry.MediaUnknown),
	)

	var got []string
	for _, d := range SortDescriptors(domain) {
		got = append(got, d.Name)
	}
	assert.Equal(t, []string{"probe", "aac", "av1", "h264", "ass", "bin_data", "ttf"}, got)

	// A rewindable domain can be sorted again.
	assert.Len(t, SortDescriptors(domain), 7)
}

func TestSortDescriptors_Empty(t *testing.T) {
	assert.Empty(t, SortDescriptors(registry.NewDescriptorList()))
}

func TestAggregate(t *testing.T) {
	decoders := registry.NewList(
		impl("h264", "h264", registry.CategoryDecoder),
		impl("h264_cuvid", "h264", registry.CategoryDecoder),
		impl("aac", "aac", registry.CategoryDecoder),
	)
	encoders := registry.NewList(
		impl("libx264", "h264", registry.CategoryEncoder),
		impl("libx264rgb", "h264", registry.CategoryEncoder),
	)

	tests := []struct {
		name string
		d    registry.Descriptor
		want CodecRow
	}{
		{
			name: "decoder alias and encoders",
			d:    desc("h264", "h264", registry.MediaVideo),
			want: CodecRow{
				Decodable:      true,
				Encodable:      true,
				DecoderAliases: []string{"h264_cuvid"},
				EncoderAliases: []string{"libx264", "libx264rgb"},
				Decoders:       []string{"h264", "h264_cuvid"},
				Encoders:       []string{"libx264", "libx264rgb"},
			},
		},
		{
			name: "decoder only without aliases",
			d:    desc("aac", "aac", registry.MediaAudio),
			want: CodecRow{Decodable: true, Decoders: []string{"aac"}},
		},
		{
			name: "no implementors",
			d:    desc("vp9", "vp9", registry.MediaVideo),
			want: CodecRow{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.d, decoders, encoders)
			tt.want.Descriptor = tt.d
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregate_NilRegistries(t *testing.T) {
	row := Aggregate(desc("h264", "h264", registry.MediaVideo), nil, nil)
	assert.False(t, row.Decodable)
	assert.False(t, row.Encodable)
}

func TestWalkCodecs_SkipsDeprecated(t *testing.T) {
	domain := registry.NewDescriptorList(
		desc("vp8", "vp8", registry.MediaVideo),
		desc("old", "old_deprecated", registry.MediaVideo),
	)
	// The deprecated descriptor's implementor must not affect other rows.
	decoders := registry.NewList(impl("old", "old", registry.CategoryDecoder), impl("vp8", "vp8", registry.CategoryDecoder))

	var rows []CodecRow
	require.NoError(t, WalkCodecs(domain, decoders, nil, func(r CodecRow) error {
		rows = append(rows, r)
		return nil
	}))
	require.Len(t, rows, 1)
	assert.Equal(t, "vp8", rows[0].Descriptor.Name)
	assert.True(t, rows[0].Decodable)
	assert.Empty(t, rows[0].DecoderAliases)
}

func TestWalkCodecs_RenderError(t *testing.T) {
	domain := registry.NewDescriptorList(desc("a", "a", registry.MediaAudio), desc("b", "b", registry.MediaAudio))
	boom := errors.New("boom")
	calls := 0
	err := WalkCodecs(domain, nil, nil, func(CodecRow) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWalkImplementors(t *testing.T) {
	domain := registry.NewDescriptorList(
		desc("h264", "h264", registry.MediaVideo),
		desc("aac", "aac", registry.MediaAudio),
	)
	encoders := registry.NewList(
		impl("libx264", "h264", registry.CategoryEncoder),
		impl("aac", "aac", registry.CategoryEncoder),
		impl("orphan", "nope", registry.CategoryEncoder),
		impl("h264_nvenc", "h264", registry.CategoryEncoder),
	)

	var rows []ImplementorRow
	require.NoError(t, WalkImplementors(domain, encoders, func(r ImplementorRow) error {
		rows = append(rows, r)
		return nil
	}))
	require.Len(t, rows, 3)

	assert.Equal(t, "aac", rows[0].Entry.Name)
	assert.False(t, rows[0].Aliased())
	assert.Equal(t, "libx264", rows[1].Entry.Name)
	assert.True(t, rows[1].Aliased())
	assert.Equal(t, "h264_nvenc", rows[2].Entry.Name)
	assert.Equal(t, "h264", rows[2].Descriptor.Name)

	assert.NoError(t, WalkImplementors(domain, nil, func(ImplementorRow) error {
		t.Fatal("render called for nil registry")
		return nil
	}))
}
