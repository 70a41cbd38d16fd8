package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/backmassage/muxinfo/internal/listing"
	"github.com/backmassage/muxinfo/internal/registry"
)

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name        string
		row         listing.MergedRow
		devicesOnly bool
		want        string
	}{
		{"both sides", listing.MergedRow{Name: "mp4", Input: true, Output: true, Description: "MP4"}, false, " DE  mp4             MP4"},
		{"muxer only", listing.MergedRow{Name: "null", Output: true, Description: "raw null video"}, false, "  E  null            raw null video"},
		{"device", listing.MergedRow{Name: "alsa", Input: true, Device: true, Description: "ALSA"}, false, " D d alsa            ALSA"},
		{"device listing", listing.MergedRow{Name: "alsa", Input: true, Device: true, Description: "ALSA"}, true, " D  alsa            ALSA"},
		{"no description", listing.MergedRow{Name: "x", Input: true}, false, " D   x                "},
		{"long name", listing.MergedRow{Name: "mov,mp4,m4a,3gp,3g2,mj2", Input: true, Description: "QuickTime / MOV"}, false, " D   mov,mp4,m4a,3gp,3g2,mj2 QuickTime / MOV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatLine(tt.row, tt.devicesOnly)
			if got != tt.want {
				t.Errorf("FormatLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodecLine(t *testing.T) {
	h264 := registry.Descriptor{ID: "h264", Name: "h264", LongName: "H.264", MediaType: registry.MediaVideo, Props: registry.PropLossy | registry.PropLossless}

	tests := []struct {
		name string
		row  listing.CodecRow
		want string
	}{
		{
			name: "no aliases",
			row:  listing.CodecRow{Descriptor: h264, Decodable: true, Decoders: []string{"h264"}},
			want: " D.V.LS h264                 H.264",
		},
		{
			name: "aliases list every implementor",
			row: listing.CodecRow{
				Descriptor: h264, Decodable: true, Encodable: true,
				Decoders: []string{"h264", "h264_cuvid"}, DecoderAliases: []string{"h264_cuvid"},
				Encoders: []string{"libx264"}, EncoderAliases: []string{"libx264"},
			},
			want: " DEV.LS h264                 H.264 (decoders: h264 h264_cuvid) (encoders: libx264)",
		},
		{
			name: "attachment intra",
			row:  listing.CodecRow{Descriptor: registry.Descriptor{Name: "ttf", LongName: "TrueType font", MediaType: registry.MediaAttachment, Props: registry.PropIntraOnly}},
			want: " ..TI.. ttf                  TrueType font",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodecLine(tt.row); got != tt.want {
				t.Errorf("CodecLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImplementorLine(t *testing.T) {
	h264 := registry.Descriptor{ID: "h264", Name: "h264", MediaType: registry.MediaVideo}

	tests := []struct {
		name string
		row  listing.ImplementorRow
		want string
	}{
		{
			name: "aliased",
			row: listing.ImplementorRow{
				Entry:      registry.Entry{Name: "libx264", LongName: "libx264 H.264", Codec: "h264", Caps: registry.CapDirectRendering},
				Descriptor: h264,
			},
			want: " V....D libx264              libx264 H.264 (codec h264)",
		},
		{
			name: "same name",
			row: listing.ImplementorRow{
				Entry:      registry.Entry{Name: "h264", LongName: "H.264", Codec: "h264", Caps: registry.CapFrameThreads | registry.CapSliceThreads | registry.CapExperimental | registry.CapDrawHorizBand},
				Descriptor: h264,
			},
			want: " VFSXB. h264                 H.264",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImplementorLine(tt.row); got != tt.want {
				t.Errorf("ImplementorLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_Formats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, NewTheme(false))

	if err := p.FormatsHeader(false); err != nil {
		t.Fatal(err)
	}
	render := p.FormatRow(false)
	if err := render(listing.MergedRow{Name: "mp4", Input: true, Output: true, Description: "MP4"}); err != nil {
		t.Fatal(err)
	}

	want := "Formats:\n D.. = Demuxing supported\n .E. = Muxing supported\n ..d = Is a device\n ---\n DE  mp4             MP4\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrinter_Headers(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, NewTheme(false))

	if err := p.FormatsHeader(true); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "Devices:\n D. = Demuxing supported\n") {
		t.Errorf("devices header = %q", buf.String())
	}

	buf.Reset()
	if err := p.CodecsHeader(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), " .....S = Lossless compression\n -------\n") {
		t.Errorf("codecs header = %q", buf.String())
	}

	buf.Reset()
	if err := p.ImplementorsHeader(true); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "Encoders:\n") || !strings.HasSuffix(buf.String(), " ------\n") {
		t.Errorf("encoders header = %q", buf.String())
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestPrinter_WriteError(t *testing.T) {
	p := NewPrinter(failWriter{}, NewTheme(false))
	if err := p.CodecRow(listing.CodecRow{}); err == nil {
		t.Error("expected write error")
	}
	if err := p.FormatsHeader(false); err == nil {
		t.Error("expected write error")
	}
}

func TestRenderSummary(t *testing.T) {
	got := RenderSummary(NewTheme(false), "Check", []Field{
		{Key: "ffmpeg", Value: "found", Status: StatusOK},
		{Key: "muxers", Value: "12"},
	})
	want := "Check\n  ffmpeg: found\n  muxers: 12\n"
	if got != want {
		t.Errorf("RenderSummary() = %q, want %q", got, want)
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, NewTheme(false), "1.2.3")
	out := buf.String()
	if strings.Count(out, "\n") != 5 || !strings.HasSuffix(out, "\nmuxinfo 1.2.3\n") {
		t.Errorf("banner = %q", out)
	}
}
