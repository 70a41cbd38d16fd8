package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/backmassage/muxinfo/internal/listing"
	"github.com/backmassage/muxinfo/internal/registry"
)

func mark(ok bool, c, off byte) byte {
	if ok {
		return c
	}
	return off
}

// FormatLine renders a format or device row. The device column is omitted
// in device-only listings.
func FormatLine(r listing.MergedRow, devicesOnly bool) string {
	dev := ""
	if !devicesOnly {
		dev = string(mark(r.Device, 'd', ' '))
	}
	desc := r.Description
	if desc == "" {
		desc = " "
	}
	return fmt.Sprintf(" %c%c%s %-15s %s", mark(r.Input, 'D', ' '), mark(r.Output, 'E', ' '), dev, r.Name, desc)
}

// CodecLine renders a codec row. Implementor lists are printed only when
// some implementor name differs from the codec name.
func CodecLine(r listing.CodecRow) string {
	d := r.Descriptor
	var b strings.Builder
	fmt.Fprintf(&b, " %c%c%c%c%c%c %-20s %s",
		mark(r.Decodable, 'D', '.'),
		mark(r.Encodable, 'E', '.'),
		d.MediaType.Char(),
		mark(d.Props&registry.PropIntraOnly != 0, 'I', '.'),
		mark(d.Props&registry.PropLossy != 0, 'L', '.'),
		mark(d.Props&registry.PropLossless != 0, 'S', '.'),
		d.Name, d.LongName)
	if len(r.DecoderAliases) > 0 {
		fmt.Fprintf(&b, " (decoders: %s)", strings.Join(r.Decoders, " "))
	}
	if len(r.EncoderAliases) > 0 {
		fmt.Fprintf(&b, " (encoders: %s)", strings.Join(r.Encoders, " "))
	}
	return b.String()
}

// ImplementorLine renders an encoder or decoder row.
func ImplementorLine(r listing.ImplementorRow) string {
	e := r.Entry
	var b strings.Builder
	fmt.Fprintf(&b, " %c%c%c%c%c%c %-20s %s",
		r.Descriptor.MediaType.Char(),
		mark(e.Caps&registry.CapFrameThreads != 0, 'F', '.'),
		mark(e.Caps&registry.CapSliceThreads != 0, 'S', '.'),
		mark(e.Caps&registry.CapExperimental != 0, 'X', '.'),
		mark(e.Caps&registry.CapDrawHorizBand != 0, 'B', '.'),
		mark(e.Caps&registry.CapDirectRendering != 0, 'D', '.'),
		e.Name, e.LongName)
	if r.Aliased() {
		fmt.Fprintf(&b, " (codec %s)", r.Descriptor.Name)
	}
	return b.String()
}

// Printer writes listings to w.
type Printer struct {
	w     io.Writer
	theme Theme
}

// NewPrinter returns a printer writing to w with theme.
func NewPrinter(w io.Writer, theme Theme) *Printer {
	return &Printer{w: w, theme: theme}
}

func (p *Printer) header(title string, legend []string, rule string) error {
	var b strings.Builder
	b.WriteString(p.theme.Title.Render(title + ":"))
	b.WriteByte('\n')
	for _, l := range legend {
		b.WriteString(p.theme.Legend.Render(l))
		b.WriteByte('\n')
	}
	b.WriteString(rule)
	b.WriteByte('\n')
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Printer) line(s string) error {
	_, err := io.WriteString(p.w, s+"\n")
	return err
}

// FormatsHeader writes the format or device legend.
func (p *Printer) FormatsHeader(devicesOnly bool) error {
	if devicesOnly {
		return p.header("Devices", []string{
			" D. = Demuxing supported",
			" .E = Muxing supported",
		}, " ---")
	}
	return p.header("Formats", []string{
		" D.. = Demuxing supported",
		" .E. = Muxing supported",
		" ..d = Is a device",
	}, " ---")
}

// FormatRow returns a render callback for [listing.WalkFormats].
func (p *Printer) FormatRow(devicesOnly bool) func(listing.MergedRow) error {
	return func(r listing.MergedRow) error {
		return p.line(FormatLine(r, devicesOnly))
	}
}

// CodecsHeader writes the codec legend.
func (p *Printer) CodecsHeader() error {
	return p.header("Codecs", []string{
		" D..... = Decoding supported",
		" .E.... = Encoding supported",
		" ..V... = Video codec",
		" ..A... = Audio codec",
		" ..S... = Subtitle codec",
		" ..D... = Data codec",
		" ..T... = Attachment codec",
		" ...I.. = Intra frame-only codec",
		" ....L. = Lossy compression",
		" .....S = Lossless compression",
	}, " -------")
}

// CodecRow is a render callback for [listing.WalkCodecs].
func (p *Printer) CodecRow(r listing.CodecRow) error {
	return p.line(CodecLine(r))
}

// ImplementorsHeader writes the encoder or decoder legend.
func (p *Printer) ImplementorsHeader(encoders bool) error {
	title := "Decoders"
	if encoders {
		title = "Encoders"
	}
	return p.header(title, []string{
		" V..... = Video",
		" A..... = Audio",
		" S..... = Subtitle",
		" .F.... = Frame-level multithreading",
		" ..S... = Slice-level multithreading",
		" ...X.. = Codec is experimental",
		" ....B. = Supports draw_horiz_band",
		" .....D = Supports direct rendering method 1",
	}, " ------")
}

// ImplementorRow is a render callback for [listing.WalkImplementors].
func (p *Printer) ImplementorRow(r listing.ImplementorRow) error {
	return p.line(ImplementorLine(r))
}
