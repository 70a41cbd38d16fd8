package probe

import (
	"bufio"
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/backmassage/muxinfo/internal/registry"
)

// ErrNoHeader is returned when listing output lacks the dashed line that
// ends the legend.
var ErrNoHeader = errors.New("listing header not found")

// Pre-compiled patterns for the ffmpeg listing formats.
var (
	reHeaderEnd = regexp.MustCompile(`^\s*-+\s*$`)

	// " DEd name  long name"; the device column is absent in -devices and
	// in older releases.
	reFormatLine = regexp.MustCompile(`^ ([D ])([E ])(d| )?\s(\S+)\s*(.*)$`)

	// " DEVILS name  long name (decoders: a b) (encoders: c)"
	reCodecLine = regexp.MustCompile(`^ ([D.])([E.])([VASDT?])([I.])([L.])([S.]) (\S+)\s*(.*)$`)
	reCodecList = regexp.MustCompile(`\s*\((?:decoders|encoders):[^)]*\)`)

	// " VFSXBD name  long name (codec id)"
	reImplLine  = regexp.MustCompile(`^ ([VASDT?])([F.])([S.])([X.])([B.])([D.]) (\S+)\s*(.*)$`)
	reImplCodec = regexp.MustCompile(`\s*\(codec (\S+)\)$`)
)

// FormatLine is one parsed line of -formats, -muxers, -demuxers or
// -devices output.
type FormatLine struct {
	Name     string
	LongName string
	Demux    bool
	Mux      bool
	Device   bool
}

// body returns the lines after the legend.
func body(out []byte) ([]string, error) {
	var lines []string
	found := false
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if !found {
			found = reHeaderEnd.MatchString(line)
			continue
		}
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoHeader
	}
	return lines, nil
}

// ParseFormats parses format listing output. Lines that do not look like
// entries are skipped.
func ParseFormats(out []byte) ([]FormatLine, error) {
	lines, err := body(out)
	if err != nil {
		return nil, err
	}
	var res []FormatLine
	for _, line := range lines {
		m := reFormatLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		res = append(res, FormatLine{
			Name:     m[4],
			LongName: strings.TrimSpace(m[5]),
			Demux:    m[1] == "D",
			Mux:      m[2] == "E",
			Device:   m[3] == "d",
		})
	}
	return res, nil
}

// ParseCodecs parses -codecs output into descriptors. The codec name is
// used as its identity.
func ParseCodecs(out []byte) ([]registry.Descriptor, error) {
	lines, err := body(out)
	if err != nil {
		return nil, err
	}
	var res []registry.Descriptor
	for _, line := range lines {
		m := reCodecLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		d := registry.Descriptor{
			ID:        registry.CodecID(m[7]),
			Name:      m[7],
			LongName:  strings.TrimSpace(reCodecList.ReplaceAllString(m[8], "")),
			MediaType: registry.MediaTypeFromChar(m[3][0]),
		}
		if m[4] == "I" {
			d.Props |= registry.PropIntraOnly
		}
		if m[5] == "L" {
			d.Props |= registry.PropLossy
		}
		if m[6] == "S" {
			d.Props |= registry.PropLossless
		}
		res = append(res, d)
	}
	return res, nil
}

// ParseImplementors parses -encoders or -decoders output. cat is stored on
// every entry. An implementor without a "(codec x)" suffix implements the
// codec of the same name.
func ParseImplementors(out []byte, cat registry.Category) ([]registry.Entry, error) {
	lines, err := body(out)
	if err != nil {
		return nil, err
	}
	var res []registry.Entry
	for _, line := range lines {
		m := reImplLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		e := registry.Entry{
			Name:      m[7],
			Category:  cat,
			Codec:     registry.CodecID(m[7]),
			MediaType: registry.MediaTypeFromChar(m[1][0]),
		}
		long := m[8]
		if c := reImplCodec.FindStringSubmatch(long); c != nil {
			e.Codec = registry.CodecID(c[1])
			long = long[:len(long)-len(c[0])]
		}
		e.LongName = strings.TrimSpace(long)
		if m[2] == "F" {
			e.Caps |= registry.CapFrameThreads
		}
		if m[3] == "S" {
			e.Caps |= registry.CapSliceThreads
		}
		if m[4] == "X" {
			e.Caps |= registry.CapExperimental
		}
		if m[5] == "B" {
			e.Caps |= registry.CapDrawHorizBand
		}
		if m[6] == "D" {
			e.Caps |= registry.CapDirectRendering
		}
		res = append(res, e)
	}
	return res, nil
}
