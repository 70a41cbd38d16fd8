package registry

import (
	"fmt"
	"strings"
)

// Category classifies a registry entry.
type Category int

const (
	CategoryMuxer        Category = iota // Output container format.
	CategoryDemuxer                      // Input container format.
	CategoryOutputDevice                 // Muxer backed by a device.
	CategoryInputDevice                  // Demuxer backed by a device.
	CategoryEncoder
	CategoryDecoder
)

var categoryNames = [...]string{
	CategoryMuxer:        "muxer",
	CategoryDemuxer:      "demuxer",
	CategoryOutputDevice: "output device",
	CategoryInputDevice:  "input device",
	CategoryEncoder:      "encoder",
	CategoryDecoder:      "decoder",
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// IsDevice reports whether c is one of the device categories.
func (c Category) IsDevice() bool {
	return c == CategoryInputDevice || c == CategoryOutputDevice
}

// MediaType is the kind of stream a codec handles. The declaration order is
// the sort order used for codec listings.
type MediaType int

const (
	MediaUnknown MediaType = iota
	MediaAudio
	MediaVideo
	MediaSubtitle
	MediaData
	MediaAttachment
)

var mediaTypeNames = map[MediaType]string{
	MediaUnknown:    "unknown",
	MediaAudio:      "audio",
	MediaVideo:      "video",
	MediaSubtitle:   "subtitle",
	MediaData:       "data",
	MediaAttachment: "attachment",
}

func (m MediaType) String() string {
	if s, ok := mediaTypeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Char returns the single-letter column code used in ffmpeg listings.
func (m MediaType) Char() byte {
	switch m {
	case MediaVideo:
		return 'V'
	case MediaAudio:
		return 'A'
	case MediaData:
		return 'D'
	case MediaSubtitle:
		return 'S'
	case MediaAttachment:
		return 'T'
	default:
		return '?'
	}
}

// MediaTypeFromChar is the inverse of [MediaType.Char].
func MediaTypeFromChar(c byte) MediaType {
	switch c {
	case 'V':
		return MediaVideo
	case 'A':
		return MediaAudio
	case 'D':
		return MediaData
	case 'S':
		return MediaSubtitle
	case 'T':
		return MediaAttachment
	default:
		return MediaUnknown
	}
}

// ParseMediaType accepts the lowercase names returned by [MediaType.String].
func ParseMediaType(s string) (MediaType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range mediaTypeNames {
		if name == s {
			return m, nil
		}
	}
	return MediaUnknown, fmt.Errorf("unknown media type %q", s)
}

func (m MediaType) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *MediaType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseMediaType(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Caps is the capability bitset of an encoder or decoder.
type Caps uint32

const (
	CapFrameThreads Caps = 1 << iota
	CapSliceThreads
	CapExperimental
	CapDrawHorizBand
	CapDirectRendering
)

// Props is the property bitset of a codec descriptor.
type Props uint32

const (
	PropIntraOnly Props = 1 << iota
	PropLossy
	PropLossless
)

// Entry is one named provider in a registry.
type Entry struct {
	Name     string
	LongName string
	Category Category
	Caps     Caps

	// Codec is the descriptor identity an encoder or decoder implements.
	// Empty for formats and devices.
	Codec     CodecID
	MediaType MediaType
}

// IsDevice reports whether the entry belongs to the device class.
func (e Entry) IsDevice() bool { return e.Category.IsDevice() }

// CodecID identifies one logical codec independently of its implementors.
type CodecID string

// DeprecatedMarker in a descriptor name hides the descriptor from listings.
const DeprecatedMarker = "_deprecated"

// Descriptor is the canonical description of one codec identity.
type Descriptor struct {
	ID        CodecID
	Name      string
	LongName  string
	MediaType MediaType
	Props     Props
}

// Deprecated reports whether the descriptor name carries [DeprecatedMarker].
func (d Descriptor) Deprecated() bool {
	return strings.Contains(d.Name, DeprecatedMarker)
}
