package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/muxinfo/internal/registry"
)

const sampleMuxers = `Formats:
 D.. = Demuxing supported
 .E. = Muxing supported
 ..d = Is a device
 ---
  E  3g2             3GP2 (3GPP2 file format)
  Ed alsa            ALSA audio output
  E  mp4             MP4 (MPEG-4 Part 14)
  E  null            raw null video
`

const sampleDemuxersOld = `File formats:
 D. = Demuxing supported
 .E = Muxing supported
 --
 D  aac             raw ADTS AAC (Advanced Audio Coding)
 D  alsa            ALSA audio input
 D  mov,mp4,m4a,3gp,3g2,mj2 QuickTime / MOV
`

const sampleDevices = `Devices:
 D. = Demuxing supported
 .E = Muxing supported
 ---
 DE alsa            ALSA audio output
 D  lavfi           Libavfilter virtual input device
  E sdl,sdl2        SDL2 output device
`

const sampleCodecs = `Codecs:
 D..... = Decoding supported
 .E.... = Encoding supported
 ..V... = Video codec
 ..A... = Audio codec
 ..S... = Subtitle codec
 ..D... = Data codec
 ..T... = Attachment codec
 ...I.. = Intra frame-only codec
 ....L. = Lossy compression
 .....S = Lossless compression
 -------
 DEV.LS h264                 H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10 (decoders: h264 h264_v4l2m2m h264_cuvid) (encoders: libx264 libx264rgb h264_nvenc)
 DEAIL. aac                  AAC (Advanced Audio Coding) (decoders: aac aac_fixed)
 D.S... ass                  ASS (Advanced SSA) subtitle (decoders: ssa ass) (encoders: ssa ass)
 ..D... bin_data             binary data
 D.T... ttf                  TrueType font
`

const sampleEncoders = `Encoders:
 V..... = Video
 A..... = Audio
 S..... = Subtitle
 .F.... = Frame-level multithreading
 ..S... = Slice-level multithreading
 ...X.. = Codec is experimental
 ....B. = Supports draw_horiz_band
 .....D = Supports direct rendering method 1
 ------
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10 (codec h264)
 VFS..D h264_nvenc           NVIDIA NVENC H.264 encoder (codec h264)
 A....D aac                  AAC (Advanced Audio Coding)
 A..X.D opus                 Opus
`

func TestParseFormats(t *testing.T) {
	lines, err := ParseFormats([]byte(sampleMuxers))
	require.NoError(t, err)
	require.Len(t, lines, 4)

	assert.Equal(t, FormatLine{Name: "3g2", LongName: "3GP2 (3GPP2 file format)", Mux: true}, lines[0])
	assert.Equal(t, FormatLine{Name: "alsa", LongName: "ALSA audio output", Mux: true, Device: true}, lines[1])
	assert.Equal(t, "null", lines[3].Name)
}

func TestParseFormats_WithoutDeviceColumn(t *testing.T) {
	lines, err := ParseFormats([]byte(sampleDemuxersOld))
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, FormatLine{Name: "aac", LongName: "raw ADTS AAC (Advanced Audio Coding)", Demux: true}, lines[0])
	assert.Equal(t, "mov,mp4,m4a,3gp,3g2,mj2", lines[2].Name)
	assert.Equal(t, "QuickTime / MOV", lines[2].LongName)
	assert.False(t, lines[1].Device)
}

func TestParseFormats_Devices(t *testing.T) {
	lines, err := ParseFormats([]byte(sampleDevices))
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.True(t, lines[0].Demux)
	assert.True(t, lines[0].Mux)
	assert.True(t, lines[1].Demux)
	assert.False(t, lines[1].Mux)
	assert.Equal(t, "sdl,sdl2", lines[2].Name)
	assert.True(t, lines[2].Mux)
	assert.False(t, lines[2].Demux)
}

func TestParse_NoHeader(t *testing.T) {
	_, err := ParseFormats([]byte("  E  mp4  MP4\n"))
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = ParseCodecs(nil)
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = ParseImplementors([]byte(""), registry.CategoryEncoder)
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestParseCodecs(t *testing.T) {
	descs, err := ParseCodecs([]byte(sampleCodecs))
	require.NoError(t, err)
	require.Len(t, descs, 5)

	h264 := descs[0]
	assert.Equal(t, registry.CodecID("h264"), h264.ID)
	assert.Equal(t, "H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10", h264.LongName)
	assert.Equal(t, registry.MediaVideo, h264.MediaType)
	assert.Equal(t, registry.PropLossy|registry.PropLossless, h264.Props)

	aac := descs[1]
	assert.Equal(t, "AAC (Advanced Audio Coding)", aac.LongName)
	assert.Equal(t, registry.MediaAudio, aac.MediaType)
	assert.Equal(t, registry.PropIntraOnly|registry.PropLossy, aac.Props)

	assert.Equal(t, registry.MediaSubtitle, descs[2].MediaType)
	assert.Equal(t, "ASS (Advanced SSA) subtitle", descs[2].LongName)
	assert.Equal(t, registry.MediaData, descs[3].MediaType)
	assert.Equal(t, registry.MediaAttachment, descs[4].MediaType)
}

func TestParseImplementors(t *testing.T) {
	entries, err := ParseImplementors([]byte(sampleEncoders), registry.CategoryEncoder)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	x264 := entries[0]
	assert.Equal(t, "libx264", x264.Name)
	assert.Equal(t, registry.CodecID("h264"), x264.Codec)
	assert.Equal(t, "libx264 H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10", x264.LongName)
	assert.Equal(t, registry.CategoryEncoder, x264.Category)
	assert.Equal(t, registry.MediaVideo, x264.MediaType)
	assert.Equal(t, registry.CapDirectRendering, x264.Caps)

	assert.Equal(t, registry.CapFrameThreads|registry.CapSliceThreads|registry.CapDirectRendering, entries[1].Caps)

	aac := entries[2]
	assert.Equal(t, registry.CodecID("aac"), aac.Codec)
	assert.Equal(t, "AAC (Advanced Audio Coding)", aac.LongName)
	assert.Equal(t, registry.MediaAudio, aac.MediaType)

	assert.NotZero(t, entries[3].Caps&registry.CapExperimental)
}
