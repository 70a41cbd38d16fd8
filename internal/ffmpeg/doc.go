// Package ffmpeg runs the ffmpeg binary in its listing modes and classifies
// its failures.
//
// Only informational invocations are made (-version, -muxers, -codecs and
// so on); nothing is ever encoded. The captured stdout is handed to package
// probe for parsing. Failures are returned as [*ExitError] so callers can
// inspect stderr with [MatchUnrecognizedOption] and [MatchMissingLibrary].
package ffmpeg
