// Package probe builds registries from an ffmpeg binary or a YAML snapshot.
//
// The live source runs the ffmpeg listing commands concurrently and parses
// their text output. The snapshot source reads the same data from a file,
// which makes listings reproducible and usable on hosts without ffmpeg.
// Both produce a [Catalog] that is complete before any enumeration starts.
package probe
