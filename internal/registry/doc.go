// Package registry defines the read-only provider registries that the
// listing code enumerates: muxers, demuxers, encoders and decoders as
// forward-only [Registry] cursors, and canonical codec descriptors as a
// single-pass [Domain].
//
// Registries are owned by whoever loaded them (see package probe). Listing
// code only ever calls Reset and Next and never mutates an [Entry].
package registry
