// Package listing turns provider registries into ordered listings.
//
// [Merger] walks an input and an output registry in lockstep by repeated
// selection, producing one ascending, de-duplicated row per name without
// ever sorting or indexing the registries. [SortDescriptors] and
// [WalkCodecs] collapse encoders and decoders onto their canonical codec
// descriptors.
//
// Rendering is left to the caller: every walk takes a callback that
// receives fully computed rows, and any callback error stops the walk.
package listing
