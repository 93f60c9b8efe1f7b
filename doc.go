// Package silicate loads a proprietary layered-raster document format: a
// document header, a recursive layer hierarchy, a flattened composite
// layer, and, for each leaf layer, a fully-assembled RGBA8 raster
// reconstructed from compressed on-disk tiles.
//
// Open is the entire load API surface: Open(path) returns a fully
// materialized *Document or an error. There is no write path, no CLI, and
// no rendering of the decoded layers.
package silicate
