// Package compress provides the compression codecs used by the trace
// snapshot format.
//
// Four codecs are available, selected by format.CompressionType:
//
//   - None: pass-through, for short-lived runs where size does not matter
//   - Zstd: best ratio, the default for retained snapshots
//   - S2: fastest, reasonable ratio
//   - LZ4: fast with a slightly better ratio than S2 on varint payloads
//
// Snapshot payloads are small (a few KiB for a 200-point stream) and highly
// repetitive, so all codecs compress them well; the choice mostly trades CPU
// against retention size.
//
// The Zstd codec has two implementations: valyala/gozstd (cgo bindings to
// libzstd) when building with cgo, and klauspost/compress/zstd as the pure-Go
// fallback. Both produce interchangeable Zstandard frames.
package compress
