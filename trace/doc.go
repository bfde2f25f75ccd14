// Package trace implements a compact binary snapshot format for retaining
// one stream's encoded scalar series.
//
// A snapshot is a 32-byte header followed by a payload:
//
//	[magic u32][version u8][flag u8][reserved u16]
//	[stream ID u64][start time i64, unix micros]
//	[point count u32][uncompressed payload size u32]
//	[payload]
//
// The payload is columnar: the timestamp section (varint deltas by default,
// raw int64 optionally) followed by the scalar section (one IEEE-754 float64
// per point). The whole payload may be compressed as a single unit; the flag
// byte records the compression codec, timestamp encoding, and payload byte
// order. The header itself is always little-endian.
//
// Snapshots are persistence for already-encoded scalars. They are not a codec
// for raw cookie values; the scalar transform is one-way and stays that way.
package trace
