// Package endian provides the byte-order abstraction used by the trace
// snapshot format.
//
// It merges the ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single Engine interface, so snapshot writers can use the faster
// append-style operations while readers use the indexed ones, both against
// the same engine value. binary.LittleEndian and binary.BigEndian satisfy
// Engine directly; the returned engines are stateless and safe for concurrent
// use.
package endian

import "encoding/binary"

// Engine combines read/write and append byte-order operations.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Little returns the little-endian engine. Trace snapshots are written
// little-endian by default, matching the native order of the platforms the
// tool runs on.
func Little() Engine {
	return binary.LittleEndian
}

// Big returns the big-endian engine.
func Big() Engine {
	return binary.BigEndian
}
