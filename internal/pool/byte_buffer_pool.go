// Package pool provides pooled byte buffers for building trace snapshots
// without re-allocating the working buffer on every stream.
package pool

import "sync"

const (
	// SnapshotBufferDefaultSize is the initial capacity of pooled buffers.
	// A snapshot of a 200-point stream fits comfortably below this.
	SnapshotBufferDefaultSize = 4 * 1024
	// SnapshotBufferMaxThreshold caps the capacity of buffers returned to the
	// pool; oversized buffers are dropped instead of pinned.
	SnapshotBufferMaxThreshold = 256 * 1024
)

// ByteBuffer is a length-tracked byte slice with append helpers.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a buffer with the given initial capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Len returns the number of bytes written.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Reset empties the buffer, keeping the allocated capacity.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// MustWrite appends data, growing the buffer as needed.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures capacity for at least n more bytes.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}
	grown := make([]byte, len(bb.B), len(bb.B)+n)
	copy(grown, bb.B)
	bb.B = grown
}

var snapshotBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(SnapshotBufferDefaultSize)
	},
}

// GetSnapshotBuffer returns an empty buffer from the pool.
func GetSnapshotBuffer() *ByteBuffer {
	bb, _ := snapshotBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutSnapshotBuffer returns a buffer to the pool unless it grew past the
// retention threshold.
func PutSnapshotBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > SnapshotBufferMaxThreshold {
		return
	}
	snapshotBufferPool.Put(bb)
}
