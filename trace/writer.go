package trace

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/driftlab/cookietrail/compress"
	"github.com/driftlab/cookietrail/errs"
	"github.com/driftlab/cookietrail/format"
	"github.com/driftlab/cookietrail/internal/options"
	"github.com/driftlab/cookietrail/internal/pool"
)

// Writer builds a snapshot of one stream's encoded series.
//
// Points must be added in arrival order; delta timestamp encoding stores each
// timestamp relative to the previous one (the first relative to the snapshot
// start time). A Writer is single-use: after Finish it cannot accept more
// points. It is not safe for concurrent use.
type Writer struct {
	streamID  uint64
	startTime int64

	compression format.CompressionType
	encoding    format.EncodingType
	bigEndian   bool

	timestamps []int64
	scalars    []float64
	finished   bool
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// WithCompression selects the payload compression codec. The default is Zstd.
func WithCompression(typ format.CompressionType) WriterOption {
	return options.New(func(w *Writer) error {
		if !typ.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrUnknownCompression, typ)
		}
		w.compression = typ

		return nil
	})
}

// WithTimestampEncoding selects raw or delta timestamp encoding. The default
// is delta, which turns the near-regular sampling intervals of a collection
// run into short varints.
func WithTimestampEncoding(typ format.EncodingType) WriterOption {
	return options.New(func(w *Writer) error {
		if !typ.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrUnknownEncoding, typ)
		}
		w.encoding = typ

		return nil
	})
}

// WithBigEndian writes the payload big-endian for interoperability; the
// default is little-endian.
func WithBigEndian() WriterOption {
	return options.NoError(func(w *Writer) {
		w.bigEndian = true
	})
}

// NewWriter creates a snapshot writer for the given stream.
//
// startTime is the collection run's start; it anchors the first delta
// timestamp and orders snapshots of the same stream across runs.
func NewWriter(streamID uint64, startTime time.Time, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		streamID:    streamID,
		startTime:   startTime.UnixMicro(),
		compression: format.CompressionZstd,
		encoding:    format.TypeDelta,
	}

	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	return w, nil
}

// Add appends one point. timestamp is in unix microseconds.
func (w *Writer) Add(timestamp int64, scalar float64) error {
	if w.finished {
		return fmt.Errorf("%w: writer already finished", errs.ErrInvalidSnapshot)
	}
	if len(w.timestamps) >= math.MaxUint32 {
		return fmt.Errorf("%w: point count exceeds format limit", errs.ErrInvalidSnapshot)
	}

	w.timestamps = append(w.timestamps, timestamp)
	w.scalars = append(w.scalars, scalar)

	return nil
}

// Count returns the number of points added so far.
func (w *Writer) Count() int {
	return len(w.timestamps)
}

// Finish assembles, compresses and returns the snapshot bytes. The writer
// cannot be reused afterwards.
func (w *Writer) Finish() ([]byte, error) {
	if w.finished {
		return nil, fmt.Errorf("%w: writer already finished", errs.ErrInvalidSnapshot)
	}
	if len(w.timestamps) == 0 {
		return nil, errs.ErrNoDataPoints
	}
	w.finished = true

	header := Header{
		StreamID:    w.streamID,
		StartTime:   w.startTime,
		Count:       uint32(len(w.timestamps)), //nolint:gosec
		Compression: w.compression,
		Encoding:    w.encoding,
		BigEndian:   w.bigEndian,
	}
	engine := header.Engine()

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	// Timestamp section.
	switch w.encoding {
	case format.TypeDelta:
		prev := w.startTime
		for _, ts := range w.timestamps {
			buf.B = binary.AppendVarint(buf.B, ts-prev)
			prev = ts
		}
	case format.TypeRaw:
		for _, ts := range w.timestamps {
			buf.B = engine.AppendUint64(buf.B, uint64(ts)) //nolint:gosec
		}
	}

	// Scalar section.
	buf.Grow(8 * len(w.scalars))
	for _, scalar := range w.scalars {
		buf.B = engine.AppendUint64(buf.B, math.Float64bits(scalar))
	}

	header.PayloadSize = uint32(buf.Len()) //nolint:gosec

	codec, err := compress.CodecFor(w.compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress snapshot payload: %w", err)
	}

	out := make([]byte, 0, HeaderSize+len(payload))
	out = header.appendTo(out)
	out = append(out, payload...)

	return out, nil
}
