package trace

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/driftlab/cookietrail/compress"
	"github.com/driftlab/cookietrail/errs"
	"github.com/driftlab/cookietrail/format"
)

// Point is one decoded (timestamp, scalar) pair.
type Point struct {
	Timestamp int64 // unix microseconds
	Scalar    float64
}

// Snapshot is a fully decoded trace snapshot.
type Snapshot struct {
	StreamID    uint64
	StartTime   int64 // unix microseconds
	Compression format.CompressionType
	Encoding    format.EncodingType
	Points      []Point
}

// Decode parses and validates snapshot bytes produced by a Writer.
func Decode(data []byte) (*Snapshot, error) {
	header, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.CodecFor(header.Compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(data[HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot payload: %w", err)
	}
	if len(payload) != int(header.PayloadSize) {
		return nil, fmt.Errorf("%w: payload size %d, header declares %d",
			errs.ErrInvalidSnapshot, len(payload), header.PayloadSize)
	}

	engine := header.Engine()
	count := int(header.Count)
	// The count field is untrusted until checked against the payload: the
	// scalar section alone needs 8 bytes per point, so a count the payload
	// cannot hold is corruption, not a reason to allocate gigabytes.
	if len(payload) < 8*count {
		return nil, fmt.Errorf("%w: %d points cannot fit a %d byte payload",
			errs.ErrInvalidSnapshot, count, len(payload))
	}
	points := make([]Point, count)

	// Timestamp section.
	offset := 0
	switch header.Encoding {
	case format.TypeDelta:
		prev := header.StartTime
		for i := 0; i < count; i++ {
			delta, n := binary.Varint(payload[offset:])
			if n <= 0 {
				return nil, fmt.Errorf("%w: truncated timestamp section at point %d",
					errs.ErrInvalidSnapshot, i)
			}
			offset += n
			prev += delta
			points[i].Timestamp = prev
		}
	case format.TypeRaw:
		if len(payload) < 8*count {
			return nil, fmt.Errorf("%w: truncated timestamp section", errs.ErrInvalidSnapshot)
		}
		for i := 0; i < count; i++ {
			points[i].Timestamp = int64(engine.Uint64(payload[offset:])) //nolint:gosec
			offset += 8
		}
	}

	// Scalar section must exactly fill the rest of the payload.
	if len(payload)-offset != 8*count {
		return nil, fmt.Errorf("%w: scalar section is %d bytes, want %d",
			errs.ErrInvalidSnapshot, len(payload)-offset, 8*count)
	}
	for i := 0; i < count; i++ {
		points[i].Scalar = math.Float64frombits(engine.Uint64(payload[offset:]))
		offset += 8
	}

	return &Snapshot{
		StreamID:    header.StreamID,
		StartTime:   header.StartTime,
		Compression: header.Compression,
		Encoding:    header.Encoding,
		Points:      points,
	}, nil
}
