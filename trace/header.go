package trace

import (
	"encoding/binary"
	"fmt"

	"github.com/driftlab/cookietrail/endian"
	"github.com/driftlab/cookietrail/errs"
	"github.com/driftlab/cookietrail/format"
)

const (
	// MagicNumber identifies trace snapshot data; it reads "TRC1" on disk.
	MagicNumber uint32 = 0x31435254

	// Version is the current snapshot format version.
	Version uint8 = 1

	// HeaderSize is the fixed size of the snapshot header in bytes.
	HeaderSize = 32
)

// Flag byte layout: bits 0-2 compression, bits 3-4 timestamp encoding,
// bit 7 big-endian payload.
const (
	flagCompressionMask = 0x07
	flagEncodingShift   = 3
	flagEncodingMask    = 0x03
	flagBigEndian       = 0x80
)

// Header is the fixed-size prefix of a snapshot.
type Header struct {
	StreamID    uint64
	StartTime   int64 // unix microseconds
	Count       uint32
	PayloadSize uint32 // uncompressed payload size
	Compression format.CompressionType
	Encoding    format.EncodingType
	BigEndian   bool
}

// Engine returns the byte-order engine for the snapshot payload.
func (h *Header) Engine() endian.Engine {
	if h.BigEndian {
		return endian.Big()
	}

	return endian.Little()
}

func (h *Header) flag() uint8 {
	f := uint8(h.Compression) & flagCompressionMask
	f |= (uint8(h.Encoding) & flagEncodingMask) << flagEncodingShift
	if h.BigEndian {
		f |= flagBigEndian
	}

	return f
}

// appendTo appends the marshaled header. The header is always little-endian
// regardless of the payload byte order, so readers can parse it before
// knowing the flag.
func (h *Header) appendTo(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, MagicNumber)
	buf = append(buf, Version, h.flag(), 0, 0)
	buf = binary.LittleEndian.AppendUint64(buf, h.StreamID)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(h.StartTime)) //nolint:gosec
	buf = binary.LittleEndian.AppendUint32(buf, h.Count)
	buf = binary.LittleEndian.AppendUint32(buf, h.PayloadSize)

	return buf
}

// parseHeader decodes and validates the fixed header prefix of data.
func parseHeader(data []byte) (Header, error) {
	var h Header

	if len(data) < HeaderSize {
		return h, fmt.Errorf("%w: %d bytes, need at least %d", errs.ErrInvalidSnapshot, len(data), HeaderSize)
	}

	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != MagicNumber {
		return h, fmt.Errorf("%w: 0x%08x", errs.ErrInvalidMagicNumber, magic)
	}
	if version := data[4]; version != Version {
		return h, fmt.Errorf("%w: version %d", errs.ErrUnsupportedVersion, version)
	}

	flag := data[5]
	h.Compression = format.CompressionType(flag & flagCompressionMask)
	h.Encoding = format.EncodingType((flag >> flagEncodingShift) & flagEncodingMask)
	h.BigEndian = flag&flagBigEndian != 0

	if !h.Compression.IsValid() {
		return h, fmt.Errorf("%w: flag 0x%02x", errs.ErrUnknownCompression, flag)
	}
	if !h.Encoding.IsValid() {
		return h, fmt.Errorf("%w: flag 0x%02x", errs.ErrUnknownEncoding, flag)
	}

	h.StreamID = binary.LittleEndian.Uint64(data[8:16])
	h.StartTime = int64(binary.LittleEndian.Uint64(data[16:24])) //nolint:gosec
	h.Count = binary.LittleEndian.Uint32(data[24:28])
	h.PayloadSize = binary.LittleEndian.Uint32(data[28:32])

	return h, nil
}
