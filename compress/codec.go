package compress

import (
	"fmt"

	"github.com/driftlab/cookietrail/errs"
	"github.com/driftlab/cookietrail/format"
)

// Compressor compresses a complete payload in one call.
//
// The returned slice is newly allocated and owned by the caller; the input is
// never modified. Implementations may keep pooled internal state but must be
// safe for concurrent use.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload previously produced by the matching
// Compressor. Corrupted or mismatched input returns an error rather than
// garbage output.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CodecFor returns the codec implementing the given compression type.
func CodecFor(typ format.CompressionType) (Codec, error) {
	switch typ {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownCompression, typ)
	}
}
