// Package format defines the shared enum types used by the trace snapshot
// format and the compression codecs.
package format

type (
	EncodingType    uint8
	CompressionType uint8
)

const (
	TypeRaw   EncodingType = 0x1 // TypeRaw stores timestamps as fixed-width int64 values.
	TypeDelta EncodingType = 0x2 // TypeDelta stores timestamps as varint deltas.

	CompressionNone CompressionType = 0x1 // CompressionNone leaves the payload uncompressed.
	CompressionZstd CompressionType = 0x2 // CompressionZstd compresses the payload with Zstandard.
	CompressionS2   CompressionType = 0x3 // CompressionS2 compresses the payload with S2.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 compresses the payload with LZ4.
)

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeDelta:
		return "Delta"
	default:
		return "Unknown"
	}
}

// IsValid reports whether e is a known timestamp encoding.
func (e EncodingType) IsValid() bool {
	return e == TypeRaw || e == TypeDelta
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	switch c {
	case CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4:
		return true
	default:
		return false
	}
}

// ParseCompression maps a configuration name ("none", "zstd", "s2", "lz4")
// to its CompressionType. The boolean result is false for unrecognized names.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "", "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return CompressionNone, false
	}
}
