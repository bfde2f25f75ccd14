package compress

// ZstdCompressor implements the Codec interface with Zstandard compression.
// It is the default codec for retained snapshots: best ratio, and snapshot
// payloads are small enough that the extra CPU is negligible.
//
// The Compress/Decompress methods live in zstd_cgo.go (valyala/gozstd) and
// zstd_pure.go (klauspost/compress/zstd), selected by the cgo build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
