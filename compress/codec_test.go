package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlab/cookietrail/errs"
	"github.com/driftlab/cookietrail/format"
)

// snapshotLikePayload builds a repetitive payload resembling a varint
// timestamp section followed by float64 scalars.
func snapshotLikePayload() []byte {
	var buf bytes.Buffer
	for i := 0; i < 200; i++ {
		buf.Write([]byte{0xE8, 0x07}) // varint 1000, a typical delta
	}
	for i := 0; i < 200; i++ {
		buf.Write([]byte{0, 0, 0, 0, 0, 0, byte(0x14 + i%3), 0x40})
	}

	return buf.Bytes()
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := snapshotLikePayload()

	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := CodecFor(typ)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, restored)
		})
	}
}

func TestCodecs_CompressRepetitiveData(t *testing.T) {
	payload := snapshotLikePayload()

	for _, typ := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := CodecFor(typ)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(payload), "codec %s", typ)
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, typ := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := CodecFor(typ)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Empty(t, compressed)

		restored, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, restored)
	}
}

func TestCodecs_CorruptInput(t *testing.T) {
	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03}

	for _, typ := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
	} {
		codec, err := CodecFor(typ)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, "codec %s", typ)
	}
}

func TestCodecFor_Unknown(t *testing.T) {
	_, err := CodecFor(format.CompressionType(0xFF))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
}

func TestNoOp_PassThrough(t *testing.T) {
	codec := NewNoOpCompressor()
	payload := []byte("as-is")

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, compressed)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, restored)
}
