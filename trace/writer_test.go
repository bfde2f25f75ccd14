package trace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/driftlab/cookietrail/errs"
	"github.com/driftlab/cookietrail/format"
	"github.com/driftlab/cookietrail/internal/hash"
)

func sampleSeries(start time.Time, n int) ([]int64, []float64) {
	timestamps := make([]int64, n)
	scalars := make([]float64, n)
	for i := 0; i < n; i++ {
		timestamps[i] = start.Add(time.Duration(i) * 500 * time.Millisecond).UnixMicro()
		scalars[i] = 5.0 + float64(i%7)*0.25
	}

	return timestamps, scalars
}

func TestWriter_RoundTrip(t *testing.T) {
	start := time.Now()
	streamID := hash.StreamID("sessionid")
	timestamps, scalars := sampleSeries(start, 50)

	w, err := NewWriter(streamID, start)
	require.NoError(t, err)
	for i := range timestamps {
		require.NoError(t, w.Add(timestamps[i], scalars[i]))
	}
	require.Equal(t, 50, w.Count())

	data, err := w.Finish()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), HeaderSize)

	snap, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, streamID, snap.StreamID)
	require.Equal(t, start.UnixMicro(), snap.StartTime)
	require.Equal(t, format.CompressionZstd, snap.Compression)
	require.Equal(t, format.TypeDelta, snap.Encoding)
	require.Len(t, snap.Points, 50)
	for i, p := range snap.Points {
		require.Equal(t, timestamps[i], p.Timestamp, "point %d", i)
		require.Equal(t, scalars[i], p.Scalar, "point %d", i)
	}
}

func TestWriter_CompressionVariants(t *testing.T) {
	start := time.Now()
	timestamps, scalars := sampleSeries(start, 120)

	for _, typ := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(typ.String(), func(t *testing.T) {
			w, err := NewWriter(1, start, WithCompression(typ))
			require.NoError(t, err)
			for i := range timestamps {
				require.NoError(t, w.Add(timestamps[i], scalars[i]))
			}

			data, err := w.Finish()
			require.NoError(t, err)

			snap, err := Decode(data)
			require.NoError(t, err)
			require.Equal(t, typ, snap.Compression)
			require.Len(t, snap.Points, len(timestamps))
			require.Equal(t, scalars[13], snap.Points[13].Scalar)
		})
	}
}

func TestWriter_RawTimestampsBigEndian(t *testing.T) {
	start := time.Now()
	timestamps, scalars := sampleSeries(start, 10)

	w, err := NewWriter(2, start,
		WithTimestampEncoding(format.TypeRaw),
		WithBigEndian(),
		WithCompression(format.CompressionNone),
	)
	require.NoError(t, err)
	for i := range timestamps {
		require.NoError(t, w.Add(timestamps[i], scalars[i]))
	}

	data, err := w.Finish()
	require.NoError(t, err)
	// Raw encoding, no compression: payload is exactly 16 bytes per point.
	require.Equal(t, HeaderSize+16*len(timestamps), len(data))

	snap, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, format.TypeRaw, snap.Encoding)
	for i, p := range snap.Points {
		require.Equal(t, timestamps[i], p.Timestamp)
		require.Equal(t, scalars[i], p.Scalar)
	}
}

func TestWriter_Empty(t *testing.T) {
	w, err := NewWriter(1, time.Now())
	require.NoError(t, err)

	_, err = w.Finish()
	require.ErrorIs(t, err, errs.ErrNoDataPoints)
}

func TestWriter_SingleUse(t *testing.T) {
	w, err := NewWriter(1, time.Now())
	require.NoError(t, err)
	require.NoError(t, w.Add(time.Now().UnixMicro(), 5.0))

	_, err = w.Finish()
	require.NoError(t, err)

	require.ErrorIs(t, w.Add(time.Now().UnixMicro(), 5.0), errs.ErrInvalidSnapshot)
	_, err = w.Finish()
	require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
}

func TestWriter_InvalidOptions(t *testing.T) {
	_, err := NewWriter(1, time.Now(), WithCompression(format.CompressionType(0x7)))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)

	_, err = NewWriter(1, time.Now(), WithTimestampEncoding(format.EncodingType(0x3)))
	require.ErrorIs(t, err, errs.ErrUnknownEncoding)
}
