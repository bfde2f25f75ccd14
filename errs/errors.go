// Package errs defines the sentinel errors shared across cookietrail packages.
//
// All errors are plain sentinels intended to be wrapped with fmt.Errorf and
// the %w verb at the call site, so callers can match them with errors.Is while
// still getting contextual messages.
package errs

import "errors"

// Encoding errors.
var (
	// ErrEmptyValue is returned when an empty raw value is passed to the
	// encoder. The probability update divides by the value length, so empty
	// input is rejected up front instead of producing a division fault.
	ErrEmptyValue = errors.New("empty raw value")

	// ErrCorruptModel is returned when the probability model holds an interval
	// that violates its invariants (bounds outside [0,1], lo >= hi, or a
	// missing entry for a character of the value just merged into the model).
	// This indicates a bug, not a recoverable runtime condition.
	ErrCorruptModel = errors.New("corrupt probability model")

	// ErrMismatchedSeries is returned when timestamps and raw values of a
	// series have different lengths.
	ErrMismatchedSeries = errors.New("mismatched series lengths")
)

// Stream registry errors.
var (
	// ErrInvalidStreamName is returned when an empty stream name is tracked.
	ErrInvalidStreamName = errors.New("invalid stream name")

	// ErrStreamCollision is returned when two distinct stream names hash to
	// the same 64-bit identifier.
	ErrStreamCollision = errors.New("stream ID collision")
)

// Trace snapshot errors.
var (
	// ErrInvalidMagicNumber is returned when snapshot data does not start with
	// the trace magic number.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrUnsupportedVersion is returned when a snapshot was written by a newer
	// format version than this reader understands.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")

	// ErrInvalidSnapshot is returned when snapshot data is truncated or its
	// payload does not decode to the declared point count.
	ErrInvalidSnapshot = errors.New("invalid snapshot data")

	// ErrUnknownCompression is returned when a snapshot declares a compression
	// type this build does not support.
	ErrUnknownCompression = errors.New("unknown compression type")

	// ErrUnknownEncoding is returned when a snapshot declares an unknown
	// timestamp encoding.
	ErrUnknownEncoding = errors.New("unknown timestamp encoding")

	// ErrNoDataPoints is returned when finishing a snapshot writer that has
	// no points added.
	ErrNoDataPoints = errors.New("no data points added")
)

// Collector and configuration errors.
var (
	// ErrMissingURL is returned when no target URL is configured.
	ErrMissingURL = errors.New("missing target URL")

	// ErrInvalidRequestCount is returned when a non-positive request count is
	// configured.
	ErrInvalidRequestCount = errors.New("invalid request count")

	// ErrInvalidPayload is returned when an authentication payload file cannot
	// be parsed as comma separated field/value lines.
	ErrInvalidPayload = errors.New("invalid payload file")
)
