// Package cookietrail visualizes how HTTP cookie values drift over time.
//
// The tool samples a target URL repeatedly, records every cookie value it is
// handed, and collapses each opaque value into a single comparable scalar via
// an adaptive arithmetic-coding transform. Plotting the scalars over time
// makes value rotation patterns visible: a session token that changes every
// request draws a scattered cloud, a sticky tracking ID draws a flat line.
//
// # Core Encoding
//
// Each cookie name is an independent stream with its own probability model
// and repeat cache:
//
//	enc, _ := cookietrail.NewStreamEncoder()
//	for _, value := range observedValues {
//	    scalar, err := enc.EncodeNext(value)
//	    ...
//	}
//
// The scalar is a one-way fingerprint in [0, 10]; there is no decoder. See
// the encode package for the model and transform details.
//
// # Package Structure
//
// This package provides thin wrappers around the most common entry points.
// The pipeline packages are used directly by cmd/cookietrail:
//
//   - collect: HTTP sampling of cookie values into per-cookie CSV files
//   - encode: the scalar-encoding engine (the core)
//   - runner: parallel per-stream encode + annotate + chart + snapshot
//   - chart: scatter plot rendering
//   - trace: binary retention format for encoded series
package cookietrail

import (
	"github.com/driftlab/cookietrail/encode"
	"github.com/driftlab/cookietrail/internal/hash"
)

// StreamID computes the 64-bit identifier of a cookie stream from its name.
func StreamID(name string) uint64 {
	return hash.StreamID(name)
}

// NewStreamEncoder creates an encoder for one fresh value stream.
//
// Never share an encoder between streams: the probability model adapts to the
// values it sees, and cross-stream sharing would corrupt both fingerprint
// series.
func NewStreamEncoder(opts ...encode.StreamEncoderOption) (*encode.StreamEncoder, error) {
	return encode.NewStreamEncoder(opts...)
}

// EncodeSeries encodes an ordered batch of raw values against a fresh stream,
// returning one scalar per value. It is shorthand for NewStreamEncoder
// followed by EncodeAll.
func EncodeSeries(values []string, opts ...encode.StreamEncoderOption) ([]float64, error) {
	enc, err := encode.NewStreamEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.EncodeAll(values)
}
