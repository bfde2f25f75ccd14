// Package encode reduces a stream of opaque string values to scalar
// fingerprints suitable for plotting drift over time.
//
// Each stream owns an adaptive per-character probability model and a
// single-slot repeat cache. For every new raw value the model is updated with
// the value's character frequencies, then classic arithmetic-coding interval
// narrowing collapses the value into one finite float64. The transform is
// deliberately one-way: there is no decoder, and none is needed. The scalar
// only has to be a deterministic, comparable fingerprint of the value given
// the model state at the time of encoding.
//
// # Basic Usage
//
//	enc, _ := encode.NewStreamEncoder()
//	for _, raw := range samples {
//	    scalar, err := enc.EncodeNext(raw)
//	    if err != nil {
//	        return err
//	    }
//	    plot(scalar)
//	}
//
// Streams are fully independent: never share a StreamEncoder between two
// value streams, and never call one concurrently. Separate streams may be
// encoded in parallel without synchronization.
package encode
