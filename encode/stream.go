package encode

import (
	"math"

	"github.com/driftlab/cookietrail/errs"
)

// DegeneracyHandler is invoked when interval narrowing produced a degenerate
// result: the interval size underflowed to exactly zero, or the presentation
// transform yielded a non-finite or out-of-range scalar. The reported scalar
// is the clamped value that EncodeNext returns.
type DegeneracyHandler func(raw string, scalar float64)

// StreamEncoder turns one stream of raw values into scalar fingerprints.
//
// It owns exactly one ProbabilityModel and one repeat cache for the lifetime
// of the stream. Values must be passed in strict arrival order: the model's
// correctness depends on later updates nesting inside earlier structure.
//
// A StreamEncoder is not safe for concurrent use and must not be shared
// between streams. Independent streams get independent encoders and may run
// in parallel without synchronization.
type StreamEncoder struct {
	model *ProbabilityModel
	cache repeatCache

	// Presentation transform, applied to the final interval midpoint. The
	// defaults reproduce the reference output: flip so that lexicographically
	// "increasing" values trend upward on a chart, and scale to a
	// human-friendly [0, 10] range.
	scale float64
	flip  bool

	onDegeneracy DegeneracyHandler
}

// NewStreamEncoder creates an encoder for a fresh stream.
//
// With no options the scalar for a value lies in [0, 10] and equals
// (1 - midpoint) * 10, where midpoint is the center of the final narrowed
// interval.
func NewStreamEncoder(opts ...StreamEncoderOption) (*StreamEncoder, error) {
	enc := &StreamEncoder{
		model: NewProbabilityModel(),
		scale: DefaultScale,
		flip:  true,
	}

	if err := applyStreamOptions(enc, opts...); err != nil {
		return nil, err
	}

	return enc, nil
}

// EncodeNext encodes the next raw value of the stream.
//
// If raw is byte-identical to the immediately previous value, the cached
// scalar is returned and the model is not touched. Otherwise the model is
// updated with raw, the value is narrowed against the updated model, and the
// resulting scalar is cached and returned.
//
// Returns errs.ErrEmptyValue for empty input and errs.ErrCorruptModel if the
// model state violates its invariants (a bug, fatal for this stream). Both
// leave other streams unaffected.
func (e *StreamEncoder) EncodeNext(raw string) (float64, error) {
	if raw == "" {
		return 0, errs.ErrEmptyValue
	}

	if scalar, ok := e.cache.lookup(raw); ok {
		return scalar, nil
	}

	if err := e.model.Update(raw); err != nil {
		return 0, err
	}

	start, size, err := narrow(raw, e.model)
	if err != nil {
		return 0, err
	}

	scalar := e.finalize(raw, start, size)
	e.cache.store(raw, scalar)

	return scalar, nil
}

// EncodeAll encodes an ordered batch of raw values, equivalent to calling
// EncodeNext for each in order. On error the already-encoded prefix is
// discarded and the model keeps the state it had when the error occurred.
func (e *StreamEncoder) EncodeAll(raws []string) ([]float64, error) {
	scalars := make([]float64, 0, len(raws))
	for _, raw := range raws {
		scalar, err := e.EncodeNext(raw)
		if err != nil {
			return nil, err
		}
		scalars = append(scalars, scalar)
	}

	return scalars, nil
}

// Model exposes the stream's probability model for inspection.
func (e *StreamEncoder) Model() *ProbabilityModel {
	return e.model
}

// finalize maps the final narrowed interval to the presentation scalar and
// clamps degenerate results to the [0, scale] boundary instead of letting a
// NaN or infinity escape into the series.
func (e *StreamEncoder) finalize(raw string, start, size float64) float64 {
	mid := start + 0.5*size
	scalar := mid
	if e.flip {
		scalar = 1 - mid
	}
	scalar *= e.scale

	degenerate := size == 0
	switch {
	case math.IsNaN(scalar):
		scalar, degenerate = 0, true
	case scalar < 0:
		scalar, degenerate = 0, true
	case scalar > e.scale:
		scalar, degenerate = e.scale, true
	}

	if degenerate && e.onDegeneracy != nil {
		e.onDegeneracy(raw, scalar)
	}

	return scalar
}
