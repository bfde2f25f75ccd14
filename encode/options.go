package encode

import (
	"fmt"

	"github.com/driftlab/cookietrail/internal/options"
)

// DefaultScale is the factor applied to the final interval midpoint. The
// reference output multiplies by 10 so scalars occupy a readable [0, 10]
// range on a chart.
const DefaultScale = 10.0

// StreamEncoderOption configures a StreamEncoder.
type StreamEncoderOption = options.Option[*StreamEncoder]

// WithScale replaces the presentation scale factor. The scale carries no
// algorithmic meaning; change it only when byte-identical output against
// prior runs is not required.
func WithScale(scale float64) StreamEncoderOption {
	return options.New(func(e *StreamEncoder) error {
		if scale <= 0 {
			return fmt.Errorf("scale must be positive, got %v", scale)
		}
		e.scale = scale

		return nil
	})
}

// WithFlip controls the 1-x flip of the interval midpoint. The flip is a
// charting convenience: raw arithmetic-coding output decreases as values
// "increase", so flipping makes growing cookie values trend upward.
func WithFlip(flip bool) StreamEncoderOption {
	return options.NoError(func(e *StreamEncoder) {
		e.flip = flip
	})
}

// WithDegeneracyHandler installs a callback for degenerate encodings (interval
// underflow or clamped scalar). The stream keeps running either way; the
// handler exists so callers can log or count these events.
func WithDegeneracyHandler(handler DegeneracyHandler) StreamEncoderOption {
	return options.NoError(func(e *StreamEncoder) {
		e.onDegeneracy = handler
	})
}

func applyStreamOptions(e *StreamEncoder, opts ...StreamEncoderOption) error {
	return options.Apply(e, opts...)
}
