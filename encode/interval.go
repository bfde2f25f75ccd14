package encode

import (
	"fmt"

	"github.com/driftlab/cookietrail/errs"
)

// narrow runs the arithmetic-coding interval narrowing for value against the
// model, which must already contain intervals for every byte of value (the
// caller updates the model with the same value first).
//
// Starting from [0, 1), every byte of the value, repeats included, shrinks
// the working interval into the byte's sub-range. The interval size is a
// product of factors in (0, 1), so it strictly decreases and may underflow to
// exactly 0.0 for long values; that is tolerated here and handled by the
// caller as a degenerate result.
func narrow(value string, model *ProbabilityModel) (start, size float64, err error) {
	size = 1.0
	for i := 0; i < len(value); i++ {
		c := value[i]
		iv, ok := model.Lookup(c)
		if !ok {
			return 0, 0, fmt.Errorf("%w: no interval for byte 0x%02x", errs.ErrCorruptModel, c)
		}
		if !iv.valid() {
			return 0, 0, fmt.Errorf("%w: byte 0x%02x has interval [%v, %v]",
				errs.ErrCorruptModel, c, iv.Lo, iv.Hi)
		}

		start += size * iv.Lo
		size *= iv.Span()
	}

	return start, size, nil
}
