package encode

import (
	"fmt"

	"github.com/driftlab/cookietrail/errs"
)

// Interval is a character's cumulative probability range within [0, 1].
type Interval struct {
	Lo float64
	Hi float64
}

// Span returns the width of the interval.
func (iv Interval) Span() float64 {
	return iv.Hi - iv.Lo
}

// valid reports whether the interval respects the model invariants:
// bounds inside [0, 1] and a strictly positive span.
func (iv Interval) valid() bool {
	return iv.Lo >= 0 && iv.Hi <= 1 && iv.Lo < iv.Hi
}

// ProbabilityModel maps each observed byte to its current cumulative
// probability interval. The model is mutated in place on every new value and
// carries structure learned from the whole history of the stream: when a byte
// reappears, its historical interval is nested inside the slot the byte
// occupies in the newest value's partition.
//
// A ProbabilityModel is exclusively owned by one StreamEncoder and must never
// be shared across streams.
type ProbabilityModel struct {
	intervals map[byte]Interval
}

// NewProbabilityModel creates an empty model.
func NewProbabilityModel() *ProbabilityModel {
	return &ProbabilityModel{intervals: make(map[byte]Interval)}
}

// Update merges one raw value into the model.
//
// The value's distinct bytes, taken in first-appearance order, partition
// [0, 1] proportionally to their frequency within the value. A byte new to
// the model takes its slot directly; a byte already known has its previous
// interval rescaled into the new slot, preserving the nesting built up by
// earlier values. Bytes absent from this value keep their prior intervals
// unchanged.
//
// Returns errs.ErrEmptyValue for an empty input: the frequency computation
// divides by the value length.
func (m *ProbabilityModel) Update(value string) error {
	if len(value) == 0 {
		return fmt.Errorf("%w: cannot update model", errs.ErrEmptyValue)
	}

	// Count byte occurrences, remembering first-appearance order so the
	// per-value partition is deterministic.
	var order []byte
	counts := make(map[byte]int, 16)
	for i := 0; i < len(value); i++ {
		c := value[i]
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}

	total := float64(len(value))
	start := 0.0
	for _, c := range order {
		end := start + float64(counts[c])/total

		if old, ok := m.intervals[c]; ok {
			span := end - start
			m.intervals[c] = Interval{
				Lo: start + old.Lo*span,
				Hi: start + old.Hi*span,
			}
		} else {
			m.intervals[c] = Interval{Lo: start, Hi: end}
		}

		start = end
	}

	return nil
}

// Lookup returns the interval currently assigned to byte c.
func (m *ProbabilityModel) Lookup(c byte) (Interval, bool) {
	iv, ok := m.intervals[c]
	return iv, ok
}

// Len returns the number of distinct bytes the model has seen.
func (m *ProbabilityModel) Len() int {
	return len(m.intervals)
}

// Intervals returns a copy of the model's byte-to-interval mapping.
func (m *ProbabilityModel) Intervals() map[byte]Interval {
	out := make(map[byte]Interval, len(m.intervals))
	for c, iv := range m.intervals {
		out[c] = iv
	}

	return out
}
