package encode

// repeatCache memoizes the immediately previous (raw value, scalar) pair of a
// stream. It holds at most one entry and is overwritten on every miss.
//
// A hit means the stream produced the same value twice in a row; the cached
// scalar is returned and the probability model is left untouched, so repeated
// identical values contribute no new evidence. The model's adaptation rate
// therefore depends on how often consecutive values differ, not on the total
// value count.
type repeatCache struct {
	raw    string
	scalar float64
	valid  bool
}

// lookup returns the cached scalar when raw is byte-identical to the
// previously stored value.
func (c *repeatCache) lookup(raw string) (float64, bool) {
	if !c.valid || c.raw != raw {
		return 0, false
	}

	return c.scalar, true
}

// store overwrites the single slot unconditionally.
func (c *repeatCache) store(raw string, scalar float64) {
	c.raw = raw
	c.scalar = scalar
	c.valid = true
}
