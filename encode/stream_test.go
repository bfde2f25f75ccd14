package encode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlab/cookietrail/errs"
)

func TestStreamEncoder_SingleByteScenario(t *testing.T) {
	// First-ever value "aaa": 'a' maps to (0, 1), the interval never narrows,
	// and the scalar is (1 - 0.5) * 10 = 5.0 exactly.
	enc, err := NewStreamEncoder()
	require.NoError(t, err)

	scalar, err := enc.EncodeNext("aaa")
	require.NoError(t, err)
	require.Equal(t, 5.0, scalar)
}

func TestStreamEncoder_TwoByteScenario(t *testing.T) {
	// First-ever value "ab": after narrowing, start=0.25 and size=0.25, so the
	// scalar is (1 - 0.375) * 10 = 6.25 exactly.
	enc, err := NewStreamEncoder()
	require.NoError(t, err)

	scalar, err := enc.EncodeNext("ab")
	require.NoError(t, err)
	require.Equal(t, 6.25, scalar)
}

func TestStreamEncoder_Determinism(t *testing.T) {
	values := []string{"abc123", "abc124", "abc124", "zzz", "abc123", "q"}

	first, err := NewStreamEncoder()
	require.NoError(t, err)
	second, err := NewStreamEncoder()
	require.NoError(t, err)

	got1, err := first.EncodeAll(values)
	require.NoError(t, err)
	got2, err := second.EncodeAll(values)
	require.NoError(t, err)

	// Bit-identical, not merely close.
	require.Equal(t, got1, got2)
}

func TestStreamEncoder_RepeatShortCircuit(t *testing.T) {
	enc, err := NewStreamEncoder()
	require.NoError(t, err)

	first, err := enc.EncodeNext("token-a1")
	require.NoError(t, err)
	modelAfterFirst := enc.Model().Intervals()

	second, err := enc.EncodeNext("token-a1")
	require.NoError(t, err)

	require.Equal(t, first, second)
	// A repeat contributes no new evidence: the model must be untouched.
	require.Equal(t, modelAfterFirst, enc.Model().Intervals())
}

func TestStreamEncoder_RepeatCacheOnlyHoldsPrevious(t *testing.T) {
	enc, err := NewStreamEncoder()
	require.NoError(t, err)

	first, err := enc.EncodeNext("v1")
	require.NoError(t, err)
	_, err = enc.EncodeNext("v2")
	require.NoError(t, err)

	// "v1" again is not the immediately previous value, so it re-encodes
	// against the evolved model and the scalar may differ from the first one.
	again, err := enc.EncodeNext("v1")
	require.NoError(t, err)
	require.NotEqual(t, first, again)
}

func TestStreamEncoder_RangeBound(t *testing.T) {
	enc, err := NewStreamEncoder()
	require.NoError(t, err)

	values := []string{
		"a",
		"sessionid=29af",
		strings.Repeat("xyz", 50),
		"0123456789abcdef",
		strings.Repeat("ab", 2000),
	}
	for _, value := range values {
		scalar, err := enc.EncodeNext(value)
		require.NoError(t, err)
		require.GreaterOrEqual(t, scalar, 0.0, "value %q", value)
		require.LessOrEqual(t, scalar, 10.0, "value %q", value)
	}
}

func TestStreamEncoder_FirstCallOrderIndependent(t *testing.T) {
	// The model before the first call is always empty, so the first scalar of
	// a stream does not depend on what other streams have seen.
	long, err := NewStreamEncoder()
	require.NoError(t, err)
	_, err = long.EncodeAll([]string{"ab", "ac"})
	require.NoError(t, err)

	fresh, err := NewStreamEncoder()
	require.NoError(t, err)
	scalar, err := fresh.EncodeNext("ab")
	require.NoError(t, err)
	require.Equal(t, 6.25, scalar)
}

func TestStreamEncoder_EncodeAllMatchesEncodeNext(t *testing.T) {
	values := []string{"aa", "ab", "ab", "ba", "ca"}

	batch, err := NewStreamEncoder()
	require.NoError(t, err)
	batched, err := batch.EncodeAll(values)
	require.NoError(t, err)
	require.Len(t, batched, len(values))

	single, err := NewStreamEncoder()
	require.NoError(t, err)
	for i, value := range values {
		scalar, err := single.EncodeNext(value)
		require.NoError(t, err)
		require.Equal(t, batched[i], scalar)
	}
}

func TestStreamEncoder_EmptyValue(t *testing.T) {
	enc, err := NewStreamEncoder()
	require.NoError(t, err)

	_, err = enc.EncodeNext("")
	require.ErrorIs(t, err, errs.ErrEmptyValue)

	_, err = enc.EncodeAll([]string{"ok", ""})
	require.ErrorIs(t, err, errs.ErrEmptyValue)
}

func TestStreamEncoder_UnderflowDegeneracy(t *testing.T) {
	// Each byte of an {a, b} value halves the interval size, so a 4000-byte
	// value drives size below the smallest positive float64 to exactly zero.
	// The stream must keep going: finite clamped scalar, handler notified.
	var degenerate []string
	enc, err := NewStreamEncoder(WithDegeneracyHandler(func(raw string, scalar float64) {
		degenerate = append(degenerate, raw)
		require.GreaterOrEqual(t, scalar, 0.0)
		require.LessOrEqual(t, scalar, 10.0)
	}))
	require.NoError(t, err)

	long := strings.Repeat("ab", 2000)
	scalar, err := enc.EncodeNext(long)
	require.NoError(t, err)
	require.False(t, scalar < 0 || scalar > 10)
	require.Equal(t, []string{long}, degenerate)
}

func TestStreamEncoder_WithScaleAndFlip(t *testing.T) {
	enc, err := NewStreamEncoder(WithScale(1), WithFlip(false))
	require.NoError(t, err)

	// Without flip and with unit scale the scalar is the interval midpoint.
	scalar, err := enc.EncodeNext("ab")
	require.NoError(t, err)
	require.Equal(t, 0.375, scalar)
}

func TestStreamEncoder_InvalidScale(t *testing.T) {
	_, err := NewStreamEncoder(WithScale(0))
	require.Error(t, err)

	_, err = NewStreamEncoder(WithScale(-2))
	require.Error(t, err)
}

func TestStreamEncoder_IndependentStreams(t *testing.T) {
	// Two streams never share model or cache state.
	one, err := NewStreamEncoder()
	require.NoError(t, err)
	two, err := NewStreamEncoder()
	require.NoError(t, err)

	_, err = one.EncodeAll([]string{"abcd", "dcba", "aabb"})
	require.NoError(t, err)

	scalar, err := two.EncodeNext("ab")
	require.NoError(t, err)
	require.Equal(t, 6.25, scalar)
}
