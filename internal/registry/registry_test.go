package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlab/cookietrail/errs"
	"github.com/driftlab/cookietrail/internal/hash"
)

func TestRegistry_TrackNew(t *testing.T) {
	reg := New()

	id, err := reg.Track("sessionid")
	require.NoError(t, err)
	require.Equal(t, hash.StreamID("sessionid"), id)
	require.Equal(t, 1, reg.Count())
	require.Equal(t, []string{"sessionid"}, reg.Names())
}

func TestRegistry_TrackRepeated(t *testing.T) {
	reg := New()

	first, err := reg.Track("sessionid")
	require.NoError(t, err)

	// The same cookie shows up on every request cycle; tracking it again is
	// not an error and yields the same ID.
	again, err := reg.Track("sessionid")
	require.NoError(t, err)
	require.Equal(t, first, again)
	require.Equal(t, 1, reg.Count())
}

func TestRegistry_TrackOrder(t *testing.T) {
	reg := New()

	for _, name := range []string{"csrftoken", "sessionid", "csrftoken", "theme"} {
		_, err := reg.Track(name)
		require.NoError(t, err)
	}

	require.Equal(t, []string{"csrftoken", "sessionid", "theme"}, reg.Names())
}

func TestRegistry_EmptyName(t *testing.T) {
	reg := New()

	_, err := reg.Track("")
	require.ErrorIs(t, err, errs.ErrInvalidStreamName)
	require.Zero(t, reg.Count())
}
