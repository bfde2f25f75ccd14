// Package registry tracks the cookie names observed during a collection run
// and the 64-bit stream IDs derived from them.
package registry

import (
	"github.com/driftlab/cookietrail/errs"
	"github.com/driftlab/cookietrail/internal/hash"
)

// Registry maps stream IDs back to the cookie names that produced them.
//
// The same cookie name is tracked once per request cycle, so repeated Track
// calls with a known name are the common case and simply return the existing
// ID. Two distinct names hashing to the same ID is a collision; the caller is
// expected to fall back to name-keyed handling for the affected streams.
//
// Registry is not safe for concurrent use; the collector tracks names from a
// single goroutine.
type Registry struct {
	names   map[uint64]string
	ordered []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{names: make(map[uint64]string)}
}

// Track registers a cookie name and returns its stream ID.
//
// Tracking a name that is already registered returns the existing ID.
// An empty name returns errs.ErrInvalidStreamName. A distinct name whose
// hash is already taken returns errs.ErrStreamCollision.
func (r *Registry) Track(name string) (uint64, error) {
	if name == "" {
		return 0, errs.ErrInvalidStreamName
	}

	id := hash.StreamID(name)
	existing, ok := r.names[id]
	if ok {
		if existing != name {
			return 0, errs.ErrStreamCollision
		}

		return id, nil
	}

	r.names[id] = name
	r.ordered = append(r.ordered, name)

	return id, nil
}

// Names returns the tracked cookie names in first-seen order.
func (r *Registry) Names() []string {
	return r.ordered
}

// Count returns the number of distinct tracked names.
func (r *Registry) Count() int {
	return len(r.ordered)
}
