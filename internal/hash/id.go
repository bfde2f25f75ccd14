// Package hash derives 64-bit stream identifiers from cookie names.
package hash

import "github.com/cespare/xxhash/v2"

// StreamID computes the xxHash64 of the given cookie name.
//
// The hash keys per-stream state (encoders, trace snapshots) without carrying
// the name itself. Distinct names may collide; callers that need to detect
// collisions should track name-to-ID pairs via the registry package.
func StreamID(name string) uint64 {
	return xxhash.Sum64String(name)
}
