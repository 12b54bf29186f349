// Package hash wraps xxHash64 for table fingerprints and column-name keys.
package hash

import "github.com/cespare/xxhash/v2"

// Digest is a streaming xxHash64 state. It implements io.Writer.
type Digest = xxhash.Digest

// New returns a fresh streaming digest.
func New() *Digest {
	return xxhash.New()
}

// String computes the xxHash64 of s.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}
