// Package random provides seed generation and seeded source helpers.
//
// Every roller owns its source; nothing here touches the global math/rand
// state, so two balancers built from the same seed replay identically.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a source seeded with seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ResolveSeed returns seed when it is non-zero, otherwise a fresh one from
// generate. Zero means "no seed requested" on the command line.
func ResolveSeed(seed int64, generate func() (int64, error)) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	if generate == nil {
		generate = NewSeed
	}
	return generate()
}
