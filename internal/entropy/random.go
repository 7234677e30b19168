// Package entropy provides crypto-grade seed material for runs that
// should not repeat, while keeping seeded runs reproducible.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
)

// Seed returns a non-deterministic int64 suitable for seeding
// math/rand generators. Each call returns fresh entropy.
func Seed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing means the platform is broken; a fixed
		// seed at least keeps the process running.
		return 1
	}
	n := int64(binary.LittleEndian.Uint64(buf[:]))
	if n < 0 {
		n = -n
	}
	return n
}

// CryptoFloat returns a uniform random float64 in [0, 1) from
// crypto/rand. Used for one-off rolls outside any seeded stream.
func CryptoFloat() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}
