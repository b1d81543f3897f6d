// Package seed resolves the seed used by colour generators.
// A fixed seed makes a session's sequence of generated colours reproducible.
package seed

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	mathrand "math/rand/v2"
	"slices"
	"time"
)

// Mode determines how the generator seed is chosen.
type Mode string

const (
	// ModeRandom uses a non-deterministic seed (default, varies each run).
	ModeRandom Mode = "random"
	// ModeManual uses a user-provided seed value.
	ModeManual Mode = "manual"
	// ModeFragment derives the seed from the starting fragment, so opening
	// the same shared palette regenerates the same colours.
	ModeFragment Mode = "fragment"
)

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode   // Seed mode
	Value *int64 // Seed value (only used when Mode is ModeManual)
}

// Calculate determines the seed value based on the seed mode.
// fragment is only read for ModeFragment.
func Calculate(fragment string, config Config) (uint64, error) {
	switch config.Mode {
	case ModeRandom, "":
		return GenerateRandomSeed(), nil
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return uint64(*config.Value), nil // #nosec G115 -- sign is irrelevant for a seed
	case ModeFragment:
		return FragmentSeed(fragment), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// FragmentSeed hashes a fragment string into a seed.
func FragmentSeed(fragment string) uint64 {
	hash := sha256.Sum256([]byte(fragment))
	return binary.LittleEndian.Uint64(hash[:8])
}

// GenerateRandomSeed generates a non-deterministic random seed.
func GenerateRandomSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano()) // #nosec G115 -- fallback only
	}
	return binary.LittleEndian.Uint64(b[:])
}

// NewRand returns a ChaCha8 backed generator for seed.
func NewRand(seed uint64) *mathrand.Rand {
	var seedArray [32]byte
	binary.LittleEndian.PutUint64(seedArray[:8], seed)
	// #nosec G404 -- colours only need to look random, not be secret
	return mathrand.New(mathrand.NewChaCha8(seedArray))
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeRandom, ModeManual, ModeFragment}
}

// ParseMode converts a string to a Mode.
// Returns an error if the string is not a valid mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: random, manual, fragment)", s)
}
