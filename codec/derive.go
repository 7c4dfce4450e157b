// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
)

const (
	MaxSeeds      = 16
	MaxSeedLength = 32

	derivationMarker = "ProgramDerivedAddress"
)

// CreateProgramAddress derives an address from [seeds] bound to [program].
//
// A derived address must not be a valid ed25519 point, otherwise someone
// could hold a private key for it. When the hash of [seeds] lands on the
// curve [ErrInvalidSeeds] is returned and the caller is expected to try a
// different bump.
func CreateProgramAddress(seeds [][]byte, program Address) (Address, error) {
	if len(seeds) > MaxSeeds {
		return EmptyAddress, ErrTooManySeeds
	}
	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return EmptyAddress, ErrMaxSeedLength
		}
		_, _ = h.Write(seed)
	}
	_, _ = h.Write(program[:])
	_, _ = h.Write([]byte(derivationMarker))

	var a Address
	copy(a[:], h.Sum(nil))
	if IsOnCurve(a) {
		return EmptyAddress, ErrInvalidSeeds
	}
	return a, nil
}

// FindProgramAddress searches for the highest bump that, appended to
// [seeds], yields a valid derived address.
func FindProgramAddress(seeds [][]byte, program Address) (Address, uint8, error) {
	// One slot is reserved for the bump.
	if len(seeds) >= MaxSeeds {
		return EmptyAddress, 0, ErrTooManySeeds
	}
	bumped := make([][]byte, len(seeds)+1)
	copy(bumped, seeds)
	for bump := 255; bump > 0; bump-- {
		bumped[len(seeds)] = []byte{uint8(bump)}
		a, err := CreateProgramAddress(bumped, program)
		switch err {
		case nil:
			return a, uint8(bump), nil
		case ErrInvalidSeeds:
			continue
		default:
			return EmptyAddress, 0, err
		}
	}
	return EmptyAddress, 0, ErrInvalidSeeds
}

// IsOnCurve reports whether [a] is a valid ed25519 public key. Program
// derived addresses never are, so they have no private key.
func IsOnCurve(a Address) bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return err == nil
}
