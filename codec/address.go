// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/zkarb/zkarbvm/consts"
)

const AddressLen = consts.IDLen

// Address is the 32 byte identity of an account. Addresses are rendered in
// base58, the same way the execution environment renders public keys.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// ToAddress copies [b] into an [Address]. [b] must be exactly [AddressLen]
// bytes.
func ToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLen {
		return a, fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidAddress, AddressLen, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// ParseAddress decodes a base58 encoded address.
func ParseAddress(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return EmptyAddress, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return ToAddress(b)
}

// MustParseAddress is like [ParseAddress] but panics on malformed input. It
// is only meant for constants.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// MarshalText returns the base58 representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a base58 encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := ParseAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
