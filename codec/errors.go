// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrMaxSeedLength  = errors.New("seed exceeds max length")
	ErrTooManySeeds   = errors.New("too many seeds")
	ErrInvalidSeeds   = errors.New("provided seeds do not result in a valid address")
)
