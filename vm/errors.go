// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import "errors"

var (
	ErrPoolNotInitialized = errors.New("pool not initialized")
	ErrClosed             = errors.New("vm closed")
)
