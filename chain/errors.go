// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrMissingSigner     = errors.New("missing signer")
	ErrDerivedSigner     = errors.New("derived address cannot sign")
	ErrInvalidStateKey   = errors.New("invalid state key")
	ErrNilAction         = errors.New("nil action")
	ErrProcessorShutdown = errors.New("processor shut down")
)
