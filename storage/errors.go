// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrPoolNotFound          = errors.New("pool not found")
	ErrRecordNotFound        = errors.New("record not found")
	ErrInvalidDiscriminator  = errors.New("account discriminator did not match")
	ErrInvalidAccountData    = errors.New("invalid account data")
	ErrAccountAlreadyInUse   = errors.New("account already in use")
	ErrTokenAccountNotFound  = errors.New("token account not found")
	ErrMintNotFound          = errors.New("mint not found")
	ErrNativeAccountNotFound = errors.New("native account not found")
)
