// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	ByteLen   = 1
	BoolLen   = 1
	Uint16Len = 2
	Uint64Len = 8
	Int64Len  = 8
	IDLen     = 32
	MaxUint16 = ^uint16(0)
	MaxUint64 = ^uint64(0)
	MaxInt64  = int64(MaxUint64 >> 1)

	// DiscriminatorLen is the length of the type tag that prefixes every
	// persisted account and every emitted event.
	DiscriminatorLen = 8
)
