// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "github.com/zkarb/zkarbvm/consts"

// State
// 0x0/ (program accounts)
//   -> [address] => discriminator | borsh(account)
// 0x1/ (token accounts)
//   -> [mint|holder] => balance
// 0x2/ (mints)
//   -> [mint] => supply
// 0x3/ (native balances)
//   -> [address] => lamports
const (
	accountPrefix byte = iota
	tokenAccountPrefix
	mintPrefix
	lamportsPrefix
)

// Chunks
const (
	PoolChunks            uint16 = 2
	StakeRecordChunks     uint16 = 2
	LiquidityRecordChunks uint16 = 1
	BalanceChunks         uint16 = 1
)

// Persisted sizes, discriminator excluded.
const (
	PoolSize            = consts.IDLen + 4*consts.Uint64Len + 3*consts.ByteLen
	StakeRecordSize     = consts.IDLen + consts.Uint64Len + 2*consts.Int64Len
	LiquidityRecordSize = consts.IDLen + consts.Uint64Len + consts.BoolLen
)

// Record seeds
var (
	stakeSeed     = []byte("stake")
	liquiditySeed = []byte("lp")
)
