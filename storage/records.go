// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/state"
)

const (
	stakeAccountName     = "StakeAccount"
	liquidityAccountName = "LiquidityProvider"
)

// StakeRecord tracks the stake of a single owner. It is never deleted.
type StakeRecord struct {
	Owner       codec.Address `json:"owner"`
	Amount      uint64        `json:"amount"`
	StakedAt    int64         `json:"stakedAt"`
	LockupUntil int64         `json:"lockupUntil"`
}

// LiquidityRecord tracks the liquidity of a single provider. It is never
// deleted.
type LiquidityRecord struct {
	Owner    codec.Address `json:"owner"`
	Amount   uint64        `json:"amount"`
	Approved bool          `json:"approved"`
}

// StakeRecordAddress derives the record address of [owner].
func StakeRecordAddress(program codec.Address, owner codec.Address) (codec.Address, error) {
	addr, _, err := codec.FindProgramAddress([][]byte{stakeSeed, owner[:]}, program)
	return addr, err
}

// LiquidityRecordAddress derives the record address of [owner].
func LiquidityRecordAddress(program codec.Address, owner codec.Address) (codec.Address, error) {
	addr, _, err := codec.FindProgramAddress([][]byte{liquiditySeed, owner[:]}, program)
	return addr, err
}

func StakeRecordKey(record codec.Address) []byte {
	return accountKey(record, StakeRecordChunks)
}

func LiquidityRecordKey(record codec.Address) []byte {
	return accountKey(record, LiquidityRecordChunks)
}

// GetStakeRecord returns false if the record was never allocated.
func GetStakeRecord(ctx context.Context, im state.Immutable, record codec.Address) (*StakeRecord, bool, error) {
	r := &StakeRecord{}
	exists, err := getAccount(ctx, im, StakeRecordKey(record), stakeAccountName, StakeRecordSize, r)
	if err != nil || !exists {
		return nil, false, err
	}
	return r, true, nil
}

func SetStakeRecord(ctx context.Context, mu state.Mutable, record codec.Address, r *StakeRecord) error {
	return setAccount(ctx, mu, StakeRecordKey(record), stakeAccountName, r)
}

// GetLiquidityRecord returns false if the record was never allocated.
func GetLiquidityRecord(ctx context.Context, im state.Immutable, record codec.Address) (*LiquidityRecord, bool, error) {
	r := &LiquidityRecord{}
	exists, err := getAccount(ctx, im, LiquidityRecordKey(record), liquidityAccountName, LiquidityRecordSize, r)
	if err != nil || !exists {
		return nil, false, err
	}
	return r, true, nil
}

func SetLiquidityRecord(ctx context.Context, mu state.Mutable, record codec.Address, r *LiquidityRecord) error {
	return setAccount(ctx, mu, LiquidityRecordKey(record), liquidityAccountName, r)
}
