// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/state"
)

const poolAccountName = "Pool"

// Pool is the singleton ledger of a deployment. Field order and width are
// the persisted layout and must not change.
type Pool struct {
	Admin                codec.Address `json:"admin"`
	TotalStaked          uint64        `json:"totalStaked"`
	TotalLiquidity       uint64        `json:"totalLiquidity"`
	AccumulatedFeeTokens uint64        `json:"accumulatedFeeTokens"`
	DynamicFeeMultiplier uint64        `json:"dynamicFeeMultiplier"`
	StakingVaultBump     uint8         `json:"stakingVaultBump"`
	LiquidityVaultBump   uint8         `json:"liquidityVaultBump"`
	FeeVaultBump         uint8         `json:"feeVaultBump"`
}

func PoolKey(pool codec.Address) []byte {
	return accountKey(pool, PoolChunks)
}

// GetPool returns [ErrPoolNotFound] if [pool] was never initialized.
func GetPool(ctx context.Context, im state.Immutable, pool codec.Address) (*Pool, error) {
	p := &Pool{}
	exists, err := getAccount(ctx, im, PoolKey(pool), poolAccountName, PoolSize, p)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPoolNotFound
	}
	return p, nil
}

// PoolExists is used to refuse a second initialization.
func PoolExists(ctx context.Context, im state.Immutable, pool codec.Address) (bool, error) {
	_, err := GetPool(ctx, im, pool)
	switch err {
	case nil:
		return true, nil
	case ErrPoolNotFound:
		return false, nil
	default:
		return false, err
	}
}

func SetPool(ctx context.Context, mu state.Mutable, pool codec.Address, p *Pool) error {
	return setAccount(ctx, mu, PoolKey(pool), poolAccountName, p)
}
