// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"errors"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/vault"
)

func (vm *VM) Pool(ctx context.Context) (*storage.Pool, error) {
	pool, err := storage.GetPool(ctx, vm.db, vm.rules.GetPoolAddress())
	if errors.Is(err, storage.ErrPoolNotFound) {
		return nil, ErrPoolNotInitialized
	}
	return pool, err
}

// StakeRecord returns the stake record of [owner], if any.
func (vm *VM) StakeRecord(ctx context.Context, owner codec.Address) (codec.Address, *storage.StakeRecord, bool, error) {
	addr, err := storage.StakeRecordAddress(vm.rules.GetProgramID(), owner)
	if err != nil {
		return codec.EmptyAddress, nil, false, err
	}
	record, exists, err := storage.GetStakeRecord(ctx, vm.db, addr)
	return addr, record, exists, err
}

// LiquidityRecord returns the liquidity provider record of [owner], if any.
func (vm *VM) LiquidityRecord(ctx context.Context, owner codec.Address) (codec.Address, *storage.LiquidityRecord, bool, error) {
	addr, err := storage.LiquidityRecordAddress(vm.rules.GetProgramID(), owner)
	if err != nil {
		return codec.EmptyAddress, nil, false, err
	}
	record, exists, err := storage.GetLiquidityRecord(ctx, vm.db, addr)
	return addr, record, exists, err
}

func (vm *VM) TokenBalance(ctx context.Context, holder codec.Address) (uint64, bool, error) {
	return storage.GetTokenBalance(ctx, vm.db, vm.rules.GetTokenMint(), holder)
}

func (vm *VM) Lamports(ctx context.Context, holder codec.Address) (uint64, bool, error) {
	return storage.GetLamports(ctx, vm.db, holder)
}

func (vm *VM) MintSupply(ctx context.Context) (uint64, error) {
	supply, _, err := storage.GetMintSupply(ctx, vm.db, vm.rules.GetTokenMint())
	return supply, err
}

// Vaults lists the canonical vault bindings of the pool.
func (vm *VM) Vaults() ([]vault.Binding, error) {
	return vault.DeriveAll(vm.rules.GetProgramID(), vm.rules.GetPoolAddress())
}
