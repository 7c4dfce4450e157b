// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/vault"
)

type VM interface {
	Logger() logging.Logger
	Rules() chain.Rules
	Vaults() ([]vault.Binding, error)
	Pool(ctx context.Context) (*storage.Pool, error)
	StakeRecord(ctx context.Context, owner codec.Address) (codec.Address, *storage.StakeRecord, bool, error)
	LiquidityRecord(ctx context.Context, owner codec.Address) (codec.Address, *storage.LiquidityRecord, bool, error)
	TokenBalance(ctx context.Context, holder codec.Address) (uint64, bool, error)
	Lamports(ctx context.Context, holder codec.Address) (uint64, bool, error)
	MintSupply(ctx context.Context) (uint64, error)
	Events() []*chain.EventRecord
}
