// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/consts"
	"github.com/zkarb/zkarbvm/state"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/vault"
)

var _ chain.Action = (*RemoveLiquidity)(nil)

// RemoveLiquidity returns [Amount] from the liquidity vault to the owner of
// [Record]. Approval is not required.
type RemoveLiquidity struct {
	Record codec.Address `json:"record"`
	Amount uint64        `json:"amount"`
}

func (*RemoveLiquidity) GetTypeID() uint8 {
	return consts.RemoveLiquidityID
}

func (r *RemoveLiquidity) StateKeys(actor codec.Address, rules chain.Rules) (state.Keys, error) {
	vaultKey, err := vaultTokenKey(rules, vault.Liquidity)
	if err != nil {
		return nil, err
	}
	return state.Keys{
		poolKey(rules): state.Write,
		string(storage.LiquidityRecordKey(r.Record)): state.Write,
		userTokenKey(rules, actor):                   state.Write,
		vaultKey:                                     state.Write,
	}, nil
}

func (r *RemoveLiquidity) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
) error {
	pool, err := loadPool(ctx, rt, mu, actor)
	if err != nil {
		return err
	}
	record, exists, err := storage.GetLiquidityRecord(ctx, mu, r.Record)
	if err != nil {
		return err
	}
	if !exists {
		return missingRecord(r.Record)
	}
	if record.Owner != actor {
		return ErrUnauthorized
	}
	if record.Amount < r.Amount {
		return ErrInsufficientLiquidity
	}

	if record.Amount, err = sub(record.Amount, r.Amount); err != nil {
		return err
	}
	if pool.TotalLiquidity, err = sub(pool.TotalLiquidity, r.Amount); err != nil {
		return err
	}
	rules := rt.Rules()
	if err := storage.SetLiquidityRecord(ctx, mu, r.Record, record); err != nil {
		return err
	}
	if err := storage.SetPool(ctx, mu, rules.GetPoolAddress(), pool); err != nil {
		return err
	}

	liquidity, err := vaultAuthority(rules, pool, vault.Liquidity)
	if err != nil {
		return err
	}
	if err := rt.Tokens().Transfer(ctx, mu, rules.GetTokenMint(), liquidity.Key(), actor, liquidity, r.Amount); err != nil {
		return err
	}
	rt.Emit(&LiquidityRemoved{LiquidityProvider: actor, Amount: r.Amount})
	return nil
}
