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

var _ chain.Action = (*AddLiquidity)(nil)

// AddLiquidity moves [Amount] from the caller into the liquidity vault. A
// first deposit creates an unapproved record.
type AddLiquidity struct {
	Amount uint64 `json:"amount"`
}

func (*AddLiquidity) GetTypeID() uint8 {
	return consts.AddLiquidityID
}

func (*AddLiquidity) StateKeys(actor codec.Address, rules chain.Rules) (state.Keys, error) {
	record, err := storage.LiquidityRecordAddress(rules.GetProgramID(), actor)
	if err != nil {
		return nil, err
	}
	vaultKey, err := vaultTokenKey(rules, vault.Liquidity)
	if err != nil {
		return nil, err
	}
	return state.Keys{
		poolKey(rules): state.Write,
		string(storage.LiquidityRecordKey(record)): state.All,
		userTokenKey(rules, actor):                 state.Write,
		vaultKey:                                   state.Write,
	}, nil
}

func (a *AddLiquidity) Execute(
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
	rules := rt.Rules()
	recordAddr, err := storage.LiquidityRecordAddress(rules.GetProgramID(), actor)
	if err != nil {
		return err
	}
	record, exists, err := storage.GetLiquidityRecord(ctx, mu, recordAddr)
	if err != nil {
		return err
	}
	if !exists {
		record = &storage.LiquidityRecord{Owner: actor}
	}
	// Vacuous for a fresh record
	if record.Owner != actor {
		return ErrUnauthorized
	}

	liquidity, err := vaultAuthority(rules, pool, vault.Liquidity)
	if err != nil {
		return err
	}
	provider, err := rt.Signer(actor)
	if err != nil {
		return err
	}
	if err := rt.Tokens().Transfer(ctx, mu, rules.GetTokenMint(), actor, liquidity.Key(), provider, a.Amount); err != nil {
		return err
	}

	if record.Amount, err = add(record.Amount, a.Amount); err != nil {
		return err
	}
	if pool.TotalLiquidity, err = add(pool.TotalLiquidity, a.Amount); err != nil {
		return err
	}
	if err := storage.SetLiquidityRecord(ctx, mu, recordAddr, record); err != nil {
		return err
	}
	if err := storage.SetPool(ctx, mu, rules.GetPoolAddress(), pool); err != nil {
		return err
	}
	rt.Emit(&LiquidityDeposited{LiquidityProvider: actor, Amount: a.Amount})
	return nil
}
