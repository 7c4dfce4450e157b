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

var _ chain.Action = (*BurnFeeTokens)(nil)

// BurnFeeTokens burns [Amount] out of the fee vault. The accumulated fee
// counter is left as is, so it no longer matches the vault after a burn.
type BurnFeeTokens struct {
	Amount uint64 `json:"amount"`
}

func (*BurnFeeTokens) GetTypeID() uint8 {
	return consts.BurnFeeTokensID
}

func (*BurnFeeTokens) StateKeys(_ codec.Address, rules chain.Rules) (state.Keys, error) {
	vaultKey, err := vaultTokenKey(rules, vault.Fee)
	if err != nil {
		return nil, err
	}
	return state.Keys{
		poolKey(rules): state.Read,
		vaultKey:       state.Write,
		string(storage.MintKey(rules.GetTokenMint())): state.Write,
	}, nil
}

func (b *BurnFeeTokens) Execute(
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
	fees, err := vaultAuthority(rules, pool, vault.Fee)
	if err != nil {
		return err
	}
	if err := rt.Tokens().Burn(ctx, mu, rules.GetTokenMint(), fees.Key(), fees, b.Amount); err != nil {
		return err
	}
	rt.Emit(&FeeTokensBurned{Amount: b.Amount})
	return nil
}
