// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/consts"
	"github.com/zkarb/zkarbvm/state"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/vault"
)

var _ chain.Action = (*Initialize)(nil)

// Initialize creates the pool with the caller as admin and allocates its
// vaults.
type Initialize struct {
	FeeMultiplier uint64 `json:"feeMultiplier"`
}

func (*Initialize) GetTypeID() uint8 {
	return consts.InitializeID
}

func (*Initialize) StateKeys(_ codec.Address, rules chain.Rules) (state.Keys, error) {
	bindings, err := vault.DeriveAll(rules.GetProgramID(), rules.GetPoolAddress())
	if err != nil {
		return nil, err
	}
	keys := state.Keys{
		poolKey(rules): state.All,
		string(storage.MintKey(rules.GetTokenMint())): state.Read,
	}
	for _, b := range bindings {
		if b.Role == vault.FeeNative {
			keys.Add(string(storage.LamportsKey(b.Address)), state.All)
			continue
		}
		keys.Add(string(storage.TokenAccountKey(rules.GetTokenMint(), b.Address)), state.All)
	}
	return keys, nil
}

func (i *Initialize) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
) error {
	if _, err := rt.Signer(actor); err != nil {
		return err
	}
	rules := rt.Rules()
	poolAddr := rules.GetPoolAddress()
	exists, err := storage.PoolExists(ctx, mu, poolAddr)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: pool %s", storage.ErrAccountAlreadyInUse, poolAddr)
	}
	mint := rules.GetTokenMint()
	if _, exists, err := storage.GetMintSupply(ctx, mu, mint); err != nil {
		return err
	} else if !exists {
		return fmt.Errorf("%w: %s", storage.ErrMintNotFound, mint)
	}

	bindings, err := vault.DeriveAll(rules.GetProgramID(), poolAddr)
	if err != nil {
		return err
	}
	pool := &storage.Pool{
		Admin:                actor,
		DynamicFeeMultiplier: i.FeeMultiplier,
	}
	for _, b := range bindings {
		if err := allocateVault(ctx, mu, mint, b); err != nil {
			return err
		}
		switch b.Role {
		case vault.Staking:
			pool.StakingVaultBump = b.Bump
		case vault.Liquidity:
			pool.LiquidityVaultBump = b.Bump
		case vault.Fee:
			pool.FeeVaultBump = b.Bump
		}
	}
	return storage.SetPool(ctx, mu, poolAddr, pool)
}

// allocateVault creates the empty account behind [b]. The native vault
// holds lamports, every other vault holds pool tokens.
func allocateVault(ctx context.Context, mu state.Mutable, mint codec.Address, b vault.Binding) error {
	if b.Role == vault.FeeNative {
		_, exists, err := storage.GetLamports(ctx, mu, b.Address)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s vault %s", storage.ErrAccountAlreadyInUse, b.Role, b.Address)
		}
		return storage.SetLamports(ctx, mu, b.Address, 0)
	}
	_, exists, err := storage.GetTokenBalance(ctx, mu, mint, b.Address)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s vault %s", storage.ErrAccountAlreadyInUse, b.Role, b.Address)
	}
	return storage.SetTokenBalance(ctx, mu, mint, b.Address, 0)
}
