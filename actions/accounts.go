// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/state"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/vault"
)

// vaultAddress is the canonical address of the [role] vault. Footprints are
// computed before the pool is read, so they always use the canonical bump.
func vaultAddress(rules chain.Rules, role vault.Role) (codec.Address, error) {
	b, err := vault.Derive(rules.GetProgramID(), rules.GetPoolAddress(), role)
	if err != nil {
		return codec.EmptyAddress, err
	}
	return b.Address, nil
}

func vaultTokenKey(rules chain.Rules, role vault.Role) (string, error) {
	addr, err := vaultAddress(rules, role)
	if err != nil {
		return "", err
	}
	return string(storage.TokenAccountKey(rules.GetTokenMint(), addr)), nil
}

func userTokenKey(rules chain.Rules, user codec.Address) string {
	return string(storage.TokenAccountKey(rules.GetTokenMint(), user))
}

func poolKey(rules chain.Rules) string {
	return string(storage.PoolKey(rules.GetPoolAddress()))
}

// vaultAuthority rebuilds the signing capability of the [role] vault from
// the bump recorded in [pool].
func vaultAuthority(rules chain.Rules, pool *storage.Pool, role vault.Role) (*vault.Authority, error) {
	var bump uint8
	switch role {
	case vault.Staking:
		bump = pool.StakingVaultBump
	case vault.Liquidity:
		bump = pool.LiquidityVaultBump
	case vault.Fee:
		bump = pool.FeeVaultBump
	default:
		return nil, fmt.Errorf("%w: %s has no recorded bump", vault.ErrUnknownRole, role)
	}
	return vault.NewAuthority(rules.GetProgramID(), rules.GetPoolAddress(), role, bump)
}

// loadPool returns the pool with the signer of [actor] checked.
func loadPool(ctx context.Context, rt chain.Runtime, mu state.Immutable, actor codec.Address) (*storage.Pool, error) {
	if _, err := rt.Signer(actor); err != nil {
		return nil, err
	}
	return storage.GetPool(ctx, mu, rt.Rules().GetPoolAddress())
}

func missingRecord(record codec.Address) error {
	return fmt.Errorf("%w: %s", storage.ErrRecordNotFound, record)
}
