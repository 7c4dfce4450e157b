// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkarb/zkarbvm/chain/chaintest"
	"github.com/zkarb/zkarbvm/state"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/vault"
)

func TestInitializeAction(t *testing.T) {
	ctx := context.Background()
	fresh := newBareEnv(t)
	initialized := newEnv(t, 100)
	noMint := newBareEnv(t)
	require.NoError(t, noMint.mu.Remove(ctx, storage.MintKey(noMint.rules.Mint)))

	tests := []chaintest.ActionTest{
		{
			Name:   "CreatesPool",
			Action: &Initialize{FeeMultiplier: 100},
			Rules:  fresh.rules,
			State:  fresh.mu,
			Actor:  admin,
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require := require.New(t)

				bindings, err := vault.DeriveAll(fresh.rules.ProgramID, fresh.rules.Pool)
				require.NoError(err)
				require.Equal(&storage.Pool{
					Admin:                admin,
					DynamicFeeMultiplier: 100,
					StakingVaultBump:     bindings[vault.Staking].Bump,
					LiquidityVaultBump:   bindings[vault.Liquidity].Bump,
					FeeVaultBump:         bindings[vault.Fee].Bump,
				}, fresh.pool())
				require.Zero(fresh.tokens(fresh.vault(vault.Staking)))
				require.Zero(fresh.tokens(fresh.vault(vault.Liquidity)))
				require.Zero(fresh.tokens(fresh.vault(vault.Fee)))
				require.Zero(fresh.lamports(fresh.vault(vault.FeeNative)))
			},
		},
		{
			Name:        "AlreadyInitialized",
			Action:      &Initialize{FeeMultiplier: 5},
			Rules:       initialized.rules,
			State:       initialized.mu,
			Actor:       alice,
			ExpectedErr: storage.ErrAccountAlreadyInUse,
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				p := initialized.pool()
				require.Equal(t, admin, p.Admin)
				require.Equal(t, uint64(100), p.DynamicFeeMultiplier)
			},
		},
		{
			Name:        "MissingMint",
			Action:      &Initialize{},
			Rules:       noMint.rules,
			State:       noMint.mu,
			Actor:       admin,
			ExpectedErr: storage.ErrMintNotFound,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				_, err := storage.GetPool(ctx, mu, noMint.rules.Pool)
				require.ErrorIs(t, err, storage.ErrPoolNotFound)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestInitializeClaimedVault(t *testing.T) {
	require := require.New(t)
	e := newBareEnv(t)

	// Someone already holds the staking vault account
	require.NoError(storage.SetTokenBalance(context.Background(), e.mu, e.rules.Mint, e.vault(vault.Staking), 1))
	err := e.run(admin, &Initialize{FeeMultiplier: 1}, startTime)
	require.ErrorIs(err, storage.ErrAccountAlreadyInUse)
	require.Equal(AlreadyInitialized, Classify(err))

	_, err = storage.GetPool(context.Background(), e.mu, e.rules.Pool)
	require.ErrorIs(err, storage.ErrPoolNotFound)
}
