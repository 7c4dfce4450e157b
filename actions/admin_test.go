// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/chain/chaintest"
	"github.com/zkarb/zkarbvm/oracle"
	"github.com/zkarb/zkarbvm/state"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/transfer"
	"github.com/zkarb/zkarbvm/vault"
)

// fundFeeVault moves [amount] of the admin's tokens into the fee vault.
func (e *env) fundFeeVault(amount uint64) {
	ctx := context.Background()
	require.NoError(e.t, storage.SetTokenBalance(ctx, e.mu, e.rules.Mint, admin, e.tokens(admin)-amount))
	require.NoError(e.t, storage.SetTokenBalance(ctx, e.mu, e.rules.Mint, e.vault(vault.Fee), amount))
}

func TestRebalanceLiquidityAction(t *testing.T) {
	ctx := context.Background()
	defaults := newEnv(t, 100)
	custom := newEnv(t, 100)
	require.NoError(t, custom.run(bob, &AddLiquidity{Amount: 400}, startTime))

	target := oracle.Defaults()
	target.Optimizer = oracle.StaticOptimizer{Target: 7}

	tests := []chaintest.ActionTest{
		{
			Name:           "DefaultTarget",
			Action:         &RebalanceLiquidity{},
			Rules:          defaults.rules,
			State:          defaults.mu,
			Actor:          outsider,
			ExpectedEvents: []chain.Event{&LiquidityRebalanced{NewLiquidity: oracle.DefaultOptimalLiquidity}},
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require.Equal(t, oracle.DefaultOptimalLiquidity, defaults.pool().TotalLiquidity)
				require.Zero(t, defaults.tokens(defaults.vault(vault.Liquidity)))
			},
		},
		{
			// Only the counter changes
			Name:           "Overwrites",
			Action:         &RebalanceLiquidity{},
			Rules:          custom.rules,
			State:          custom.mu,
			Actor:          outsider,
			Oracles:        &target,
			ExpectedEvents: []chain.Event{&LiquidityRebalanced{NewLiquidity: 7}},
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require.Equal(t, uint64(7), custom.pool().TotalLiquidity)
				require.Equal(t, uint64(400), custom.lpRecord(bob).Amount)
				require.Equal(t, uint64(400), custom.tokens(custom.vault(vault.Liquidity)))
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestUpdateFeeMultiplierAction(t *testing.T) {
	ctx := context.Background()
	updated := newEnv(t, 100)
	zeroed := newEnv(t, 100)
	denied := newEnv(t, 100)

	tests := []chaintest.ActionTest{
		{
			Name:           "Admin",
			Action:         &UpdateFeeMultiplier{NewMultiplier: 250},
			Rules:          updated.rules,
			State:          updated.mu,
			Actor:          admin,
			ExpectedEvents: []chain.Event{&FeeMultiplierUpdated{NewMultiplier: 250}},
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require.Equal(t, uint64(250), updated.pool().DynamicFeeMultiplier)
			},
		},
		{
			Name:           "Zero",
			Action:         &UpdateFeeMultiplier{},
			Rules:          zeroed.rules,
			State:          zeroed.mu,
			Actor:          admin,
			ExpectedEvents: []chain.Event{&FeeMultiplierUpdated{}},
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require.Zero(t, zeroed.pool().DynamicFeeMultiplier)
			},
		},
		{
			Name:        "NotAdmin",
			Action:      &UpdateFeeMultiplier{NewMultiplier: 1},
			Rules:       denied.rules,
			State:       denied.mu,
			Actor:       alice,
			ExpectedErr: ErrUnauthorized,
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require.Equal(t, uint64(100), denied.pool().DynamicFeeMultiplier)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestZeroMultiplierTakesNoFee(t *testing.T) {
	require := require.New(t)
	e := newEnv(t, 100)

	require.NoError(e.run(admin, &UpdateFeeMultiplier{}, startTime))
	events, err := e.runWithEvents(alice, &ExecuteArbitrage{Amount: 1_000, Proof: []byte{0x01}}, startTime)
	require.NoError(err)
	require.Equal([]chain.Event{&ArbitrageExecuted{Trader: alice, Amount: 1_000, Profit: 100}}, events)
	require.Equal(testLamports, e.lamports(alice))
	require.Zero(e.pool().AccumulatedFeeTokens)
}

func TestBurnFeeTokensAction(t *testing.T) {
	ctx := context.Background()
	burned := newEnv(t, 100)
	burned.fundFeeVault(1_000)
	anyone := newEnv(t, 100)
	anyone.fundFeeVault(1_000)
	short := newEnv(t, 100)
	short.fundFeeVault(10)

	tests := []chaintest.ActionTest{
		{
			Name:           "Burns",
			Action:         &BurnFeeTokens{Amount: 600},
			Rules:          burned.rules,
			State:          burned.mu,
			Actor:          admin,
			ExpectedEvents: []chain.Event{&FeeTokensBurned{Amount: 600}},
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require := require.New(t)
				require.Equal(uint64(400), burned.tokens(burned.vault(vault.Fee)))
				require.Equal(testSupply-600, burned.supply())
			},
		},
		{
			// Any signer may trigger a burn
			Name:           "Outsider",
			Action:         &BurnFeeTokens{Amount: 1_000},
			Rules:          anyone.rules,
			State:          anyone.mu,
			Actor:          outsider,
			ExpectedEvents: []chain.Event{&FeeTokensBurned{Amount: 1_000}},
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require.Zero(t, anyone.tokens(anyone.vault(vault.Fee)))
			},
		},
		{
			Name:        "InsufficientFunds",
			Action:      &BurnFeeTokens{Amount: 11},
			Rules:       short.rules,
			State:       short.mu,
			Actor:       admin,
			ExpectedErr: transfer.ErrInsufficientFunds,
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require.Equal(t, uint64(10), short.tokens(short.vault(vault.Fee)))
				require.Equal(t, testSupply, short.supply())
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestBurnLeavesFeeCounter(t *testing.T) {
	require := require.New(t)
	e := newEnv(t, 100)

	require.NoError(e.run(alice, &ExecuteArbitrage{Amount: 1_000, Proof: []byte{0x01}}, startTime))
	require.Equal(uint64(10), e.pool().AccumulatedFeeTokens)

	e.fundFeeVault(10)
	require.NoError(e.run(admin, &BurnFeeTokens{Amount: 10}, startTime))
	require.Equal(uint64(10), e.pool().AccumulatedFeeTokens)
	require.Zero(e.tokens(e.vault(vault.Fee)))
}
