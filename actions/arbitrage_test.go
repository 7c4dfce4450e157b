// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/chain/chaintest"
	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/oracle"
	"github.com/zkarb/zkarbvm/oracle/oraclemock"
	"github.com/zkarb/zkarbvm/state"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/vault"
)

var errDistribution = errors.New("distribution failed")

func (e *env) runWithOracles(actor codec.Address, action chain.Action, oracles oracle.Oracles) ([]chain.Event, error) {
	rt := chaintest.NewRuntime(e.rules, oracles, actor)
	err := chaintest.Execute(context.Background(), action, rt, e.mu, startTime, actor)
	return rt.Events, err
}

func TestExecuteArbitrageAction(t *testing.T) {
	ctx := context.Background()
	var (
		settled  = newEnv(t, 100)
		invalid  = newEnv(t, 100)
		slippage = newEnv(t, 100)
		broke    = newEnv(t, 100)
		greedy   = newEnv(t, 2_000)
		huge     = newEnv(t, ^uint64(0))
		noNative = newEnv(t, 100)
	)
	trader := codec.Address{0x77}

	tests := []chaintest.ActionTest{
		{
			Name:   "Settles",
			Action: &ExecuteArbitrage{Amount: 1_000, MinProfit: 50, Proof: []byte{0x01}},
			Rules:  settled.rules,
			State:  settled.mu,
			Actor:  alice,
			ExpectedEvents: []chain.Event{
				&ArbitrageExecuted{Trader: alice, Amount: 1_000, Profit: 90},
			},
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require := require.New(t)
				require.Equal(testLamports-10, settled.lamports(alice))
				require.Equal(uint64(10), settled.lamports(settled.vault(vault.FeeNative)))
				require.Equal(uint64(10), settled.pool().AccumulatedFeeTokens)
				// No tokens move
				require.Equal(testSupply/4, settled.tokens(alice))
				require.Zero(settled.tokens(settled.vault(vault.Fee)))
			},
		},
		{
			Name:        "EmptyProof",
			Action:      &ExecuteArbitrage{Amount: 1_000},
			Rules:       invalid.rules,
			State:       invalid.mu,
			Actor:       alice,
			ExpectedErr: ErrInvalidProof,
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require.Equal(t, testLamports, invalid.lamports(alice))
			},
		},
		{
			// Rejected before any fee is taken
			Name:        "Slippage",
			Action:      &ExecuteArbitrage{Amount: 1_000, MinProfit: 101, Proof: []byte{0x01}},
			Rules:       slippage.rules,
			State:       slippage.mu,
			Actor:       alice,
			ExpectedErr: ErrSlippageTooHigh,
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require.Equal(t, testLamports, slippage.lamports(alice))
				require.Zero(t, slippage.lamports(slippage.vault(vault.FeeNative)))
				require.Zero(t, slippage.pool().AccumulatedFeeTokens)
			},
		},
		{
			Name:        "LamportUnderflow",
			Action:      &ExecuteArbitrage{Amount: 1_000_000, Proof: []byte{0x01}},
			Rules:       broke.rules,
			State:       broke.mu,
			Actor:       alice,
			ExpectedErr: ErrMathOverflow,
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require.Equal(t, testLamports, broke.lamports(alice))
				require.Zero(t, broke.pool().AccumulatedFeeTokens)
			},
		},
		{
			// The fee exceeds the profit so nothing is left for the trader
			Name:   "SaturatedNet",
			Action: &ExecuteArbitrage{Amount: 1_000, Proof: []byte{0x01}},
			Rules:  greedy.rules,
			State:  greedy.mu,
			Actor:  alice,
			ExpectedEvents: []chain.Event{
				&ArbitrageExecuted{Trader: alice, Amount: 1_000},
			},
			Assertion: func(_ context.Context, t *testing.T, _ state.Mutable) {
				require.Equal(t, testLamports-200, greedy.lamports(alice))
				require.Equal(t, uint64(200), greedy.pool().AccumulatedFeeTokens)
			},
		},
		{
			Name:        "FeeOverflow",
			Action:      &ExecuteArbitrage{Amount: 1_000, Proof: []byte{0x01}},
			Rules:       huge.rules,
			State:       huge.mu,
			Actor:       alice,
			ExpectedErr: ErrMathOverflow,
		},
		{
			Name:        "TraderWithoutNativeAccount",
			Action:      &ExecuteArbitrage{Amount: 1_000, Proof: []byte{0x01}},
			Rules:       noNative.rules,
			State:       noNative.mu,
			Actor:       trader,
			ExpectedErr: storage.ErrNativeAccountNotFound,
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestArbitrageFeeRoundsDown(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	e := newEnv(t, 50)

	estimator := oraclemock.NewMockProfitEstimator(ctrl)
	estimator.EXPECT().EstimateProfit(gomock.Any(), uint64(5_000)).Return(uint64(107)).Times(1)
	delay := oraclemock.NewMockDelaySource(ctrl)
	delay.EXPECT().Delay(gomock.Any()).Return(uint64(2)).Times(1)

	oracles := oracle.Defaults()
	oracles.Estimator = estimator
	oracles.Delay = delay

	events, err := e.runWithOracles(alice, &ExecuteArbitrage{Amount: 5_000, MinProfit: 107, Proof: []byte("zk")}, oracles)
	require.NoError(err)
	// 107 * 50 / 1000 = 5.35
	require.Equal([]chain.Event{&ArbitrageExecuted{Trader: alice, Amount: 5_000, Profit: 102}}, events)
	require.Equal(testLamports-5, e.lamports(alice))
	require.Equal(uint64(5), e.lamports(e.vault(vault.FeeNative)))
	require.Equal(uint64(5), e.pool().AccumulatedFeeTokens)
}

func TestArbitrageRejectedProofSkipsEstimate(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	e := newEnv(t, 100)

	verifier := oraclemock.NewMockProofVerifier(ctrl)
	verifier.EXPECT().Verify(gomock.Any(), []byte{0x01}).Return(false)
	// Never called
	estimator := oraclemock.NewMockProfitEstimator(ctrl)

	oracles := oracle.Defaults()
	oracles.Verifier = verifier
	oracles.Estimator = estimator

	_, err := e.runWithOracles(alice, &ExecuteArbitrage{Amount: 1, Proof: []byte{0x01}}, oracles)
	require.ErrorIs(err, ErrInvalidProof)
	require.Equal(Verification, Classify(err))
}

func TestArbitrageDistributorFailureRollsBack(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	e := newEnv(t, 100)

	distributor := oraclemock.NewMockRewardDistributor(ctrl)
	distributor.EXPECT().
		Distribute(gomock.Any(), gomock.Any(), e.rules.Pool, uint64(90)).
		Return(errDistribution)

	oracles := oracle.Defaults()
	oracles.Distributor = distributor

	keys := [][]byte{
		storage.PoolKey(e.rules.Pool),
		storage.LamportsKey(alice),
		storage.LamportsKey(e.vault(vault.FeeNative)),
	}
	before := snapshot(t, e.mu, keys...)

	events, err := e.runWithOracles(alice, &ExecuteArbitrage{Amount: 1_000, Proof: []byte{0x01}}, oracles)
	require.ErrorIs(err, errDistribution)
	require.Empty(events)
	require.Equal(before, snapshot(t, e.mu, keys...))
}

func TestArbitrageRepeatedAccumulates(t *testing.T) {
	require := require.New(t)
	e := newEnv(t, 100)

	for i := 0; i < 3; i++ {
		require.NoError(e.run(alice, &ExecuteArbitrage{Amount: 1_000, Proof: []byte{0x01}}, startTime))
	}
	require.Equal(uint64(30), e.pool().AccumulatedFeeTokens)
	require.Equal(uint64(30), e.lamports(e.vault(vault.FeeNative)))
	require.Equal(testLamports-30, e.lamports(alice))
}

func TestDerivedActorRejected(t *testing.T) {
	tests := []struct {
		name   string
		role   vault.Role
		action chain.Action
	}{
		{
			name:   "native fee vault arbitrage",
			role:   vault.FeeNative,
			action: &ExecuteArbitrage{Amount: 1_000, Proof: []byte{0x01}},
		},
		{
			name:   "liquidity vault deposit",
			role:   vault.Liquidity,
			action: &AddLiquidity{Amount: 400},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			e := newEnv(t, 100)
			v := e.vault(tt.role)
			require.NoError(storage.SetLamports(context.Background(), e.mu, v, 50))

			keys := [][]byte{
				storage.PoolKey(e.rules.Pool),
				storage.LamportsKey(v),
			}
			before := snapshot(t, e.mu, keys...)

			err := e.run(v, tt.action, startTime, v)
			require.ErrorIs(err, chain.ErrDerivedSigner)
			require.Equal(before, snapshot(t, e.mu, keys...))
			require.Equal(uint64(50), e.lamports(v))
		})
	}
}

func TestMoveLamportsToSelf(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e := newEnv(t, 100)

	require.NoError(moveLamports(ctx, e.mu, alice, alice, 10))
	require.Equal(testLamports, e.lamports(alice))

	err := moveLamports(ctx, e.mu, alice, alice, testLamports+1)
	require.ErrorIs(err, ErrMathOverflow)
	require.Equal(testLamports, e.lamports(alice))
}
