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

var _ chain.Action = (*ExecuteArbitrage)(nil)

// ExecuteArbitrage settles a proven arbitrage. The fee is taken from the
// trader in lamports and, separately, booked as accumulated fee tokens.
type ExecuteArbitrage struct {
	Amount    uint64 `json:"amount"`
	MinProfit uint64 `json:"minProfit"`
	Proof     []byte `json:"proof"`
}

func (*ExecuteArbitrage) GetTypeID() uint8 {
	return consts.ExecuteArbitrageID
}

func (*ExecuteArbitrage) StateKeys(actor codec.Address, rules chain.Rules) (state.Keys, error) {
	native, err := vaultAddress(rules, vault.FeeNative)
	if err != nil {
		return nil, err
	}
	return state.Keys{
		poolKey(rules):                      state.Write,
		string(storage.LamportsKey(actor)):  state.Write,
		string(storage.LamportsKey(native)): state.Write,
	}, nil
}

func (e *ExecuteArbitrage) Execute(
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
	oracles := rt.Oracles()

	// The delay is queried but not acted on.
	_ = oracles.Delay.Delay(ctx)

	if !oracles.Verifier.Verify(ctx, e.Proof) {
		return ErrInvalidProof
	}
	profit := oracles.Estimator.EstimateProfit(ctx, e.Amount)
	if profit < e.MinProfit {
		return fmt.Errorf("%w: profit %d < minimum %d", ErrSlippageTooHigh, profit, e.MinProfit)
	}

	// Native fee
	lamportsFee, err := fee(profit, pool.DynamicFeeMultiplier)
	if err != nil {
		return err
	}
	rules := rt.Rules()
	native, err := vaultAddress(rules, vault.FeeNative)
	if err != nil {
		return err
	}
	if err := moveLamports(ctx, mu, actor, native, lamportsFee); err != nil {
		return err
	}

	// Token fee, computed independently from the same profit
	tokenFee, err := fee(profit, pool.DynamicFeeMultiplier)
	if err != nil {
		return err
	}
	if pool.AccumulatedFeeTokens, err = add(pool.AccumulatedFeeTokens, tokenFee); err != nil {
		return err
	}
	if err := storage.SetPool(ctx, mu, rules.GetPoolAddress(), pool); err != nil {
		return err
	}

	var net uint64
	if profit > tokenFee {
		net = profit - tokenFee
	}
	rt.Emit(&ArbitrageExecuted{Trader: actor, Amount: e.Amount, Profit: net})
	return oracles.Distributor.Distribute(ctx, mu, rules.GetPoolAddress(), net)
}

// moveLamports debits [from] and credits [to] directly, without the token
// program.
func moveLamports(ctx context.Context, mu state.Mutable, from codec.Address, to codec.Address, amount uint64) error {
	fromBal, exists, err := storage.GetLamports(ctx, mu, from)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", storage.ErrNativeAccountNotFound, from)
	}
	toBal, exists, err := storage.GetLamports(ctx, mu, to)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", storage.ErrNativeAccountNotFound, to)
	}
	if fromBal, err = sub(fromBal, amount); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	if toBal, err = add(toBal, amount); err != nil {
		return err
	}
	if err := storage.SetLamports(ctx, mu, from, fromBal); err != nil {
		return err
	}
	return storage.SetLamports(ctx, mu, to, toBal)
}
