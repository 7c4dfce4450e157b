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
)

var _ chain.Action = (*RebalanceLiquidity)(nil)

// RebalanceLiquidity overwrites the pool's total liquidity with the
// optimizer target. Individual records are not reconciled.
type RebalanceLiquidity struct{}

func (*RebalanceLiquidity) GetTypeID() uint8 {
	return consts.RebalanceLiquidityID
}

func (*RebalanceLiquidity) StateKeys(_ codec.Address, rules chain.Rules) (state.Keys, error) {
	return state.Keys{poolKey(rules): state.Write}, nil
}

func (*RebalanceLiquidity) Execute(
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
	target := rt.Oracles().Optimizer.OptimalLiquidity(ctx)
	pool.TotalLiquidity = target
	if err := storage.SetPool(ctx, mu, rt.Rules().GetPoolAddress(), pool); err != nil {
		return err
	}
	rt.Emit(&LiquidityRebalanced{NewLiquidity: target})
	return nil
}
