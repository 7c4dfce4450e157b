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

var _ chain.Action = (*UpdateFeeMultiplier)(nil)

// UpdateFeeMultiplier replaces the fee multiplier. Any value is accepted.
type UpdateFeeMultiplier struct {
	NewMultiplier uint64 `json:"newMultiplier"`
}

func (*UpdateFeeMultiplier) GetTypeID() uint8 {
	return consts.UpdateFeeMultiplierID
}

func (*UpdateFeeMultiplier) StateKeys(_ codec.Address, rules chain.Rules) (state.Keys, error) {
	return state.Keys{poolKey(rules): state.Write}, nil
}

func (u *UpdateFeeMultiplier) Execute(
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
	if actor != pool.Admin {
		return ErrUnauthorized
	}
	pool.DynamicFeeMultiplier = u.NewMultiplier
	if err := storage.SetPool(ctx, mu, rt.Rules().GetPoolAddress(), pool); err != nil {
		return err
	}
	rt.Emit(&FeeMultiplierUpdated{NewMultiplier: u.NewMultiplier})
	return nil
}
