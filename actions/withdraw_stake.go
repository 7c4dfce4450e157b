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

var _ chain.Action = (*WithdrawStake)(nil)

// WithdrawStake returns [Amount] from the staking vault to the owner of
// [Record] once the lockup has expired.
type WithdrawStake struct {
	Record codec.Address `json:"record"`
	Amount uint64        `json:"amount"`
}

func (*WithdrawStake) GetTypeID() uint8 {
	return consts.WithdrawStakeID
}

func (w *WithdrawStake) StateKeys(actor codec.Address, rules chain.Rules) (state.Keys, error) {
	vaultKey, err := vaultTokenKey(rules, vault.Staking)
	if err != nil {
		return nil, err
	}
	return state.Keys{
		poolKey(rules):                           state.Write,
		string(storage.StakeRecordKey(w.Record)): state.Write,
		userTokenKey(rules, actor):               state.Write,
		vaultKey:                                 state.Write,
	}, nil
}

func (w *WithdrawStake) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
) error {
	pool, err := loadPool(ctx, rt, mu, actor)
	if err != nil {
		return err
	}
	record, exists, err := storage.GetStakeRecord(ctx, mu, w.Record)
	if err != nil {
		return err
	}
	if !exists {
		return missingRecord(w.Record)
	}

	if record.Owner != actor {
		return ErrUnauthorized
	}
	if timestamp < record.LockupUntil {
		return ErrLockupPeriodNotExpired
	}
	if record.Amount < w.Amount {
		return ErrInsufficientStakedBalance
	}

	if record.Amount, err = sub(record.Amount, w.Amount); err != nil {
		return err
	}
	if pool.TotalStaked, err = sub(pool.TotalStaked, w.Amount); err != nil {
		return err
	}
	rules := rt.Rules()
	if err := storage.SetStakeRecord(ctx, mu, w.Record, record); err != nil {
		return err
	}
	if err := storage.SetPool(ctx, mu, rules.GetPoolAddress(), pool); err != nil {
		return err
	}

	staking, err := vaultAuthority(rules, pool, vault.Staking)
	if err != nil {
		return err
	}
	if err := rt.Tokens().Transfer(ctx, mu, rules.GetTokenMint(), staking.Key(), actor, staking, w.Amount); err != nil {
		return err
	}

	held, err := subTime(timestamp, record.StakedAt)
	if err != nil {
		return err
	}
	if held >= BonusWindow {
		rt.Emit(&BonusRewardEligible{User: actor, Bonus: w.Amount / BonusDivisor})
	}
	rt.Emit(&StakeWithdrawn{User: actor, Amount: w.Amount})
	return nil
}
