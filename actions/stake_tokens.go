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

var _ chain.Action = (*StakeTokens)(nil)

// StakeTokens moves [Amount] from the caller into the staking vault. Every
// stake restarts the lockup.
type StakeTokens struct {
	Amount uint64 `json:"amount"`
}

func (*StakeTokens) GetTypeID() uint8 {
	return consts.StakeTokensID
}

func (*StakeTokens) StateKeys(actor codec.Address, rules chain.Rules) (state.Keys, error) {
	record, err := storage.StakeRecordAddress(rules.GetProgramID(), actor)
	if err != nil {
		return nil, err
	}
	vaultKey, err := vaultTokenKey(rules, vault.Staking)
	if err != nil {
		return nil, err
	}
	return state.Keys{
		poolKey(rules):                         state.Write,
		string(storage.StakeRecordKey(record)): state.All,
		userTokenKey(rules, actor):             state.Write,
		vaultKey:                               state.Write,
	}, nil
}

func (s *StakeTokens) Execute(
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
	rules := rt.Rules()
	recordAddr, err := storage.StakeRecordAddress(rules.GetProgramID(), actor)
	if err != nil {
		return err
	}
	record, exists, err := storage.GetStakeRecord(ctx, mu, recordAddr)
	if err != nil {
		return err
	}
	if !exists {
		record = &storage.StakeRecord{Owner: actor}
	}
	if record.Owner != actor {
		return ErrUnauthorized
	}

	staking, err := vaultAuthority(rules, pool, vault.Staking)
	if err != nil {
		return err
	}
	user, err := rt.Signer(actor)
	if err != nil {
		return err
	}
	if err := rt.Tokens().Transfer(ctx, mu, rules.GetTokenMint(), actor, staking.Key(), user, s.Amount); err != nil {
		return err
	}

	if record.Amount, err = add(record.Amount, s.Amount); err != nil {
		return err
	}
	lockupUntil, err := addTime(timestamp, LockupPeriod)
	if err != nil {
		return err
	}
	record.StakedAt = timestamp
	record.LockupUntil = lockupUntil
	if pool.TotalStaked, err = add(pool.TotalStaked, s.Amount); err != nil {
		return err
	}

	if err := storage.SetStakeRecord(ctx, mu, recordAddr, record); err != nil {
		return err
	}
	if err := storage.SetPool(ctx, mu, rules.GetPoolAddress(), pool); err != nil {
		return err
	}
	rt.Emit(&StakeDeposited{User: actor, Amount: s.Amount})
	return nil
}
