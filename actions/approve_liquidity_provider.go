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

var _ chain.Action = (*ApproveLiquidityProvider)(nil)

// ApproveLiquidityProvider flags [Record] as approved. [Provider] must sign
// and own the record. The invoking admin signs as well but is not checked
// against the pool admin.
type ApproveLiquidityProvider struct {
	Record   codec.Address `json:"record"`
	Provider codec.Address `json:"provider"`
}

func (*ApproveLiquidityProvider) GetTypeID() uint8 {
	return consts.ApproveLiquidityProviderID
}

func (a *ApproveLiquidityProvider) StateKeys(_ codec.Address, rules chain.Rules) (state.Keys, error) {
	return state.Keys{
		poolKey(rules): state.Read,
		string(storage.LiquidityRecordKey(a.Record)): state.Write,
	}, nil
}

func (a *ApproveLiquidityProvider) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
) error {
	if _, err := loadPool(ctx, rt, mu, actor); err != nil {
		return err
	}
	if _, err := rt.Signer(a.Provider); err != nil {
		return err
	}
	record, exists, err := storage.GetLiquidityRecord(ctx, mu, a.Record)
	if err != nil {
		return err
	}
	if !exists {
		return missingRecord(a.Record)
	}
	if record.Owner != a.Provider {
		return ErrUnauthorized
	}
	record.Approved = true
	if err := storage.SetLiquidityRecord(ctx, mu, a.Record, record); err != nil {
		return err
	}
	rt.Emit(&LiquidityProviderApproved{LiquidityProvider: a.Provider})
	return nil
}
