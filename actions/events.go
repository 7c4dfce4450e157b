// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"reflect"

	"github.com/near/borsh-go"

	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/consts"
)

var (
	_ chain.Event = (*StakeDeposited)(nil)
	_ chain.Event = (*StakeWithdrawn)(nil)
	_ chain.Event = (*BonusRewardEligible)(nil)
	_ chain.Event = (*LiquidityDeposited)(nil)
	_ chain.Event = (*LiquidityRemoved)(nil)
	_ chain.Event = (*LiquidityProviderApproved)(nil)
	_ chain.Event = (*ArbitrageExecuted)(nil)
	_ chain.Event = (*LiquidityRebalanced)(nil)
	_ chain.Event = (*FeeMultiplierUpdated)(nil)
	_ chain.Event = (*FeeTokensBurned)(nil)
)

// EncodeEvent serializes [e] the way Anchor event indexers expect: the
// event discriminator followed by the borsh encoded fields.
func EncodeEvent(e chain.Event) ([]byte, error) {
	body, err := borsh.Serialize(reflect.Indirect(reflect.ValueOf(e)).Interface())
	if err != nil {
		return nil, err
	}
	d := codec.NewDiscriminator("event", e.Name())
	return append(d[:], body...), nil
}

type StakeDeposited struct {
	User   codec.Address `json:"user"`
	Amount uint64        `json:"amount"`
}

func (*StakeDeposited) GetTypeID() uint8 { return consts.StakeDepositedID }
func (*StakeDeposited) Name() string     { return "StakeDeposited" }

type StakeWithdrawn struct {
	User   codec.Address `json:"user"`
	Amount uint64        `json:"amount"`
}

func (*StakeWithdrawn) GetTypeID() uint8 { return consts.StakeWithdrawnID }
func (*StakeWithdrawn) Name() string     { return "StakeWithdrawn" }

// BonusRewardEligible is a notification only. No balance moves with it.
type BonusRewardEligible struct {
	User  codec.Address `json:"user"`
	Bonus uint64        `json:"bonus"`
}

func (*BonusRewardEligible) GetTypeID() uint8 { return consts.BonusRewardEligibleID }
func (*BonusRewardEligible) Name() string     { return "BonusRewardEligible" }

type LiquidityDeposited struct {
	LiquidityProvider codec.Address `json:"liquidityProvider"`
	Amount            uint64        `json:"amount"`
}

func (*LiquidityDeposited) GetTypeID() uint8 { return consts.LiquidityDepositedID }
func (*LiquidityDeposited) Name() string     { return "LiquidityDeposited" }

type LiquidityRemoved struct {
	LiquidityProvider codec.Address `json:"liquidityProvider"`
	Amount            uint64        `json:"amount"`
}

func (*LiquidityRemoved) GetTypeID() uint8 { return consts.LiquidityRemovedID }
func (*LiquidityRemoved) Name() string     { return "LiquidityRemoved" }

type LiquidityProviderApproved struct {
	LiquidityProvider codec.Address `json:"liquidityProvider"`
}

func (*LiquidityProviderApproved) GetTypeID() uint8 { return consts.LiquidityProviderApprovedID }
func (*LiquidityProviderApproved) Name() string     { return "LiquidityProviderApproved" }

type ArbitrageExecuted struct {
	Trader codec.Address `json:"trader"`
	Amount uint64        `json:"amount"`
	// Profit is net of the fee
	Profit uint64 `json:"profit"`
}

func (*ArbitrageExecuted) GetTypeID() uint8 { return consts.ArbitrageExecutedID }
func (*ArbitrageExecuted) Name() string     { return "ArbitrageExecuted" }

type LiquidityRebalanced struct {
	NewLiquidity uint64 `json:"newLiquidity"`
}

func (*LiquidityRebalanced) GetTypeID() uint8 { return consts.LiquidityRebalancedID }
func (*LiquidityRebalanced) Name() string     { return "LiquidityRebalanced" }

type FeeMultiplierUpdated struct {
	NewMultiplier uint64 `json:"newMultiplier"`
}

func (*FeeMultiplierUpdated) GetTypeID() uint8 { return consts.FeeMultiplierUpdatedID }
func (*FeeMultiplierUpdated) Name() string     { return "FeeMultiplierUpdated" }

type FeeTokensBurned struct {
	Amount uint64 `json:"amount"`
}

func (*FeeTokensBurned) GetTypeID() uint8 { return consts.FeeTokensBurnedID }
func (*FeeTokensBurned) Name() string     { return "FeeTokensBurned" }
