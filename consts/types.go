// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Name is the name of the ledger program.
	Name = "zkarb"

	// ProgramID is the deployment identity every derived address is bound
	// to. It can be overridden by configuration.
	ProgramID = "GSJ1Uj1xh4LMEWAssmpni4i4HaXj7GLHM54BBcC9VTRK"
)

// Action TypeIDs
const (
	InitializeID uint8 = iota
	StakeTokensID
	WithdrawStakeID
	AddLiquidityID
	RemoveLiquidityID
	ApproveLiquidityProviderID
	ExecuteArbitrageID
	RebalanceLiquidityID
	UpdateFeeMultiplierID
	BurnFeeTokensID
)

// Event TypeIDs
const (
	StakeDepositedID uint8 = iota
	StakeWithdrawnID
	BonusRewardEligibleID
	LiquidityDepositedID
	LiquidityRemovedID
	LiquidityProviderApprovedID
	ArbitrageExecutedID
	LiquidityRebalancedID
	FeeMultiplierUpdatedID
	FeeTokensBurnedID
)
