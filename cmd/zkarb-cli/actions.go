// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zkarb/zkarbvm/actions"
	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/storage"
)

type actionBuilder func(cmd *cobra.Command, rules chain.Rules, actor codec.Address) (chain.Action, error)

// newActionCmd returns a command executing the action produced by [build]
// on behalf of --actor.
func newActionCmd(use string, short string, setFlags func(*pflag.FlagSet), build actionBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := getAddress(cmd, "actor")
			if err != nil {
				return err
			}
			signers, err := getAddresses(cmd, "signer")
			if err != nil {
				return err
			}

			v, err := openVM(cmd)
			if err != nil {
				return err
			}
			defer v.Close()

			action, err := build(cmd, v.Rules(), actor)
			if err != nil {
				return err
			}
			result, err := v.Execute(context.Background(), actor, action, signers...)
			if err != nil {
				return fmt.Errorf("%s failed (%s): %w", use, actions.ClassifyString(err), err)
			}
			return printValue(cmd, result, func() string {
				return formatResult(result)
			})
		},
	}
	cmd.Flags().String("actor", "", "Account executing the operation")
	cmd.Flags().StringSlice("signer", nil, "Additional accounts signing the operation")
	if setFlags != nil {
		setFlags(cmd.Flags())
	}
	return cmd
}

func formatResult(result *chain.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "operation %d committed at %d (%d state changes)", result.Index, result.Timestamp, result.StateChanges)
	for _, e := range result.Events {
		fields, err := json.Marshal(e.Event)
		if err != nil {
			fields = []byte(err.Error())
		}
		fmt.Fprintf(&b, "\n  %s %s", e.Event.Name(), fields)
	}
	return b.String()
}

func amountFlag(fs *pflag.FlagSet) {
	fs.Uint64("amount", 0, "Token amount")
}

func getAmount(cmd *cobra.Command) (uint64, error) {
	return cmd.Flags().GetUint64("amount")
}

var initializeCmd = newActionCmd(
	"initialize",
	"Create the pool with the actor as admin",
	func(fs *pflag.FlagSet) {
		fs.Uint64("fee-multiplier", 0, "Fee in parts per thousand of the profit")
	},
	func(cmd *cobra.Command, _ chain.Rules, _ codec.Address) (chain.Action, error) {
		m, err := cmd.Flags().GetUint64("fee-multiplier")
		if err != nil {
			return nil, err
		}
		return &actions.Initialize{FeeMultiplier: m}, nil
	},
)

var stakeCmd = newActionCmd(
	"stake",
	"Stake tokens into the staking vault",
	amountFlag,
	func(cmd *cobra.Command, _ chain.Rules, _ codec.Address) (chain.Action, error) {
		amount, err := getAmount(cmd)
		if err != nil {
			return nil, err
		}
		return &actions.StakeTokens{Amount: amount}, nil
	},
)

var withdrawCmd = newActionCmd(
	"withdraw",
	"Withdraw staked tokens after the lockup",
	amountFlag,
	func(cmd *cobra.Command, rules chain.Rules, actor codec.Address) (chain.Action, error) {
		amount, err := getAmount(cmd)
		if err != nil {
			return nil, err
		}
		record, err := storage.StakeRecordAddress(rules.GetProgramID(), actor)
		if err != nil {
			return nil, err
		}
		return &actions.WithdrawStake{Record: record, Amount: amount}, nil
	},
)

var addLiquidityCmd = newActionCmd(
	"add-liquidity",
	"Deposit tokens into the liquidity vault",
	amountFlag,
	func(cmd *cobra.Command, _ chain.Rules, _ codec.Address) (chain.Action, error) {
		amount, err := getAmount(cmd)
		if err != nil {
			return nil, err
		}
		return &actions.AddLiquidity{Amount: amount}, nil
	},
)

var removeLiquidityCmd = newActionCmd(
	"remove-liquidity",
	"Withdraw tokens from the liquidity vault",
	amountFlag,
	func(cmd *cobra.Command, rules chain.Rules, actor codec.Address) (chain.Action, error) {
		amount, err := getAmount(cmd)
		if err != nil {
			return nil, err
		}
		record, err := storage.LiquidityRecordAddress(rules.GetProgramID(), actor)
		if err != nil {
			return nil, err
		}
		return &actions.RemoveLiquidity{Record: record, Amount: amount}, nil
	},
)

var approveCmd = newActionCmd(
	"approve",
	"Approve a liquidity provider, who must co-sign with --signer",
	func(fs *pflag.FlagSet) {
		fs.String("provider", "", "Liquidity provider to approve")
	},
	func(cmd *cobra.Command, rules chain.Rules, _ codec.Address) (chain.Action, error) {
		provider, err := getAddress(cmd, "provider")
		if err != nil {
			return nil, err
		}
		record, err := storage.LiquidityRecordAddress(rules.GetProgramID(), provider)
		if err != nil {
			return nil, err
		}
		return &actions.ApproveLiquidityProvider{Record: record, Provider: provider}, nil
	},
)

var arbitrageCmd = newActionCmd(
	"arbitrage",
	"Execute a proven arbitrage",
	func(fs *pflag.FlagSet) {
		amountFlag(fs)
		fs.Uint64("min-profit", 0, "Minimum acceptable estimated profit")
		fs.String("proof", "", "Hex encoded proof")
	},
	func(cmd *cobra.Command, _ chain.Rules, _ codec.Address) (chain.Action, error) {
		amount, err := getAmount(cmd)
		if err != nil {
			return nil, err
		}
		minProfit, err := cmd.Flags().GetUint64("min-profit")
		if err != nil {
			return nil, err
		}
		rawProof, err := cmd.Flags().GetString("proof")
		if err != nil {
			return nil, err
		}
		proof, err := hex.DecodeString(strings.TrimPrefix(rawProof, "0x"))
		if err != nil {
			return nil, fmt.Errorf("failed to decode proof: %w", err)
		}
		return &actions.ExecuteArbitrage{Amount: amount, MinProfit: minProfit, Proof: proof}, nil
	},
)

var rebalanceCmd = newActionCmd(
	"rebalance",
	"Set the total liquidity to the optimizer target",
	nil,
	func(*cobra.Command, chain.Rules, codec.Address) (chain.Action, error) {
		return &actions.RebalanceLiquidity{}, nil
	},
)

var updateFeeCmd = newActionCmd(
	"update-fee",
	"Change the dynamic fee multiplier (admin only)",
	func(fs *pflag.FlagSet) {
		fs.Uint64("multiplier", 0, "New fee in parts per thousand of the profit")
	},
	func(cmd *cobra.Command, _ chain.Rules, _ codec.Address) (chain.Action, error) {
		m, err := cmd.Flags().GetUint64("multiplier")
		if err != nil {
			return nil, err
		}
		return &actions.UpdateFeeMultiplier{NewMultiplier: m}, nil
	},
)

var burnCmd = newActionCmd(
	"burn",
	"Burn tokens held by the fee vault",
	amountFlag,
	func(cmd *cobra.Command, _ chain.Rules, _ codec.Address) (chain.Action, error) {
		amount, err := getAmount(cmd)
		if err != nil {
			return nil, err
		}
		return &actions.BurnFeeTokens{Amount: amount}, nil
	},
)

func init() {
	rootCmd.AddCommand(
		initializeCmd,
		stakeCmd,
		withdrawCmd,
		addLiquidityCmd,
		removeLiquidityCmd,
		approveCmd,
		arbitrageCmd,
		rebalanceCmd,
		updateFeeCmd,
		burnCmd,
	)
}
