// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/consts"
	"github.com/zkarb/zkarbvm/storage"
	"github.com/zkarb/zkarbvm/vm"
)

// newQueryCmd returns a command that opens the ledger read only and hands
// it to [run].
func newQueryCmd(use string, short string, run func(cmd *cobra.Command, v *vm.VM) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := openVM(cmd)
			if err != nil {
				return err
			}
			defer v.Close()
			return run(cmd, v)
		},
	}
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Inspect the ledger",
}

var identitiesCmd = newQueryCmd("identities", "Print the program, pool, mint and vault addresses", func(cmd *cobra.Command, v *vm.VM) error {
	vaults, err := v.Vaults()
	if err != nil {
		return err
	}
	rules := v.Rules()
	out := map[string]any{
		"programID": rules.GetProgramID(),
		"pool":      rules.GetPoolAddress(),
		"mint":      rules.GetTokenMint(),
		"vaults":    vaults,
	}
	return printValue(cmd, out, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "program: %s\npool:    %s\nmint:    %s", rules.GetProgramID(), rules.GetPoolAddress(), rules.GetTokenMint())
		for _, binding := range vaults {
			fmt.Fprintf(&b, "\nvault %s: %s (bump %d)", binding.Role, binding.Address, binding.Bump)
		}
		return b.String()
	})
})

var poolCmd = newQueryCmd("pool", "Print the pool state", func(cmd *cobra.Command, v *vm.VM) error {
	pool, err := v.Pool(context.Background())
	if err != nil {
		return err
	}
	return printValue(cmd, pool, func() string {
		return fmt.Sprintf(
			"admin: %s\ntotal staked: %d\ntotal liquidity: %d\naccumulated fees: %d\nfee multiplier: %d",
			pool.Admin,
			pool.TotalStaked,
			pool.TotalLiquidity,
			pool.AccumulatedFeeTokens,
			pool.DynamicFeeMultiplier,
		)
	})
})

var stakeRecordCmd = newQueryCmd("stake", "Print the stake record of --owner", func(cmd *cobra.Command, v *vm.VM) error {
	owner, err := getAddress(cmd, "owner")
	if err != nil {
		return err
	}
	addr, record, exists, err := v.StakeRecord(context.Background(), owner)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no stake record for %s at %s", owner, addr)
	}
	return printValue(cmd, record, func() string {
		return fmt.Sprintf("record %s: %d staked at %d, locked until %d", addr, record.Amount, record.StakedAt, record.LockupUntil)
	})
})

var liquidityRecordCmd = newQueryCmd("liquidity", "Print the liquidity record of --owner", func(cmd *cobra.Command, v *vm.VM) error {
	owner, err := getAddress(cmd, "owner")
	if err != nil {
		return err
	}
	addr, record, exists, err := v.LiquidityRecord(context.Background(), owner)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no liquidity record for %s at %s", owner, addr)
	}
	return printValue(cmd, record, func() string {
		return fmt.Sprintf("record %s: %d provided, approved %t", addr, record.Amount, record.Approved)
	})
})

var balanceCmd = newQueryCmd("balance", "Print the token and native balances of --address", func(cmd *cobra.Command, v *vm.VM) error {
	addr, err := getAddress(cmd, "address")
	if err != nil {
		return err
	}
	ctx := context.Background()
	tokens, _, err := v.TokenBalance(ctx, addr)
	if err != nil {
		return err
	}
	lamports, _, err := v.Lamports(ctx, addr)
	if err != nil {
		return err
	}
	out := map[string]uint64{"tokens": tokens, "lamports": lamports}
	return printValue(cmd, out, func() string {
		return fmt.Sprintf("%s: %d tokens, %d lamports", addr, tokens, lamports)
	})
})

var supplyCmd = newQueryCmd("supply", "Print the pool token supply", func(cmd *cobra.Command, v *vm.VM) error {
	supply, err := v.MintSupply(context.Background())
	if err != nil {
		return err
	}
	return printValue(cmd, map[string]uint64{"supply": supply}, func() string {
		return fmt.Sprintf("supply: %d", supply)
	})
})

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Print the record addresses of --owner without opening the ledger",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		owner, err := getAddress(cmd, "owner")
		if err != nil {
			return err
		}
		programID := consts.ProgramID
		if len(cfg.ProgramID) > 0 {
			programID = cfg.ProgramID
		}
		program, err := codec.ParseAddress(programID)
		if err != nil {
			return err
		}
		stake, err := storage.StakeRecordAddress(program, owner)
		if err != nil {
			return err
		}
		lp, err := storage.LiquidityRecordAddress(program, owner)
		if err != nil {
			return err
		}
		out := map[string]codec.Address{"stake": stake, "liquidity": lp}
		return printValue(cmd, out, func() string {
			return fmt.Sprintf("stake record: %s\nliquidity record: %s", stake, lp)
		})
	},
}

func init() {
	stakeRecordCmd.Flags().String("owner", "", "Record owner")
	liquidityRecordCmd.Flags().String("owner", "", "Record owner")
	deriveCmd.Flags().String("owner", "", "Record owner")
	balanceCmd.Flags().String("address", "", "Account to inspect")

	queryCmd.AddCommand(
		identitiesCmd,
		poolCmd,
		stakeRecordCmd,
		liquidityRecordCmd,
		balanceCmd,
		supplyCmd,
		deriveCmd,
	)
	rootCmd.AddCommand(queryCmd)
}
