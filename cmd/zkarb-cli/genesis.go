// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zkarb/zkarbvm/genesis"
)

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Generate a genesis file from address=balance allocations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rawTokens, err := cmd.Flags().GetStringSlice("token")
		if err != nil {
			return err
		}
		rawNative, err := cmd.Flags().GetStringSlice("native")
		if err != nil {
			return err
		}
		tokens, err := parseAllocations(rawTokens)
		if err != nil {
			return err
		}
		native, err := parseAllocations(rawNative)
		if err != nil {
			return err
		}

		g := genesis.NewDefaultGenesis(tokens, native)
		programID, err := cmd.Flags().GetString("program-id")
		if err != nil {
			return err
		}
		if len(programID) > 0 {
			g.ProgramID = programID
		}
		// Fails early on bad identities
		if _, err := g.Rules(); err != nil {
			return err
		}

		b, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			return err
		}
		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		if len(out) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		if err := os.WriteFile(out, b, 0o600); err != nil {
			return fmt.Errorf("failed to write genesis: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote genesis to %s\n", out)
		return nil
	},
}

func init() {
	genesisCmd.Flags().StringSlice("token", nil, "Pool token allocation as address=balance")
	genesisCmd.Flags().StringSlice("native", nil, "Native allocation as address=balance")
	genesisCmd.Flags().String("out", "", "Write the genesis to this file instead of stdout")
	rootCmd.AddCommand(genesisCmd)
}
