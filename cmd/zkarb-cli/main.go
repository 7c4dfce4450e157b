// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "zkarb-cli",
	Short: "CLI for operating a zkarb staking, liquidity and arbitrage pool",
	Long: `A CLI application that executes pool operations against a local ledger
and serves read only queries over JSON-RPC.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a config file")
	flags.String("data-dir", "", "Ledger database directory (in memory when empty)")
	flags.String("genesis", "", "Path to the genesis file")
	flags.String("program-id", "", "Override the program identity")
	flags.String("log-level", "info", "Log level")
	flags.String("log-dir", "", "Also write rotated JSON logs to this directory")
	flags.StringP("output", "o", "text", "Output format (text or json)")
	flags.Int64("timestamp", 0, "Execute at this unix time instead of the system clock")
}

func main() {
	Execute()
}
