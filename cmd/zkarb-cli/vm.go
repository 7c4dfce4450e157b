// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/config"
	"github.com/zkarb/zkarbvm/genesis"
	"github.com/zkarb/zkarbvm/oracle"
	"github.com/zkarb/zkarbvm/vm"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(file, cmd.Flags())
}

const (
	logName       = "zkarb"
	logMaxSize    = 8 // megabytes
	logMaxBackups = 7
	logMaxAge     = 30 // days
)

// newLogger writes to stderr and, when a log dir is configured, to a
// rotated JSON file inside it.
func newLogger(cfg config.Config) logging.Logger {
	level := cfg.GetLogLevel()
	cores := []logging.WrappedCore{
		logging.NewWrappedCore(level, os.Stderr, logging.Plain.ConsoleEncoder()),
	}
	if len(cfg.LogDir) > 0 {
		rw := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, logName+".log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
		}
		cores = append(cores, logging.NewWrappedCore(level, rw, logging.JSON.FileEncoder()))
	}
	return logging.NewLogger(logName, cores...)
}

// openVM starts a vm over the configured ledger. The caller must close it.
func openVM(cmd *cobra.Command) (*vm.VM, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	var genesisBytes []byte
	if len(cfg.GenesisFile) > 0 {
		genesisBytes, err = os.ReadFile(cfg.GenesisFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read genesis: %w", err)
		}
	}

	var opts []vm.Option
	timestamp, err := cmd.Flags().GetInt64("timestamp")
	if err != nil {
		return nil, err
	}
	if timestamp > 0 {
		opts = append(opts, vm.WithClock(oracle.NewManualClock(timestamp)))
	}

	log := newLogger(cfg)
	if len(cfg.DataDir) == 0 {
		log.Warn("no data dir configured, changes will not persist")
	}
	return vm.New(context.Background(), log, cfg, genesisBytes, opts...)
}

func getAddress(cmd *cobra.Command, name string) (codec.Address, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if len(s) == 0 {
		return codec.EmptyAddress, fmt.Errorf("--%s is required", name)
	}
	addr, err := codec.ParseAddress(s)
	if err != nil {
		return codec.EmptyAddress, fmt.Errorf("failed to parse --%s: %w", name, err)
	}
	return addr, nil
}

func getAddresses(cmd *cobra.Command, name string) ([]codec.Address, error) {
	raw, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil, err
	}
	out := make([]codec.Address, 0, len(raw))
	for _, s := range raw {
		addr, err := codec.ParseAddress(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse --%s %q: %w", name, s, err)
		}
		out = append(out, addr)
	}
	return out, nil
}

// parseAllocations reads address=balance pairs.
func parseAllocations(raw []string) ([]*genesis.Allocation, error) {
	out := make([]*genesis.Allocation, 0, len(raw))
	for _, entry := range raw {
		addr, balance, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("allocation %q is not address=balance", entry)
		}
		if _, err := codec.ParseAddress(addr); err != nil {
			return nil, fmt.Errorf("allocation %q: %w", entry, err)
		}
		v, err := strconv.ParseUint(balance, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("allocation %q: %w", entry, err)
		}
		out = append(out, &genesis.Allocation{Address: addr, Balance: v})
	}
	return out, nil
}

func isJSONOutputRequested(cmd *cobra.Command) (bool, error) {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return false, fmt.Errorf("failed to get output format: %w", err)
	}
	switch strings.ToLower(output) {
	case "json":
		return true, nil
	case "text":
		return false, nil
	default:
		return false, fmt.Errorf("invalid output format: %s", output)
	}
}

// printValue writes [v] as indented JSON, or through [text] in text mode.
func printValue(cmd *cobra.Command, v any, text func() string) error {
	isJSON, err := isJSONOutputRequested(cmd)
	if err != nil {
		return err
	}
	if !isJSON {
		fmt.Fprintln(cmd.OutOrStdout(), text())
		return nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
