// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/genesis"
	"github.com/zkarb/zkarbvm/storage"
)

func run(t *testing.T, args ...string) []byte {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.Bytes()
}

func TestParseAllocations(t *testing.T) {
	require := require.New(t)
	addr := codec.Address{1}.String()

	allocs, err := parseAllocations([]string{addr + "=42"})
	require.NoError(err)
	require.Equal([]*genesis.Allocation{{Address: addr, Balance: 42}}, allocs)

	_, err = parseAllocations([]string{addr})
	require.ErrorContains(err, "address=balance")
	_, err = parseAllocations([]string{"bad=1"})
	require.ErrorIs(err, codec.ErrInvalidAddress)
	_, err = parseAllocations([]string{addr + "=-1"})
	require.Error(err)
}

func TestInitializeAndQueryPool(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	admin := codec.Address{9}.String()

	b := run(t, "genesis", "--token", admin+"=1000", "--native", admin+"=50")
	g, err := genesis.Load(b)
	require.NoError(err)
	require.Len(g.TokenAllocations, 1)
	genesisFile := filepath.Join(dir, "genesis.json")
	require.NoError(os.WriteFile(genesisFile, b, 0o600))

	dataDir := filepath.Join(dir, "db")
	run(t, "initialize", "--actor", admin, "--fee-multiplier", "25", "--genesis", genesisFile, "--data-dir", dataDir)

	b = run(t, "query", "pool", "--genesis", genesisFile, "--data-dir", dataDir, "-o", "json")
	var pool storage.Pool
	require.NoError(json.Unmarshal(b, &pool))
	require.Equal(codec.MustParseAddress(admin), pool.Admin)
	require.Equal(uint64(25), pool.DynamicFeeMultiplier)
}
