// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/keys"
	"github.com/zkarb/zkarbvm/state"
)

// [tokenAccountPrefix] + [mint] + [holder] + [chunks]
func TokenAccountKey(mint codec.Address, holder codec.Address) []byte {
	k := make([]byte, 0, 1+2*codec.AddressLen)
	k = append(k, tokenAccountPrefix)
	k = append(k, mint[:]...)
	k = append(k, holder[:]...)
	return keys.EncodeChunks(k, BalanceChunks)
}

// [mintPrefix] + [mint] + [chunks]
func MintKey(mint codec.Address) []byte {
	return prefixedKey(mintPrefix, mint)
}

// [lamportsPrefix] + [address] + [chunks]
func LamportsKey(addr codec.Address) []byte {
	return prefixedKey(lamportsPrefix, addr)
}

func prefixedKey(prefix byte, addr codec.Address) []byte {
	return keys.EncodeChunks(append([]byte{prefix}, addr[:]...), BalanceChunks)
}

// GetTokenBalance returns false if the token account does not exist.
func GetTokenBalance(ctx context.Context, im state.Immutable, mint codec.Address, holder codec.Address) (uint64, bool, error) {
	return getUint64(ctx, im, TokenAccountKey(mint, holder))
}

func SetTokenBalance(ctx context.Context, mu state.Mutable, mint codec.Address, holder codec.Address, balance uint64) error {
	return setUint64(ctx, mu, TokenAccountKey(mint, holder), balance)
}

// GetMintSupply returns false if the mint does not exist.
func GetMintSupply(ctx context.Context, im state.Immutable, mint codec.Address) (uint64, bool, error) {
	return getUint64(ctx, im, MintKey(mint))
}

func SetMintSupply(ctx context.Context, mu state.Mutable, mint codec.Address, supply uint64) error {
	return setUint64(ctx, mu, MintKey(mint), supply)
}

// GetLamports returns false if the native account does not exist.
func GetLamports(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, bool, error) {
	return getUint64(ctx, im, LamportsKey(addr))
}

func SetLamports(ctx context.Context, mu state.Mutable, addr codec.Address, lamports uint64) error {
	return setUint64(ctx, mu, LamportsKey(addr), lamports)
}

func getUint64(ctx context.Context, im state.Immutable, key []byte) (uint64, bool, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	val, err := database.ParseUInt64(v)
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func setUint64(ctx context.Context, mu state.Mutable, key []byte, v uint64) error {
	return mu.Insert(ctx, key, database.PackUInt64(v))
}
