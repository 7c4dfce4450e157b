// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transfer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/state"
	"github.com/zkarb/zkarbvm/storage"
)

var (
	mint  = codec.Address{0x10}
	alice = codec.Address{0x11}
	bob   = codec.Address{0x12}
)

func setup(t *testing.T) *state.Memory {
	require := require.New(t)
	ctx := context.Background()
	mu := state.NewMemory()
	require.NoError(storage.SetMintSupply(ctx, mu, mint, 1_000))
	require.NoError(storage.SetTokenBalance(ctx, mu, mint, alice, 1_000))
	require.NoError(storage.SetTokenBalance(ctx, mu, mint, bob, 0))
	return mu
}

func requireBalance(t *testing.T, mu state.Immutable, holder codec.Address, expected uint64) {
	bal, exists, err := storage.GetTokenBalance(context.Background(), mu, mint, holder)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, expected, bal)
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	p := Program{}

	tests := []struct {
		name        string
		from        codec.Address
		to          codec.Address
		authority   Authority
		amount      uint64
		expectedErr error
		alice       uint64
		bob         uint64
	}{
		{
			name:      "moves funds",
			from:      alice,
			to:        bob,
			authority: NewSigner(alice),
			amount:    400,
			alice:     600,
			bob:       400,
		},
		{
			name:      "zero amount",
			from:      alice,
			to:        bob,
			authority: NewSigner(alice),
			alice:     1_000,
		},
		{
			name:        "wrong authority",
			from:        alice,
			to:          bob,
			authority:   NewSigner(bob),
			amount:      1,
			expectedErr: ErrOwnerMismatch,
			alice:       1_000,
		},
		{
			name:        "nil authority",
			from:        alice,
			to:          bob,
			amount:      1,
			expectedErr: ErrMissingAuthority,
			alice:       1_000,
		},
		{
			name:        "insufficient funds",
			from:        alice,
			to:          bob,
			authority:   NewSigner(alice),
			amount:      1_001,
			expectedErr: ErrInsufficientFunds,
			alice:       1_000,
		},
		{
			name:        "missing destination",
			from:        alice,
			to:          codec.Address{0xff},
			authority:   NewSigner(alice),
			amount:      1,
			expectedErr: storage.ErrTokenAccountNotFound,
			alice:       1_000,
		},
		{
			name:      "self transfer",
			from:      alice,
			to:        alice,
			authority: NewSigner(alice),
			amount:    10,
			alice:     1_000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mu := setup(t)
			err := p.Transfer(ctx, mu, mint, tt.from, tt.to, tt.authority, tt.amount)
			require.ErrorIs(t, err, tt.expectedErr)
			requireBalance(t, mu, alice, tt.alice)
			requireBalance(t, mu, bob, tt.bob)
		})
	}
}

func TestBurn(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	p := Program{}
	mu := setup(t)

	require.ErrorIs(p.Burn(ctx, mu, mint, alice, NewSigner(bob), 1), ErrOwnerMismatch)
	require.ErrorIs(p.Burn(ctx, mu, mint, alice, NewSigner(alice), 1_001), ErrInsufficientFunds)
	require.ErrorIs(p.Burn(ctx, mu, codec.Address{0xee}, alice, NewSigner(alice), 1), storage.ErrTokenAccountNotFound)

	require.NoError(p.Burn(ctx, mu, mint, alice, NewSigner(alice), 250))
	requireBalance(t, mu, alice, 750)
	supply, _, err := storage.GetMintSupply(ctx, mu, mint)
	require.NoError(err)
	require.Equal(uint64(750), supply)
}
