// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/consts"
)

var (
	program = codec.MustParseAddress(consts.ProgramID)
	pool    = codec.Address{0xaa, 0xbb}
)

func TestDeriveAll(t *testing.T) {
	require := require.New(t)

	bindings, err := DeriveAll(program, pool)
	require.NoError(err)
	require.Len(bindings, len(Roles))

	seen := map[codec.Address]struct{}{}
	for i, b := range bindings {
		require.Equal(Roles[i], b.Role)
		seen[b.Address] = struct{}{}

		bound, err := Bind(program, pool, b.Role, b.Bump)
		require.NoError(err)
		require.Equal(b, bound)
	}
	// Every role gets its own vault
	require.Len(seen, len(Roles))
}

func TestDeriveScopedToPool(t *testing.T) {
	require := require.New(t)

	a, err := Derive(program, pool, Staking)
	require.NoError(err)
	b, err := Derive(program, codec.Address{0xcc}, Staking)
	require.NoError(err)
	require.NotEqual(a.Address, b.Address)
}

func TestUnknownRole(t *testing.T) {
	require := require.New(t)

	_, err := Derive(program, pool, Role(9))
	require.ErrorIs(err, ErrUnknownRole)
	_, err = NewAuthority(program, pool, Role(9), 255)
	require.ErrorIs(err, ErrUnknownRole)
	require.Equal("unknown", Role(9).String())
}

func TestNewAuthority(t *testing.T) {
	require := require.New(t)

	b, err := Derive(program, pool, Fee)
	require.NoError(err)

	auth, err := NewAuthority(program, pool, Fee, b.Bump)
	require.NoError(err)
	require.Equal(b.Address, auth.Key())
	require.Equal(Fee, auth.Role())
	require.Equal(pool, auth.Pool())
	require.Contains(auth.String(), "fee")
}
