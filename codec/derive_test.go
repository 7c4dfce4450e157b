// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkarb/zkarbvm/consts"
)

func TestFindProgramAddress(t *testing.T) {
	require := require.New(t)

	program := MustParseAddress(consts.ProgramID)
	owner := Address{9}
	seeds := [][]byte{[]byte("stake"), owner[:]}

	addr, bump, err := FindProgramAddress(seeds, program)
	require.NoError(err)
	require.False(IsOnCurve(addr))

	// Deterministic
	again, againBump, err := FindProgramAddress(seeds, program)
	require.NoError(err)
	require.Equal(addr, again)
	require.Equal(bump, againBump)

	// The bump reproduces the address
	created, err := CreateProgramAddress(append(seeds, []byte{bump}), program)
	require.NoError(err)
	require.Equal(addr, created)

	// Bound to the program
	other, _, err := FindProgramAddress(seeds, Address{1})
	require.NoError(err)
	require.NotEqual(addr, other)

	// Bound to the seeds
	otherOwner := Address{10}
	other, _, err = FindProgramAddress([][]byte{[]byte("stake"), otherOwner[:]}, program)
	require.NoError(err)
	require.NotEqual(addr, other)
}

func TestCreateProgramAddressLimits(t *testing.T) {
	require := require.New(t)

	program := MustParseAddress(consts.ProgramID)

	_, err := CreateProgramAddress([][]byte{bytes.Repeat([]byte{1}, MaxSeedLength+1)}, program)
	require.ErrorIs(err, ErrMaxSeedLength)

	seeds := make([][]byte, MaxSeeds+1)
	for i := range seeds {
		seeds[i] = []byte{byte(i)}
	}
	_, err = CreateProgramAddress(seeds, program)
	require.ErrorIs(err, ErrTooManySeeds)

	_, _, err = FindProgramAddress(seeds[:MaxSeeds], program)
	require.ErrorIs(err, ErrTooManySeeds)
}

func TestIsOnCurve(t *testing.T) {
	require := require.New(t)

	// The program identity is an ed25519 public key.
	program := MustParseAddress(consts.ProgramID)
	require.True(IsOnCurve(program))
}
