// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkarb/zkarbvm/chain"
	"github.com/zkarb/zkarbvm/codec"
)

func TestEncodeEventLayout(t *testing.T) {
	require := require.New(t)

	b, err := EncodeEvent(&ArbitrageExecuted{Trader: alice, Amount: 1_000, Profit: 90})
	require.NoError(err)
	require.Len(b, 8+codec.AddressLen+8+8)

	h := sha256.Sum256([]byte("event:ArbitrageExecuted"))
	require.Equal(h[:8], b[:8])
	require.Equal(alice[:], b[8:40])
	require.Equal(uint64(1_000), binary.LittleEndian.Uint64(b[40:48]))
	require.Equal(uint64(90), binary.LittleEndian.Uint64(b[48:56]))
}

func TestEventIdentities(t *testing.T) {
	require := require.New(t)

	events := []chain.Event{
		&StakeDeposited{},
		&StakeWithdrawn{},
		&BonusRewardEligible{},
		&LiquidityDeposited{},
		&LiquidityRemoved{},
		&LiquidityProviderApproved{},
		&ArbitrageExecuted{},
		&LiquidityRebalanced{},
		&FeeMultiplierUpdated{},
		&FeeTokensBurned{},
	}
	ids := map[uint8]struct{}{}
	for _, e := range events {
		require.Equal(fmt.Sprintf("%T", e)[len("*actions."):], e.Name())
		ids[e.GetTypeID()] = struct{}{}

		b, err := EncodeEvent(e)
		require.NoError(err)
		d := codec.NewDiscriminator("event", e.Name())
		require.Equal(d[:], b[:8])
	}
	require.Len(ids, len(events))
}
