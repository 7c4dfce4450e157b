// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/ava-labs/avalanchego/database"
	"github.com/near/borsh-go"

	"github.com/zkarb/zkarbvm/codec"
	"github.com/zkarb/zkarbvm/consts"
	"github.com/zkarb/zkarbvm/keys"
	"github.com/zkarb/zkarbvm/state"
)

// [accountPrefix] + [address] + [chunks]
func accountKey(addr codec.Address, chunks uint16) []byte {
	return keys.EncodeChunks(append([]byte{accountPrefix}, addr[:]...), chunks)
}

// encodeAccount lays out [v] the way the execution environment persists
// program accounts: an 8 byte discriminator followed by the borsh encoding
// of the fields in declaration order.
//
// borsh encodes pointers as options, so [v] is always dereferenced first.
func encodeAccount(name string, v any) ([]byte, error) {
	body, err := borsh.Serialize(reflect.Indirect(reflect.ValueOf(v)).Interface())
	if err != nil {
		return nil, err
	}
	d := codec.NewDiscriminator("account", name)
	out := make([]byte, 0, len(d)+len(body))
	out = append(out, d[:]...)
	return append(out, body...), nil
}

func decodeAccount(name string, size int, b []byte, v any) error {
	if len(b) != consts.DiscriminatorLen+size {
		return fmt.Errorf("%w: %s has %d bytes", ErrInvalidAccountData, name, len(b))
	}
	d := codec.NewDiscriminator("account", name)
	if !bytes.Equal(d[:], b[:consts.DiscriminatorLen]) {
		return fmt.Errorf("%w: expected %s", ErrInvalidDiscriminator, name)
	}
	if err := borsh.Deserialize(v, b[consts.DiscriminatorLen:]); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAccountData, err)
	}
	return nil
}

// getAccount reads the account at [key] into [v]. It returns false if the
// account was never allocated.
func getAccount(ctx context.Context, im state.Immutable, key []byte, name string, size int, v any) (bool, error) {
	b, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, decodeAccount(name, size, b, v)
}

func setAccount(ctx context.Context, mu state.Mutable, key []byte, name string, v any) error {
	b, err := encodeAccount(name, v)
	if err != nil {
		return err
	}
	return mu.Insert(ctx, key, b)
}
