// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"crypto/sha256"

	"github.com/zkarb/zkarbvm/consts"
)

// Discriminator is the 8 byte type tag written in front of persisted
// accounts ("account") and emitted events ("event").
type Discriminator [consts.DiscriminatorLen]byte

// NewDiscriminator returns the first 8 bytes of sha256("<namespace>:<name>").
func NewDiscriminator(namespace string, name string) Discriminator {
	h := sha256.Sum256([]byte(namespace + ":" + name))
	var d Discriminator
	copy(d[:], h[:consts.DiscriminatorLen])
	return d
}
