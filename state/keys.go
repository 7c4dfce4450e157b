// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Keys is the footprint of an operation: every key it may touch and how.
// Use [Keys.Add] instead of assigning directly so permissions requested by
// different parts of an operation are merged rather than overwritten.
type Keys map[string]Permissions

// Permissions is a bit set of Read/Allocate/Write.
type Permissions byte

func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}

func (p Permissions) String() string {
	switch p {
	case None:
		return "none"
	case Read:
		return "read"
	case Allocate:
		return "allocate"
	case Write:
		return "write"
	case All:
		return "all"
	default:
		return "mixed"
	}
}
