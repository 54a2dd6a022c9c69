// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balances

import (
	"encoding/hex"
	"strings"

	"github.com/bitmark-inc/statestore/fault"
)

// AccountIDLength - bytes in an account identifier
const AccountIDLength = 32

// AccountID - a public key sized account identifier
type AccountID [AccountIDLength]byte

// AccountFromHex - parse 64 hex digits with an optional 0x prefix
func AccountFromHex(s string) (AccountID, error) {
	var id AccountID
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if nil != err || AccountIDLength != len(b) {
		return id, fault.ErrInvalidAccount
	}
	copy(id[:], b)
	return id, nil
}

// String - 0x prefixed hex
func (id AccountID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// MarshalText - as String
func (id AccountID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - as AccountFromHex
func (id *AccountID) UnmarshalText(s []byte) error {
	a, err := AccountFromHex(string(s))
	if nil != err {
		return err
	}
	*id = a
	return nil
}

// AccountData - the balances held by an account
type AccountData struct {
	Free     uint64 `json:"free"`
	Reserved uint64 `json:"reserved"`
}

// Total - free plus reserved
func (a AccountData) Total() uint64 {
	return a.Free + a.Reserved
}

// IsZero - true for an account that holds nothing
func (a AccountData) IsZero() bool {
	return 0 == a.Free && 0 == a.Reserved
}
