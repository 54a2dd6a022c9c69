// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/statestore/fault"
	"github.com/bitmark-inc/statestore/hashing"
	"github.com/bitmark-inc/statestore/metadata"
	"github.com/bitmark-inc/statestore/types"
)

// an entry with a forced prefix
type fixedEntry struct {
	instance types.Instance
	prefix   []byte
}

func (f fixedEntry) Instance() types.StorageInstance { return f.instance }
func (f fixedEntry) Prefix() []byte { return f.prefix }
func (f fixedEntry) Descriptor() metadata.Descriptor { return metadata.Descriptor{Name: f.instance.StoragePrefix()} }

func TestModuleRegister(t *testing.T) {
	m := types.NewModule(testModule)
	counter := newCounter()
	names := newNames("Names", hashing.NewTwox64Concat())
	g := newGrants(hashing.NewBlake2_128Concat(), hashing.NewTwox64Concat())

	require.NoError(t, m.Register(counter, names, g))

	entries := m.Entries()
	require.Equal(t, 3, len(entries))
	assert.Equal(t, "Counter", entries[0].Instance().StoragePrefix())
	assert.Equal(t, "Grants", entries[2].Instance().StoragePrefix())

	e, err := m.Lookup("Names")
	require.NoError(t, err)
	assert.Equal(t, names.Prefix(), e.Prefix())

	_, err = m.Lookup("Missing")
	assert.True(t, errors.Is(err, fault.ErrUnknownStorage), "wrong error: %v", err)

	md := m.Metadata()
	assert.Equal(t, testModule, md.Name)
	require.Equal(t, 3, len(md.Entries))
	assert.Equal(t, "Counter", md.Entries[0].Name)
	assert.Equal(t, metadata.Map, md.Entries[1].Type)
	assert.Equal(t, metadata.DoubleMap, md.Entries[2].Type)
}

func TestModuleDuplicateName(t *testing.T) {
	m := types.NewModule(testModule)
	require.NoError(t, m.Register(newNames("Names", hashing.NewTwox64Concat())))

	err := m.Register(newCounter(), newNames("Names", hashing.NewBlake2_128Concat()))
	assert.True(t, errors.Is(err, fault.ErrDuplicateStorage), "wrong error: %v", err)
	assert.True(t, fault.IsErrExists(err))

	// nothing from the failed call is kept
	assert.Equal(t, 1, len(m.Entries()))

	err = types.NewModule(testModule).Register(newCounter(), newCounter())
	assert.True(t, errors.Is(err, fault.ErrDuplicateStorage), "wrong error: %v", err)
}

func TestModuleDuplicatePrefix(t *testing.T) {
	m := types.NewModule(testModule)
	counter := newCounter()
	require.NoError(t, m.Register(counter))

	clash := fixedEntry{
		instance: types.NewInstance(testModule, "Clash"),
		prefix:   counter.Prefix(),
	}
	err := m.Register(clash)
	assert.True(t, errors.Is(err, fault.ErrDuplicateStorage), "wrong error: %v", err)
}

func TestModuleRejectsInvalidEntries(t *testing.T) {
	m := types.NewModule(testModule)

	empty := fixedEntry{
		instance: types.NewInstance(testModule, ""),
		prefix:   []byte{1},
	}
	err := m.Register(empty)
	assert.True(t, errors.Is(err, fault.ErrEmptyStorageName), "wrong error: %v", err)

	foreign := fixedEntry{
		instance: types.NewInstance("Other", "Thing"),
		prefix:   []byte{2},
	}
	err = m.Register(foreign)
	assert.True(t, errors.Is(err, fault.ErrModuleMismatch), "wrong error: %v", err)
}
