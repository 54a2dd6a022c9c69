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

	"github.com/bitmark-inc/statestore/codec"
	"github.com/bitmark-inc/statestore/fault"
	"github.com/bitmark-inc/statestore/hashing"
	"github.com/bitmark-inc/statestore/metadata"
	"github.com/bitmark-inc/statestore/types"
)

type grants = types.DoubleMap[string, uint32, uint64, types.Option[uint64]]

func newGrants(hasher1 hashing.Hasher, hasher2 hashing.Hasher) *grants {
	return types.NewDoubleMap(
		types.NewInstance(testModule, "Grants"),
		hasher1,
		codec.Scale[string](),
		hasher2,
		codec.Scale[uint32](),
		codec.Scale[uint64](),
		types.OptionQuery[uint64](),
		nil,
	)
}

func TestDoubleMapReadWrite(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	g := newGrants(hashing.NewBlake2_128Concat(), hashing.NewTwox64Concat())

	require.NoError(t, g.Insert(db, "alice", 1, 100))

	v, err := g.Get(db, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, types.Some[uint64](100), v)

	v, err = g.Get(db, "alice", 2)
	require.NoError(t, err)
	assert.True(t, v.IsNone())

	v, err = g.Get(db, "bob", 1)
	require.NoError(t, err)
	assert.True(t, v.IsNone())

	err = g.Mutate(db, "alice", 1, func(q *types.Option[uint64]) {
		*q = types.Some(q.UnwrapOr(0) + 1)
	})
	require.NoError(t, err)
	v, _ = g.Get(db, "alice", 1)
	assert.Equal(t, types.Some[uint64](101), v)

	taken, err := g.Take(db, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, types.Some[uint64](101), taken)
	ok, err := g.ContainsKey(db, "alice", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDoubleMapHashedKeyLayout(t *testing.T) {
	g := newGrants(hashing.NewBlake2_128Concat(), hashing.NewTwox64Concat())

	key, err := g.HashedKey("a", 9)
	require.NoError(t, err)

	k1 := []byte{0x04, 'a'}
	k2 := []byte{9, 0, 0, 0}
	expected := types.NamespacePrefix(types.NewInstance(testModule, "Grants"))
	expected = append(expected, hashing.NewBlake2_128Concat().Hash(k1)...)
	expected = append(expected, hashing.NewTwox64Concat().Hash(k2)...)
	assert.Equal(t, expected, key)
}

func TestDoubleMapIteration(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	g := newGrants(hashing.NewBlake2_128Concat(), hashing.NewTwox64Concat())

	require.NoError(t, g.Insert(db, "alice", 1, 10))
	require.NoError(t, g.Insert(db, "alice", 2, 20))
	require.NoError(t, g.Insert(db, "bob", 1, 30))

	all := map[types.Pair[string, uint32]]uint64{}
	iter := g.Iter(db)
	for iter.Next() {
		all[iter.Key()] = iter.Value()
	}
	iter.Release()
	require.NoError(t, iter.Err())
	assert.Equal(t, map[types.Pair[string, uint32]]uint64{
		{Key1: "alice", Key2: 1}: 10,
		{Key1: "alice", Key2: 2}: 20,
		{Key1: "bob", Key2: 1}:   30,
	}, all)

	alice := map[uint32]uint64{}
	pi := g.IterPrefix(db, "alice")
	for pi.Next() {
		alice[pi.Key()] = pi.Value()
	}
	pi.Release()
	require.NoError(t, pi.Err())
	assert.Equal(t, map[uint32]uint64{1: 10, 2: 20}, alice)

	values := []uint64{}
	vi := g.IterPrefixValues(db, "bob")
	for vi.Next() {
		values = append(values, vi.Value())
	}
	vi.Release()
	require.NoError(t, vi.Err())
	assert.Equal(t, []uint64{30}, values)
}

func TestDoubleMapRemovePrefix(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	g := newGrants(hashing.NewBlake2_128Concat(), hashing.NewTwox64Concat())

	require.NoError(t, g.Insert(db, "alice", 1, 10))
	require.NoError(t, g.Insert(db, "alice", 2, 20))
	require.NoError(t, g.Insert(db, "bob", 1, 30))

	n, err := g.RemovePrefix(db, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ok, _ := g.ContainsKey(db, "alice", 2)
	assert.False(t, ok)
	ok, _ = g.ContainsKey(db, "bob", 1)
	assert.True(t, ok)

	n, err = g.RemoveAll(db)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDoubleMapOpaqueHashers(t *testing.T) {
	db := openMemory(t)
	defer db.Close()

	// opaque first hasher: full enumeration fails, per key1 still works
	g := newGrants(hashing.NewTwox128(), hashing.NewTwox64Concat())
	require.NoError(t, g.Insert(db, "alice", 1, 10))

	iter := g.Iter(db)
	assert.False(t, iter.Next())
	assert.True(t, errors.Is(iter.Err(), fault.ErrHasherNotReversible), "wrong error: %v", iter.Err())
	iter.Release()

	pi := g.IterPrefix(db, "alice")
	require.True(t, pi.Next())
	assert.Equal(t, uint32(1), pi.Key())
	assert.Equal(t, uint64(10), pi.Value())
	assert.False(t, pi.Next())
	pi.Release()
	require.NoError(t, pi.Err())

	// opaque second hasher: per key1 enumeration fails, values remain
	h := newGrants(hashing.NewBlake2_128Concat(), hashing.NewBlake2_128())
	require.NoError(t, h.Insert(db, "carol", 3, 40))

	pi = h.IterPrefix(db, "carol")
	assert.False(t, pi.Next())
	assert.True(t, errors.Is(pi.Err(), fault.ErrHasherNotReversible), "wrong error: %v", pi.Err())

	vi := h.IterPrefixValues(db, "carol")
	require.True(t, vi.Next())
	assert.Equal(t, uint64(40), vi.Value())
	assert.Equal(t, 16, len(vi.Key()))
	vi.Release()
}

func TestDoubleMapDescriptor(t *testing.T) {
	d := newGrants(hashing.NewBlake2_128Concat(), hashing.NewTwox64Concat()).Descriptor()

	assert.Equal(t, "Grants", d.Name)
	assert.Equal(t, metadata.Optional, d.Modifier)
	assert.Equal(t, metadata.DoubleMap, d.Type)
	assert.Equal(t, []hashing.Kind{hashing.Blake2_128Concat, hashing.Twox64Concat}, d.Hashers)
}
