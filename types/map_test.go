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
	"github.com/bitmark-inc/statestore/storage"
	"github.com/bitmark-inc/statestore/types"
)

func TestMapOptionReadWrite(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	names := newNames("Names", hashing.NewTwox64Concat())

	v, err := names.Get(db, 7)
	require.NoError(t, err)
	assert.True(t, v.IsNone())

	require.NoError(t, names.Insert(db, 7, "x"))

	v, err = names.Get(db, 7)
	require.NoError(t, err)
	assert.Equal(t, types.Some("x"), v)

	v, err = names.Get(db, 8)
	require.NoError(t, err)
	assert.True(t, v.IsNone(), "other keys must be unaffected")

	ok, err := names.ContainsKey(db, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, names.Remove(db, 7))
	ok, err = names.ContainsKey(db, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMapHashedKeyLayout(t *testing.T) {
	names := newNames("Names", hashing.NewTwox64Concat())

	key, err := names.HashedKey(7)
	require.NoError(t, err)

	encoded := []byte{7, 0, 0, 0}
	expected := append(types.NamespacePrefix(types.NewInstance(testModule, "Names")), hashing.NewTwox64Concat().Hash(encoded)...)
	assert.Equal(t, expected, key)
	assert.Equal(t, 32+8+4, len(key))
	assert.Equal(t, encoded, key[40:], "key must end with the encoded key")
}

func TestMapEnumerationExcludesOtherMaps(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	names := newNames("Names", hashing.NewBlake2_128Concat())
	others := newNames("Others", hashing.NewBlake2_128Concat())

	expected := map[uint32]string{
		1:    "one",
		20:   "twenty",
		3000: "three thousand",
	}
	for k, v := range expected {
		require.NoError(t, names.Insert(db, k, v))
	}
	require.NoError(t, others.Insert(db, 1, "not this one"))
	require.NoError(t, others.Insert(db, 4, "nor this"))

	actual := map[uint32]string{}
	iter := names.Iter(db)
	defer iter.Release()
	for iter.Next() {
		actual[iter.Key()] = iter.Value()
	}
	require.NoError(t, iter.Err())
	assert.Equal(t, expected, actual)

	// restartable
	count := 0
	again := names.Iter(db)
	for again.Next() {
		count += 1
	}
	again.Release()
	assert.Equal(t, len(expected), count)
}

func TestMapEnumerationNeedsReversibleHasher(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	names := newNames("Opaque", hashing.NewBlake2_256())
	require.NoError(t, names.Insert(db, 1, "one"))
	require.NoError(t, names.Insert(db, 2, "two"))

	iter := names.Iter(db)
	assert.False(t, iter.Next())
	assert.True(t, errors.Is(iter.Err(), fault.ErrHasherNotReversible), "wrong error: %v", iter.Err())
	iter.Release()

	// values are still reachable
	values := []string{}
	vi := names.IterValues(db)
	for vi.Next() {
		assert.Equal(t, 32, len(vi.Key()), "raw suffix is the blake2_256 digest")
		values = append(values, vi.Value())
	}
	vi.Release()
	require.NoError(t, vi.Err())
	assert.ElementsMatch(t, []string{"one", "two"}, values)
}

func TestMapIdentityHasher(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	tags := types.NewMap(
		types.NewInstance(testModule, "Tags"),
		hashing.NewIdentity(),
		codec.Bytes(),
		codec.Varint(),
		types.ValueQuery[uint64](),
		nil,
	)

	require.NoError(t, tags.Insert(db, []byte("alpha"), 1))
	require.NoError(t, tags.Insert(db, []byte("beta"), 300))

	iter := tags.Iter(db)
	defer iter.Release()
	got := map[string]uint64{}
	for iter.Next() {
		got[string(iter.Key())] = iter.Value()
	}
	require.NoError(t, iter.Err())
	assert.Equal(t, map[string]uint64{"alpha": 1, "beta": 300}, got)
}

func TestMapSwap(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	names := newNames("Names", hashing.NewTwox64Concat())

	require.NoError(t, names.Insert(db, 1, "one"))
	require.NoError(t, names.Insert(db, 2, "two"))
	require.NoError(t, names.Swap(db, 1, 2))

	v, _ := names.Get(db, 1)
	assert.Equal(t, types.Some("two"), v)
	v, _ = names.Get(db, 2)
	assert.Equal(t, types.Some("one"), v)

	// swapping with an absent key moves the value
	require.NoError(t, names.Swap(db, 2, 3))
	v, _ = names.Get(db, 2)
	assert.True(t, v.IsNone())
	v, _ = names.Get(db, 3)
	assert.Equal(t, types.Some("one"), v)
}

func TestMapTakeAndMutate(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	names := newNames("Names", hashing.NewTwox64Concat())

	// mutate an absent entry into existence
	err := names.Mutate(db, 5, func(q *types.Option[string]) {
		assert.True(t, q.IsNone())
		*q = types.Some("five")
	})
	require.NoError(t, err)

	v, err := names.Take(db, 5)
	require.NoError(t, err)
	assert.Equal(t, types.Some("five"), v)

	ok, err := names.ContainsKey(db, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	// mutating to None removes
	require.NoError(t, names.Insert(db, 6, "six"))
	err = names.Mutate(db, 6, func(q *types.Option[string]) {
		*q = types.None[string]()
	})
	require.NoError(t, err)
	ok, _ = names.ContainsKey(db, 6)
	assert.False(t, ok)
}

func TestMapRemoveAll(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	names := newNames("Names", hashing.NewTwox64Concat())
	others := newNames("Others", hashing.NewTwox64Concat())

	for i := uint32(0); i < 5; i += 1 {
		require.NoError(t, names.Insert(db, i, "n"))
	}
	require.NoError(t, others.Insert(db, 1, "keep"))

	n, err := names.RemoveAll(db)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	iter := names.IterValues(db)
	assert.False(t, iter.Next())
	iter.Release()

	v, _ := others.Get(db, 1)
	assert.Equal(t, types.Some("keep"), v)
}

func TestMapCorruptValueStopsEnumeration(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	counts := types.NewMap(
		types.NewInstance(testModule, "Counts"),
		hashing.NewTwox64Concat(),
		codec.Scale[uint32](),
		codec.Scale[uint32](),
		types.ValueQuery[uint32](),
		nil,
	)
	key, err := counts.HashedKey(1)
	require.NoError(t, err)
	require.NoError(t, db.Put(key, []byte{1, 2, 3, 4, 5}))

	_, err = counts.Get(db, 1)
	assert.True(t, errors.Is(err, fault.ErrCorruptValue), "wrong error: %v", err)

	iter := counts.Iter(db)
	assert.False(t, iter.Next())
	assert.True(t, errors.Is(iter.Err(), fault.ErrCorruptValue), "wrong error: %v", iter.Err())
	iter.Release()
}

func TestMapThroughOverlay(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	names := newNames("Names", hashing.NewTwox64Concat())
	require.NoError(t, names.Insert(db, 1, "committed"))

	o := storage.NewOverlay(db)
	require.NoError(t, o.Begin())
	require.NoError(t, names.Insert(o, 2, "pending"))
	require.NoError(t, names.Remove(o, 1))

	got := map[uint32]string{}
	iter := names.Iter(o)
	for iter.Next() {
		got[iter.Key()] = iter.Value()
	}
	iter.Release()
	require.NoError(t, iter.Err())
	assert.Equal(t, map[uint32]string{2: "pending"}, got)

	o.Abort()
	v, err := names.Get(db, 1)
	require.NoError(t, err)
	assert.Equal(t, types.Some("committed"), v)
	v, err = names.Get(db, 2)
	require.NoError(t, err)
	assert.True(t, v.IsNone())
}

func TestMapDescriptor(t *testing.T) {
	d := newNames("Names", hashing.NewTwox64Concat()).Descriptor()

	assert.Equal(t, "Names", d.Name)
	assert.Equal(t, metadata.Optional, d.Modifier)
	assert.Equal(t, metadata.Map, d.Type)
	assert.Equal(t, []hashing.Kind{hashing.Twox64Concat}, d.Hashers)

	b, err := d.Default.DefaultBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, b)
}
