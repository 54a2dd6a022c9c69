// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/statestore/fault"
	"github.com/bitmark-inc/statestore/storage"
	"github.com/bitmark-inc/statestore/storage/mocks"
)

func TestOverlayBeginShouldErrorWhenAlreadyInTransaction(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	o := storage.NewOverlay(db)

	require.NoError(t, o.Begin())
	assert.True(t, o.InUse())
	assert.Equal(t, fault.ErrTransactionInUse, o.Begin())

	o.Abort()
	assert.False(t, o.InUse())
	assert.NoError(t, o.Begin())
}

func TestOverlayWriteOutsideTransaction(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	o := storage.NewOverlay(db)

	assert.Equal(t, fault.ErrNoTransaction, o.Put([]byte("k"), []byte("v")))
	assert.Equal(t, fault.ErrNoTransaction, o.Remove([]byte("k")))
	assert.Equal(t, fault.ErrNoTransaction, o.Commit())
}

func TestOverlayReadsPendingThenBase(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	require.NoError(t, db.Put([]byte("base"), []byte("base-value")))
	require.NoError(t, db.Put([]byte("gone"), []byte("gone-value")))

	o := storage.NewOverlay(db)
	require.NoError(t, o.Begin())
	require.NoError(t, o.Put([]byte("new"), []byte("new-value")))
	require.NoError(t, o.Remove([]byte("gone")))

	value, found, err := o.Get([]byte("base"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("base-value"), value)

	value, found, err = o.Get([]byte("new"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("new-value"), value)

	_, found, err = o.Get([]byte("gone"))
	require.NoError(t, err)
	assert.False(t, found, "pending delete must hide the base value")

	// base is untouched until commit
	_, found, _ = db.Get([]byte("new"))
	assert.False(t, found)

	require.NoError(t, o.Commit())

	value, found, _ = db.Get([]byte("new"))
	assert.True(t, found)
	assert.Equal(t, []byte("new-value"), value)
	_, found, _ = db.Get([]byte("gone"))
	assert.False(t, found)
}

func TestOverlayAbortDiscards(t *testing.T) {
	db := openMemory(t)
	defer db.Close()

	o := storage.NewOverlay(db)
	require.NoError(t, o.Begin())
	require.NoError(t, o.Put([]byte("k"), []byte("v")))
	o.Abort()

	_, found, err := o.Get([]byte("k"))
	require.NoError(t, err)
	assert.False(t, found)
	_, found, _ = db.Get([]byte("k"))
	assert.False(t, found)
}

func TestOverlayIterateMergesChanges(t *testing.T) {
	db := openMemory(t)
	defer db.Close()

	require.NoError(t, db.Put([]byte("P/key-five"), []byte("data-five")))
	require.NoError(t, db.Put([]byte("P/key-one"), []byte("data-one")))
	require.NoError(t, db.Put([]byte("P/key-zero"), []byte("data-zero")))

	o := storage.NewOverlay(db)
	require.NoError(t, o.Begin())
	populate(t, o, "P/")
	require.NoError(t, o.Remove([]byte("P/key-zero")))

	assert.Equal(t, expectedElements, collect(t, o, "P/"))

	require.NoError(t, o.Commit())
	assert.Equal(t, expectedElements, collect(t, db, "P/"))
}

func TestOverlayCommitReplaysIntoPlainEngine(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockEngine(ctl)
	gomock.InOrder(
		m.EXPECT().Put([]byte("a"), []byte("1")).Return(nil).Times(1),
		m.EXPECT().Remove([]byte("b")).Return(nil).Times(1),
	)

	o := storage.NewOverlay(m)
	require.NoError(t, o.Begin())
	require.NoError(t, o.Put([]byte("a"), []byte("1")))
	require.NoError(t, o.Remove([]byte("b")))
	require.NoError(t, o.Commit())
	assert.False(t, o.InUse())
}

func TestOverlayCommitError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	failure := errors.New("disk full")
	m := mocks.NewMockEngine(ctl)
	m.EXPECT().Put(gomock.Any(), gomock.Any()).Return(failure).Times(1)

	o := storage.NewOverlay(m)
	require.NoError(t, o.Begin())
	require.NoError(t, o.Put([]byte("a"), []byte("1")))
	require.NoError(t, o.Put([]byte("b"), []byte("2")))
	assert.Equal(t, failure, o.Commit())
	assert.False(t, o.InUse(), "failed commit still ends the transition")
}

func TestOverlayIterateBaseError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	failure := errors.New("bad block")
	iter := mocks.NewMockIterator(ctl)
	iter.EXPECT().Next().Return(false)
	iter.EXPECT().Release()
	iter.EXPECT().Error().Return(failure)

	m := mocks.NewMockEngine(ctl)
	m.EXPECT().IteratePrefix([]byte("P/")).Return(iter)

	o := storage.NewOverlay(m)
	i := o.IteratePrefix([]byte("P/"))
	assert.False(t, i.Next())
	assert.Equal(t, failure, i.Error())
}
