// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/statestore/fault"
	"github.com/bitmark-inc/statestore/storage"
)

func TestFetchCursorPaging(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	populate(t, db, "P/")

	cursor := storage.NewFetchCursor(db, []byte("P/"))

	first, err := cursor.Fetch(3)
	require.NoError(t, err)
	assert.Equal(t, expectedElements[:3], first)

	second, err := cursor.Fetch(3)
	require.NoError(t, err)
	assert.Equal(t, expectedElements[3:6], second)

	third, err := cursor.Fetch(3)
	require.NoError(t, err)
	assert.Equal(t, expectedElements[6:], third)

	empty, err := cursor.Fetch(3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFetchCursorSeek(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	populate(t, db, "P/")

	cursor := storage.NewFetchCursor(db, []byte("P/")).Seek([]byte("key-s"))
	data, err := cursor.Fetch(10)
	require.NoError(t, err)
	assert.Equal(t, expectedElements[3:], data)
}

func TestFetchCursorInvalid(t *testing.T) {
	var cursor *storage.FetchCursor
	_, err := cursor.Fetch(1)
	assert.Equal(t, fault.ErrInvalidCursor, err)

	db := openMemory(t)
	defer db.Close()

	_, err = storage.NewFetchCursor(db, nil).Fetch(0)
	assert.Equal(t, fault.ErrInvalidCount, err)
}

func TestFetchCursorMap(t *testing.T) {
	db := openMemory(t)
	defer db.Close()
	populate(t, db, "P/")

	result := []storage.Element{}
	err := storage.NewFetchCursor(db, []byte("P/")).Map(func(key []byte, value []byte) error {
		result = append(result, storage.Element{Key: key, Value: value})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, expectedElements, result)

	stop := errors.New("stop")
	count := 0
	err = storage.NewFetchCursor(db, []byte("P/")).Map(func(key []byte, value []byte) error {
		count += 1
		if 2 == count {
			return stop
		}
		return nil
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 2, count)
}
