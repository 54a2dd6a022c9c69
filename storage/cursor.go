// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"

	"github.com/bitmark-inc/statestore/fault"
)

// FetchCursor - paged access to the keys under a prefix
type FetchCursor struct {
	engine Engine
	prefix []byte
	start  []byte // first key suffix to return
	after  bool   // start itself was already returned
}

// NewFetchCursor - initialise a cursor to the start of a prefix
func NewFetchCursor(engine Engine, prefix []byte) *FetchCursor {
	return &FetchCursor{
		engine: engine,
		prefix: clone(prefix),
	}
}

// Seek - move cursor to specific key position (relative to the prefix)
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.start = clone(key)
	cursor.after = false
	return cursor
}

// Fetch - return up to count elements and advance the cursor
//
// element keys have the prefix stripped
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor || nil == cursor.engine {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.scan(func(key []byte, value []byte) bool {
		results = append(results, Element{
			Key:   key,
			Value: value,
		})
		return len(results) < count
	})

	if n := len(results); n > 0 {
		cursor.start = results[n-1].Key
		cursor.after = true
	}
	return results, err
}

// Map - run a function on all remaining elements
//
// stops at the first error returned by f
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor || nil == cursor.engine {
		return fault.ErrInvalidCursor
	}

	var err error
	scanErr := cursor.scan(func(key []byte, value []byte) bool {
		err = f(key, value)
		return nil == err
	})
	if nil != err {
		return err
	}
	return scanErr
}

// call f with copies of each remaining key suffix and value until it returns false
func (cursor *FetchCursor) scan(f func(key []byte, value []byte) bool) error {
	iter := cursor.engine.IteratePrefix(cursor.prefix)
	l := len(cursor.prefix)

iterating:
	for iter.Next() {
		suffix := iter.Key()[l:]

		if nil != cursor.start {
			c := bytes.Compare(suffix, cursor.start)
			if c < 0 || (0 == c && cursor.after) {
				continue iterating
			}
		}

		if !f(clone(suffix), clone(iter.Value())) {
			break iterating
		}
	}
	iter.Release()
	return iter.Error()
}
