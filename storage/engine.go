// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

//go:generate mockgen -source=engine.go -destination=mocks/engine.go -package=mocks

// Engine - raw access to an ordered key/value store
//
// Get returns found == false for a missing key, never an error
type Engine interface {
	Get(key []byte) (value []byte, found bool, err error)
	Put(key []byte, value []byte) error
	Remove(key []byte) error
	IteratePrefix(prefix []byte) Iterator
}

// Iterator - forward iteration over a key range
//
// the slices returned by Key and Value are only valid until the next
// call to Next; Error must be checked after Release
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// an iterator over a sorted, already copied set of elements
type elementIterator struct {
	elements []Element
	index    int
	err      error
}

func newElementIterator(elements []Element, err error) *elementIterator {
	return &elementIterator{
		elements: elements,
		index:    -1,
		err:      err,
	}
}

func (i *elementIterator) Next() bool {
	if nil != i.err || i.index >= len(i.elements) {
		return false
	}
	i.index += 1
	return i.index < len(i.elements)
}

func (i *elementIterator) Key() []byte {
	if i.index < 0 || i.index >= len(i.elements) {
		return nil
	}
	return i.elements[i.index].Key
}

func (i *elementIterator) Value() []byte {
	if i.index < 0 || i.index >= len(i.elements) {
		return nil
	}
	return i.elements[i.index].Value
}

func (i *elementIterator) Release() {
	i.elements = nil
	i.index = 0
}

func (i *elementIterator) Error() error {
	return i.err
}

// copy a byte slice, keeping nil as nil
func clone(b []byte) []byte {
	if nil == b {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
