// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"sort"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/statestore/fault"
)

// batchWriter - an engine that can apply a whole batch atomically
type batchWriter interface {
	Write(*leveldb.Batch) error
}

// Overlay - buffers the writes of one state transition
//
// reads see the pending writes first then fall through to the base
// engine; writes outside Begin/Commit are refused.  Only one transition
// may be in progress: Begin fails while another is open.
type Overlay struct {
	sync.Mutex
	inUse bool
	base  Engine
	batch *leveldb.Batch
	cache Cache
	log   *logger.L
}

// NewOverlay - create an overlay on top of an engine
func NewOverlay(base Engine) *Overlay {
	return &Overlay{
		inUse: false,
		base:  base,
		batch: new(leveldb.Batch),
		cache: newCache(),
		log:   logger.New("overlay"),
	}
}

// Begin - start a transition
func (o *Overlay) Begin() error {
	o.Lock()
	defer o.Unlock()

	if o.inUse {
		return fault.ErrTransactionInUse
	}

	o.inUse = true
	return nil
}

// InUse - true while a transition is open
func (o *Overlay) InUse() bool {
	o.Lock()
	defer o.Unlock()
	return o.inUse
}

// Commit - write all pending changes to the base engine and end the transition
func (o *Overlay) Commit() error {
	o.Lock()
	defer o.Unlock()

	if !o.inUse {
		return fault.ErrNoTransaction
	}

	count := o.batch.Len()

	var err error
	if w, ok := o.base.(batchWriter); ok {
		err = w.Write(o.batch)
	} else {
		r := &replay{engine: o.base}
		err = o.batch.Replay(r)
		if nil == err {
			err = r.err
		}
	}

	o.reset()

	if nil != err {
		o.log.Errorf("commit of %d changes failed: %s", count, err)
		return err
	}
	o.log.Debugf("committed %d changes", count)
	return nil
}

// Abort - discard all pending changes and end the transition
func (o *Overlay) Abort() {
	o.Lock()
	defer o.Unlock()

	if o.inUse {
		o.log.Debugf("aborted %d changes", o.batch.Len())
	}
	o.reset()
}

func (o *Overlay) reset() {
	o.batch.Reset()
	o.cache.Clear()
	o.inUse = false
}

// Get - pending value, else the base value
func (o *Overlay) Get(key []byte) ([]byte, bool, error) {
	value, found, deleted := o.cache.Get(string(key))
	if deleted {
		return nil, false, nil
	}
	if found {
		return clone(value), true, nil
	}
	return o.base.Get(key)
}

// Put - buffer a write
func (o *Overlay) Put(key []byte, value []byte) error {
	o.Lock()
	defer o.Unlock()

	if !o.inUse {
		return fault.ErrNoTransaction
	}
	o.cache.Set(dbPut, string(key), clone(value))
	o.batch.Put(key, value)
	return nil
}

// Remove - buffer a delete
func (o *Overlay) Remove(key []byte) error {
	o.Lock()
	defer o.Unlock()

	if !o.inUse {
		return fault.ErrNoTransaction
	}
	o.cache.Set(dbDelete, string(key), nil)
	o.batch.Delete(key)
	return nil
}

// IteratePrefix - the base entries under prefix merged with pending changes
//
// the result is collected before the first Next so it is a consistent
// view even if the transition writes during iteration
func (o *Overlay) IteratePrefix(prefix []byte) Iterator {
	changes := o.cache.Changes(string(prefix))

	elements := make([]Element, 0, len(changes))

	iter := o.base.IteratePrefix(prefix)
	for iter.Next() {
		key := iter.Key()
		if _, changed := changes[string(key)]; changed {
			continue
		}
		elements = append(elements, Element{
			Key:   clone(key),
			Value: clone(iter.Value()),
		})
	}
	iter.Release()
	if err := iter.Error(); nil != err {
		return newElementIterator(nil, err)
	}

	for key, data := range changes {
		if dbPut == data.op {
			elements = append(elements, Element{
				Key:   []byte(key),
				Value: clone(data.value),
			})
		}
	}

	sort.Slice(elements, func(i, j int) bool {
		return bytes.Compare(elements[i].Key, elements[j].Key) < 0
	})

	return newElementIterator(elements, nil)
}

// replays a batch into an engine without batch support
type replay struct {
	engine Engine
	err    error
}

func (r *replay) Put(key []byte, value []byte) {
	if nil == r.err {
		r.err = r.engine.Put(key, value)
	}
}

func (r *replay) Delete(key []byte) {
	if nil == r.err {
		r.err = r.engine.Remove(key)
	}
}
