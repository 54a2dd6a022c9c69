// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"strings"

	cache "github.com/patrickmn/go-cache"
)

// Cache - pending changes of a transition, keyed by the raw key
type Cache interface {
	Get(string) ([]byte, bool, bool)
	Set(dbOperation, string, []byte)
	Changes(prefix string) map[string]cacheData
	Clear()
}

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    dbOperation
	value []byte
}

// pending changes must stay visible until commit or abort
func newCache() *dbCache {
	return &dbCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Get - returns value, found, deleted
//
// a deleted key is reported as found with deleted set so that the
// caller does not fall back to the underlying engine
func (c *dbCache) Get(key string) ([]byte, bool, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false, false
	}

	data := obj.(cacheData)
	if dbDelete == data.op {
		return nil, true, true
	}

	return data.value, true, false
}

func (c *dbCache) Set(op dbOperation, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, cache.NoExpiration)
}

// Changes - all pending changes whose key starts with prefix
func (c *dbCache) Changes(prefix string) map[string]cacheData {
	result := make(map[string]cacheData)
	for key, item := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			result[key] = item.Object.(cacheData)
		}
	}
	return result
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
