// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/statestore/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// database access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// LevelDB - a persistent engine
type LevelDB struct {
	sync.RWMutex
	db       *leveldb.DB
	readOnly bool
	log      *logger.L
}

// Open - open or create a database directory
//
// a read only database must already exist and be at the current version
func Open(name string, readOnly bool) (*LevelDB, error) {
	if "" == name {
		return nil, fault.ErrInvalidDatabaseName
	}

	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}

	return setup(db, name, readOnly)
}

// OpenMemory - a database that only lives as long as the process
func OpenMemory() (*LevelDB, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, "memory", ReadWrite)
}

func setup(db *leveldb.DB, name string, readOnly bool) (*LevelDB, error) {
	log := logger.New("storage")

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database: %s  version: %d > current version: %d", name, version, currentDBVersion)
		db.Close()
		return nil, fmt.Errorf("%w: %d > %d", fault.ErrDatabaseVersion, version, currentDBVersion)
	}

	if 0 == version {
		if readOnly {
			db.Close()
			return nil, fmt.Errorf("%w: read only database has no version", fault.ErrDatabaseVersion)
		}

		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
		version = currentDBVersion
	}

	log.Infof("opened database: %s  version: %d  read only: %t", name, version, readOnly)

	return &LevelDB{
		db:       db,
		readOnly: readOnly,
		log:      log,
	}, nil
}

// Close - close the database
func (l *LevelDB) Close() error {
	l.Lock()
	defer l.Unlock()

	if nil == l.db {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	l.log.Info("closed")
	return err
}

// Get - read the value for a key
//
// this returns a copy that may be retained by the caller
func (l *LevelDB) Get(key []byte) ([]byte, bool, error) {
	l.RLock()
	defer l.RUnlock()

	if nil == l.db {
		return nil, false, fault.ErrNotInitialised
	}
	value, err := l.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	}
	if nil != err {
		return nil, false, err
	}
	return value, true, nil
}

// Has - check if a key exists
func (l *LevelDB) Has(key []byte) (bool, error) {
	l.RLock()
	defer l.RUnlock()

	if nil == l.db {
		return false, fault.ErrNotInitialised
	}
	return l.db.Has(key, nil)
}

// Put - store a key/value pair
func (l *LevelDB) Put(key []byte, value []byte) error {
	l.RLock()
	defer l.RUnlock()

	if nil == l.db {
		return fault.ErrNotInitialised
	}
	if l.readOnly {
		return fault.ErrReadOnly
	}
	return l.db.Put(key, value, nil)
}

// Remove - delete a key, a missing key is not an error
func (l *LevelDB) Remove(key []byte) error {
	l.RLock()
	defer l.RUnlock()

	if nil == l.db {
		return fault.ErrNotInitialised
	}
	if l.readOnly {
		return fault.ErrReadOnly
	}
	return l.db.Delete(key, nil)
}

// Write - apply a batch atomically
func (l *LevelDB) Write(batch *leveldb.Batch) error {
	l.RLock()
	defer l.RUnlock()

	if nil == l.db {
		return fault.ErrNotInitialised
	}
	if l.readOnly {
		return fault.ErrReadOnly
	}
	return l.db.Write(batch, nil)
}

// IteratePrefix - iterate all keys starting with prefix in key order
func (l *LevelDB) IteratePrefix(prefix []byte) Iterator {
	l.RLock()
	defer l.RUnlock()

	if nil == l.db {
		return newElementIterator(nil, fault.ErrNotInitialised)
	}
	return l.db.NewIterator(ldb_util.BytesPrefix(prefix), nil)
}

// return the version number, 0 if not set
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("%w: expected length: %d  actual: %d", fault.ErrDatabaseVersion, 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
