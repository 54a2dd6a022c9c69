// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/bitmark-inc/statestore/fault"
	"github.com/bitmark-inc/statestore/metadata"
)

// Entry - any declared accessor
type Entry interface {
	Instance() StorageInstance
	Prefix() []byte
	Descriptor() metadata.Descriptor
}

// Module - the entries declared under one module prefix
//
// registration rejects names or namespace prefixes that would make two
// entries share physical keys
type Module struct {
	sync.RWMutex
	prefix  string
	entries []Entry
	names   map[string]Entry
}

// NewModule - an empty registry for a module prefix
func NewModule(prefix string) *Module {
	return &Module{
		prefix:  prefix,
		entries: []Entry{},
		names:   make(map[string]Entry),
	}
}

// Prefix - the module name
func (m *Module) Prefix() string {
	return m.prefix
}

// Register - add entries in declaration order
//
// either all entries are added or, on error, none are
func (m *Module) Register(entries ...Entry) error {
	m.Lock()
	defer m.Unlock()

	seen := make(map[string]struct{})
	for _, e := range entries {
		instance := e.Instance()
		name := instance.StoragePrefix()
		if "" == name {
			return fmt.Errorf("%s: %w", m.prefix, fault.ErrEmptyStorageName)
		}
		if instance.ModulePrefix() != m.prefix {
			return fmt.Errorf("%s.%s: %w", instance.ModulePrefix(), name, fault.ErrModuleMismatch)
		}
		if _, ok := m.names[name]; ok {
			return fmt.Errorf("%s.%s: %w", m.prefix, name, fault.ErrDuplicateStorage)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%s.%s: %w", m.prefix, name, fault.ErrDuplicateStorage)
		}
		seen[name] = struct{}{}

		prefix := e.Prefix()
		for _, other := range m.entries {
			if bytes.Equal(prefix, other.Prefix()) {
				return fmt.Errorf("%s.%s: prefix: %x: %w", m.prefix, name, prefix, fault.ErrDuplicateStorage)
			}
		}
	}

	for _, e := range entries {
		m.entries = append(m.entries, e)
		m.names[e.Instance().StoragePrefix()] = e
	}
	return nil
}

// Lookup - an entry by storage name
func (m *Module) Lookup(name string) (Entry, error) {
	m.RLock()
	defer m.RUnlock()

	e, ok := m.names[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", m.prefix, name, fault.ErrUnknownStorage)
	}
	return e, nil
}

// Entries - the registered entries in declaration order
func (m *Module) Entries() []Entry {
	m.RLock()
	defer m.RUnlock()

	return append([]Entry{}, m.entries...)
}

// Metadata - descriptors of all entries in declaration order
func (m *Module) Metadata() metadata.Module {
	m.RLock()
	defer m.RUnlock()

	descriptors := make([]metadata.Descriptor, 0, len(m.entries))
	for _, e := range m.entries {
		descriptors = append(descriptors, e.Descriptor())
	}
	return metadata.Module{
		Name:    m.prefix,
		Entries: descriptors,
	}
}
