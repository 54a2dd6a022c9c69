// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata

import (
	"fmt"

	"github.com/ChainSafe/gossamer/pkg/scale"

	"github.com/bitmark-inc/statestore/fault"
	"github.com/bitmark-inc/statestore/hashing"
)

type wireEntry struct {
	Name     string
	Modifier uint8
	Type     uint8
	Hashers  []byte
	Default  []byte
}

type wireModule struct {
	Name    string
	Entries []wireEntry
}

// Encode - the binary form of a set of modules
func Encode(modules ...Module) ([]byte, error) {
	wire := make([]wireModule, 0, len(modules))
	for _, m := range modules {
		wm := wireModule{
			Name:    m.Name,
			Entries: make([]wireEntry, 0, len(m.Entries)),
		}
		for _, d := range m.Entries {
			hashers := make([]byte, 0, len(d.Hashers))
			for _, h := range d.Hashers {
				hashers = append(hashers, byte(h))
			}
			defaultBytes := []byte{}
			if nil != d.Default {
				b, err := d.Default.DefaultBytes()
				if nil != err {
					return nil, err
				}
				defaultBytes = b
			}
			wm.Entries = append(wm.Entries, wireEntry{
				Name:     d.Name,
				Modifier: uint8(d.Modifier),
				Type:     uint8(d.Type),
				Hashers:  hashers,
				Default:  defaultBytes,
			})
		}
		wire = append(wire, wm)
	}
	return scale.Marshal(wire)
}

// Decode - modules from their binary form
func Decode(data []byte) ([]Module, error) {
	var wire []wireModule
	if err := scale.Unmarshal(data, &wire); nil != err {
		return nil, err
	}

	modules := make([]Module, 0, len(wire))
	for _, wm := range wire {
		m := Module{
			Name:    wm.Name,
			Entries: make([]Descriptor, 0, len(wm.Entries)),
		}
		for _, we := range wm.Entries {
			modifier := Modifier(we.Modifier)
			if _, err := modifier.MarshalText(); nil != err {
				return nil, err
			}
			entryType := EntryType(we.Type)
			if !entryType.Valid() {
				return nil, fault.ErrInvalidEntryType
			}
			if entryType.HasherCount() != len(we.Hashers) {
				return nil, fmt.Errorf("%w: %s: %s has %d hashers", fault.ErrInvalidEntryType, we.Name, entryType, len(we.Hashers))
			}
			hashers := make([]hashing.Kind, 0, len(we.Hashers))
			for _, h := range we.Hashers {
				k := hashing.Kind(h)
				if !k.Valid() {
					return nil, fault.ErrInvalidHasher
				}
				hashers = append(hashers, k)
			}
			m.Entries = append(m.Entries, Descriptor{
				Name:     we.Name,
				Modifier: modifier,
				Type:     entryType,
				Hashers:  hashers,
				Default:  StaticDefault(we.Default),
			})
		}
		modules = append(modules, m)
	}
	return modules, nil
}
