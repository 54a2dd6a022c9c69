// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bitmark-inc/statestore/fault"
	"github.com/bitmark-inc/statestore/hashing"
)

// Modifier - how an absent entry is reported
type Modifier uint8

// modifiers
const (
	Optional Modifier = iota // absent reads as None
	Default                  // absent reads as the default value
)

// String - name of the modifier
func (m Modifier) String() string {
	switch m {
	case Optional:
		return "Optional"
	case Default:
		return "Default"
	default:
		return fmt.Sprintf("*Unknown(%d)*", uint8(m))
	}
}

// MarshalText - modifier as its name
func (m Modifier) MarshalText() ([]byte, error) {
	switch m {
	case Optional, Default:
		return []byte(m.String()), nil
	default:
		return nil, fault.ErrInvalidModifier
	}
}

// UnmarshalText - modifier from its name
func (m *Modifier) UnmarshalText(s []byte) error {
	switch string(s) {
	case "Optional":
		*m = Optional
	case "Default":
		*m = Default
	default:
		return fault.ErrInvalidModifier
	}
	return nil
}

// EntryType - the shape of a storage entry
type EntryType uint8

// entry types
const (
	Plain EntryType = iota
	Map
	DoubleMap
)

var entryTypeNames = [...]string{
	Plain:     "Plain",
	Map:       "Map",
	DoubleMap: "DoubleMap",
}

// Valid - true if e is one of the defined values
func (e EntryType) Valid() bool {
	return int(e) < len(entryTypeNames)
}

// HasherCount - number of key hashers an entry of this type declares
func (e EntryType) HasherCount() int {
	switch e {
	case Map:
		return 1
	case DoubleMap:
		return 2
	default:
		return 0
	}
}

// String - name of the entry type
func (e EntryType) String() string {
	if !e.Valid() {
		return fmt.Sprintf("*Unknown(%d)*", uint8(e))
	}
	return entryTypeNames[e]
}

// MarshalText - entry type as its name
func (e EntryType) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fault.ErrInvalidEntryType
	}
	return []byte(entryTypeNames[e]), nil
}

// UnmarshalText - entry type from its name
func (e *EntryType) UnmarshalText(s []byte) error {
	for i, name := range entryTypeNames {
		if name == string(s) {
			*e = EntryType(i)
			return nil
		}
	}
	return fault.ErrInvalidEntryType
}

// DefaultByteGetter - supplies the encoded default of an entry
type DefaultByteGetter interface {
	DefaultBytes() ([]byte, error)
}

// StaticDefault - default bytes known up front, e.g. decoded metadata
type StaticDefault []byte

// DefaultBytes - a copy of the bytes
func (s StaticDefault) DefaultBytes() ([]byte, error) {
	result := make([]byte, len(s))
	copy(result, s)
	return result, nil
}

// Descriptor - metadata for one declared entry
type Descriptor struct {
	Name     string
	Modifier Modifier
	Type     EntryType
	Hashers  []hashing.Kind
	Default  DefaultByteGetter
}

// Module - the descriptors declared under one module prefix, in declaration order
type Module struct {
	Name    string       `json:"name" yaml:"name"`
	Entries []Descriptor `json:"entries" yaml:"entries"`
}

// the external text form of a descriptor
type record struct {
	Name     string         `json:"name" yaml:"name"`
	Modifier Modifier       `json:"modifier" yaml:"modifier"`
	Type     EntryType      `json:"type" yaml:"type"`
	Hashers  []hashing.Kind `json:"hashers,omitempty" yaml:"hashers,omitempty"`
	Default  string         `json:"default" yaml:"default"`
}

func (d Descriptor) record() (record, error) {
	r := record{
		Name:     d.Name,
		Modifier: d.Modifier,
		Type:     d.Type,
		Hashers:  d.Hashers,
		Default:  "0x",
	}
	if nil != d.Default {
		b, err := d.Default.DefaultBytes()
		if nil != err {
			return r, err
		}
		r.Default = "0x" + hex.EncodeToString(b)
	}
	return r, nil
}

// MarshalJSON - names for enumerations, 0x hex for the default bytes
func (d Descriptor) MarshalJSON() ([]byte, error) {
	r, err := d.record()
	if nil != err {
		return nil, err
	}
	return json.Marshal(r)
}

// UnmarshalJSON - the inverse of MarshalJSON
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); nil != err {
		return err
	}
	b, err := hex.DecodeString(strings.TrimPrefix(r.Default, "0x"))
	if nil != err {
		return err
	}
	*d = Descriptor{
		Name:     r.Name,
		Modifier: r.Modifier,
		Type:     r.Type,
		Hashers:  r.Hashers,
		Default:  StaticDefault(b),
	}
	return nil
}

// MarshalYAML - same fields as the JSON form
func (d Descriptor) MarshalYAML() (interface{}, error) {
	return d.record()
}
