// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/statestore/codec"
	"github.com/bitmark-inc/statestore/metadata"
	"github.com/bitmark-inc/statestore/types"
)

func TestOption(t *testing.T) {
	s := types.Some(5)
	v, ok := s.Unwrap()
	assert.True(t, ok)
	assert.True(t, s.IsSome())
	assert.Equal(t, 5, v)
	assert.Equal(t, "Some(5)", s.String())

	n := types.None[int]()
	assert.True(t, n.IsNone())
	assert.Equal(t, 9, n.UnwrapOr(9))
	assert.Equal(t, "None", n.String())
}

func TestOptionQueryIsIdentity(t *testing.T) {
	q := types.OptionQuery[uint32]()
	called := false
	onEmpty := func() types.Option[uint32] {
		called = true
		return types.Some[uint32](1)
	}

	assert.Equal(t, metadata.Optional, q.Modifier())
	assert.Equal(t, types.None[uint32](), q.ToQuery(types.None[uint32](), onEmpty))
	assert.Equal(t, types.Some[uint32](3), q.ToQuery(types.Some[uint32](3), onEmpty))
	assert.False(t, called, "default provider must not be consulted")

	assert.Equal(t, types.None[uint32](), q.ToOptional(types.None[uint32]()))
	assert.Equal(t, types.Some[uint32](3), q.ToOptional(types.Some[uint32](3)))
}

func TestValueQueryUsesDefault(t *testing.T) {
	q := types.ValueQuery[uint32]()

	assert.Equal(t, metadata.Default, q.Modifier())
	assert.Equal(t, uint32(12), q.ToQuery(types.None[uint32](), types.Constant[uint32](12)))
	assert.Equal(t, uint32(3), q.ToQuery(types.Some[uint32](3), types.Constant[uint32](12)))
	assert.Equal(t, uint32(0), q.ToQuery(types.None[uint32](), types.GetDefault[uint32]()))

	// writing the default stores it
	assert.Equal(t, types.Some[uint32](0), q.ToOptional(0))
}

func TestEncodeQuery(t *testing.T) {
	c := codec.Scale[uint32]()

	b, err := types.OptionQuery[uint32]().EncodeQuery(c, types.None[uint32]())
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00}, b)

	b, err = types.OptionQuery[uint32]().EncodeQuery(c, types.Some[uint32](2))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x00, 0x00, 0x00}, b)

	b, err = types.ValueQuery[uint32]().EncodeQuery(c, 2)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x00, 0x00, 0x00}, b)
}
