// Copyright © 2024 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package abi

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestDecodeSimpleTransfer(t *testing.T) {
	ctx := context.Background()
	sig, err := ParseSignature(ctx, "transfer(address,uint256)")
	require.NoError(t, err)

	calldata := mustDecode(t, "a9059cbb"+
		"0000000000000000000000000000000000000000000000000000000000000001"+
		"00000000000000000000000000000000000000000000000000000000000003e8")

	args, err := DecodeCalldata(ctx, sig, calldata, 0)
	require.NoError(t, err)
	require.Len(t, args.Args, 2)
	assert.Equal(t, "0x0000000000000000000000000000000000000001", args.Args[0].Value.Raw())
	assert.Equal(t, "1000", args.Args[1].Value.Raw())
}

func TestDecodeUint256Timestamp(t *testing.T) {
	ctx := context.Background()
	sig, err := ParseSignature(ctx, "increaseUnlockTime(uint256)")
	require.NoError(t, err)

	calldata := mustDecode(t, "7c616fe6"+
		"000000000000000000000000000000000000000000000000000000006945563d")

	args, err := DecodeCalldata(ctx, sig, calldata, 0)
	require.NoError(t, err)
	assert.Equal(t, "1766151741", args.Args[0].Value.Raw())
}

func TestDecodeSelectorMismatch(t *testing.T) {
	ctx := context.Background()
	sig, err := ParseSignature(ctx, "transfer(address,uint256)")
	require.NoError(t, err)
	calldata := mustDecode(t, "deadbeef"+
		"0000000000000000000000000000000000000000000000000000000000000001"+
		"0000000000000000000000000000000000000000000000000000000000000001")
	_, err = DecodeCalldata(ctx, sig, calldata, 0)
	assert.Error(t, err)
}

func TestDecodeCalldataTooShort(t *testing.T) {
	ctx := context.Background()
	sig, err := ParseSignature(ctx, "transfer(address,uint256)")
	require.NoError(t, err)
	_, err = DecodeCalldata(ctx, sig, []byte{0x01, 0x02}, 0)
	assert.Error(t, err)
}

func TestDecodeDynamicBytesAndString(t *testing.T) {
	ctx := context.Background()
	sig, err := ParseSignature(ctx, "note(string,bytes)")
	require.NoError(t, err)

	// head: offset to string tail (0x40), offset to bytes tail (0x80)
	// string tail: length 5, "hello" padded to 32
	// bytes tail: length 2, 0xdead padded to 32
	calldata := mustDecode(t, "00000000"+
		"0000000000000000000000000000000000000000000000000000000000000040"+
		"0000000000000000000000000000000000000000000000000000000000000080"+
		"0000000000000000000000000000000000000000000000000000000000000005"+
		"68656c6c6f000000000000000000000000000000000000000000000000000000"+
		"0000000000000000000000000000000000000000000000000000000000000002"+
		"dead000000000000000000000000000000000000000000000000000000000000")
	var sel [4]byte
	copy(sel[:], calldata[:4])
	sig.Selector = sel

	args, err := DecodeCalldata(ctx, sig, calldata, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", args.Args[0].Value.Str)
	assert.Equal(t, "0xdead", args.Args[1].Value.Raw())
}

func TestDecodeDynamicArrayOfTuplesRelativeOffsets(t *testing.T) {
	ctx := context.Background()
	// Each tuple element is (address,uint256) - static, so the array is a
	// simple inline sequence once past its length word. This exercises the
	// array "element area is a fresh base" rule (spec §4.B) even though the
	// element type here is static; a dynamic tuple nested inside a top-level
	// parameter list is covered by the fixture below.
	sig, err := ParseSignature(ctx, "batch((address,uint256)[])")
	require.NoError(t, err)

	calldata := mustDecode(t, "00000000"+
		"0000000000000000000000000000000000000000000000000000000000000020"+ // offset to array tail
		"0000000000000000000000000000000000000000000000000000000000000002"+ // array length = 2
		"0000000000000000000000000000000000000000000000000000000000000011"+ // elem0.address
		"0000000000000000000000000000000000000000000000000000000000000064"+ // elem0.uint256 = 100
		"0000000000000000000000000000000000000000000000000000000000000022"+ // elem1.address
		"00000000000000000000000000000000000000000000000000000000000000c8") // elem1.uint256 = 200
	var sel [4]byte
	copy(sel[:], calldata[:4])
	sig.Selector = sel

	args, err := DecodeCalldata(ctx, sig, calldata, 0)
	require.NoError(t, err)
	arr := args.Args[0].Value
	require.Len(t, arr.Items, 2)
	assert.Equal(t, "100", arr.Items[0].Items[1].Raw())
	assert.Equal(t, "200", arr.Items[1].Items[1].Raw())
}

func TestDecodeNestedDynamicTupleRelativeBase(t *testing.T) {
	ctx := context.Background()
	// order((string,uint256),uint256) - the inner tuple is dynamic because
	// its first member is a string, so the outer tuple's head holds an
	// offset to the inner tuple relative to the OUTER tuple's own base, not
	// the calldata-wide head. This is exactly the case the flat
	// "advance 32 bytes per element" shortcut gets wrong.
	sig, err := ParseSignature(ctx, "order((string,uint256),uint256)")
	require.NoError(t, err)

	calldata := mustDecode(t, "00000000"+
		"0000000000000000000000000000000000000000000000000000000000000040"+ // offset to inner tuple, relative to top-level base
		"0000000000000000000000000000000000000000000000000000000000000007"+ // top-level second param = 7
		"0000000000000000000000000000000000000000000000000000000000000040"+ // inner tuple head word 0: offset to string, relative to INNER base
		"0000000000000000000000000000000000000000000000000000000000000064"+ // inner tuple head word 1: uint256 = 100
		"0000000000000000000000000000000000000000000000000000000000000003"+ // string length = 3
		"6162630000000000000000000000000000000000000000000000000000000000") // "abc"
	var sel [4]byte
	copy(sel[:], calldata[:4])
	sig.Selector = sel

	args, err := DecodeCalldata(ctx, sig, calldata, 0)
	require.NoError(t, err)
	inner := args.Args[0].Value
	require.Len(t, inner.Items, 2)
	assert.Equal(t, "abc", inner.Items[0].Str)
	assert.Equal(t, "100", inner.Items[1].Raw())
	assert.Equal(t, "7", args.Args[1].Value.Raw())
}
