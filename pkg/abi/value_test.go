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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgumentValueRawVariants(t *testing.T) {
	addr := ArgumentValue{Kind: KindAddress, Address: [20]byte{0x01}}
	assert.Equal(t, "0x0100000000000000000000000000000000000000", addr.Raw())

	boolTrue := ArgumentValue{Kind: KindBool, Bool: true}
	assert.Equal(t, "true", boolTrue.Raw())

	str := ArgumentValue{Kind: KindString, Str: "hello"}
	assert.Equal(t, "hello", str.Raw())

	tuple := ArgumentValue{Kind: KindTuple, Items: []ArgumentValue{boolTrue, str}}
	assert.Equal(t, "[true,hello]", tuple.Raw())
}

func TestArgumentValueBigInt(t *testing.T) {
	v := ArgumentValue{Kind: KindUint, Bytes: big.NewInt(1000).FillBytes(make([]byte, 32))}
	assert.Equal(t, "1000", v.BigInt().String())
}

func TestArgumentValueSignedBigIntNegative(t *testing.T) {
	// -1 as a 256-bit two's complement value is all 0xff bytes.
	allFF := make([]byte, 32)
	for i := range allFF {
		allFF[i] = 0xff
	}
	v := ArgumentValue{Kind: KindInt, Bytes: allFF}
	assert.Equal(t, big.NewInt(-1), v.SignedBigInt(256))
}

func TestArgumentValueLookupIndex(t *testing.T) {
	inner := ArgumentValue{Kind: KindUint, Bytes: big.NewInt(42).FillBytes(make([]byte, 32))}
	container := ArgumentValue{Kind: KindTuple, Items: []ArgumentValue{inner}}
	v, ok := container.lookupIndex(0)
	assert.True(t, ok)
	assert.Equal(t, "42", v.Raw())

	_, ok = container.lookupIndex(1)
	assert.False(t, ok)
}
