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

package render

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/kaleido-io/erc7730-clearsign/pkg/abi"
	"github.com/stretchr/testify/require"

	"github.com/stretchr/testify/assert"
)

func decodeTransfer(t *testing.T) *abi.DecodedArguments {
	t.Helper()
	sig, err := abi.ParseSignature(context.Background(), "transfer(address,uint256)")
	require.NoError(t, err)
	calldata, err := hex.DecodeString(
		"a9059cbb" +
			"0000000000000000000000000000000000000000000000000000000000000001" +
			"00000000000000000000000000000000000000000000000000000000000003e8")
	require.NoError(t, err)
	args, err := abi.DecodeCalldata(context.Background(), sig, calldata, 0)
	require.NoError(t, err)
	return args
}

func TestArgsResolverTopLevelIndex(t *testing.T) {
	args := decodeTransfer(t)
	r := ArgsResolver{Args: args}

	addr := r.Resolve("@.0")
	assert.True(t, addr.Present)
	assert.True(t, addr.IsAddress)
	assert.Equal(t, "0x0000000000000000000000000000000000000001", addr.Raw)

	amount := r.Resolve("1")
	assert.True(t, amount.Present)
	assert.False(t, amount.IsAddress)
	assert.Equal(t, "1000", amount.Raw)

	bracketed := r.Resolve("args[1]")
	assert.Equal(t, amount, bracketed)
}

func TestArgsResolverOutOfRange(t *testing.T) {
	args := decodeTransfer(t)
	r := ArgsResolver{Args: args}
	assert.False(t, r.Resolve("2").Present)
	assert.False(t, r.Resolve("-1").Present)
}

func TestArgsResolverNestedIndex(t *testing.T) {
	sig, err := abi.ParseSignature(context.Background(), "f(uint256[])")
	require.NoError(t, err)
	calldata, err := hex.DecodeString(
		hex.EncodeToString(sig.Selector[:]) +
			"0000000000000000000000000000000000000000000000000000000000000020" +
			"0000000000000000000000000000000000000000000000000000000000000002" +
			"000000000000000000000000000000000000000000000000000000000000000a" +
			"0000000000000000000000000000000000000000000000000000000000000014")
	require.NoError(t, err)
	args, err := abi.DecodeCalldata(context.Background(), sig, calldata, 0)
	require.NoError(t, err)

	r := ArgsResolver{Args: args}
	assert.Equal(t, "10", r.Resolve("0.0").Raw)
	assert.Equal(t, "20", r.Resolve("0.1").Raw)
	assert.False(t, r.Resolve("0.2").Present)
	assert.False(t, r.Resolve("0.x").Present)
}

func TestTypedResolverObjectAndArray(t *testing.T) {
	r := TypedResolver{Message: map[string]interface{}{
		"owner": "0x0000000000000000000000000000000000000001",
		"amounts": []interface{}{
			float64(10), float64(20),
		},
		"nested": map[string]interface{}{
			"value": "hello",
		},
	}}

	owner := r.Resolve("owner")
	assert.True(t, owner.Present)
	assert.True(t, owner.IsAddress)

	assert.Equal(t, "10", r.Resolve("amounts[0]").Raw)
	assert.Equal(t, "20", r.Resolve("amounts[1]").Raw)
	assert.False(t, r.Resolve("amounts[2]").Present)

	assert.Equal(t, "hello", r.Resolve("nested.value").Raw)
	assert.False(t, r.Resolve("missing").Present)
	assert.False(t, r.Resolve("nested.missing").Present)
}

func TestTypedResolverStripsAnchor(t *testing.T) {
	r := TypedResolver{Message: map[string]interface{}{"value": "1000"}}
	assert.Equal(t, r.Resolve("value"), r.Resolve("@.value"))
}
