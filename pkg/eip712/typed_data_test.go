// Copyright © 2023 Kaleido, Inc.
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

package eip712

import (
	"encoding/json"
	"testing"

	"github.com/kaleido-io/erc7730-clearsign/pkg/ethtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainEffectiveChainIDDefaultsToOne(t *testing.T) {
	d := Domain{}
	assert.Equal(t, uint64(1), d.EffectiveChainID())

	chainID := ethtypes.HexUint64(137)
	d = Domain{ChainID: &chainID}
	assert.Equal(t, uint64(137), d.EffectiveChainID())
}

func TestDomainChainIDAcceptsHexString(t *testing.T) {
	var d Domain
	require.NoError(t, json.Unmarshal([]byte(`{"chainId":"0x89"}`), &d))
	assert.Equal(t, uint64(137), d.EffectiveChainID())
}

func TestTypedDataUnmarshal(t *testing.T) {
	doc := `{
		"types": {
			"Permit": [{"name": "owner", "type": "address"}, {"name": "value", "type": "uint256"}]
		},
		"primaryType": "Permit",
		"domain": {"name": "USD Coin", "chainId": 1},
		"message": {"owner": "0xabc", "value": "1000"}
	}`
	var td TypedData
	require.NoError(t, json.Unmarshal([]byte(doc), &td))
	assert.Equal(t, "Permit", td.PrimaryType)
	assert.Len(t, td.Types["Permit"], 2)
	assert.Equal(t, "1000", td.Message["value"])
	assert.Equal(t, uint64(1), td.Domain.EffectiveChainID())
}
