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

package descriptor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDescriptor = `{
	"context": {
		"contract": {
			"deployments": [{"chainId": 1, "address": "0xdac17f958d2ee523a2206206994597c13d831ec7"}]
		}
	},
	"metadata": {
		"contractName": "Tether USD",
		"addressBook": {"0xdac17f958d2ee523a2206206994597c13d831ec7": "USDT Token"},
		"maps": {
			"orderTypes": {"entries": {"0": "Market", "1": "Limit", "2": "Stop"}}
		}
	},
	"display": {
		"definitions": {
			"amountField": {"path": "@.1", "label": "Amount", "format": "number"}
		},
		"formats": {
			"transfer(address,uint256)": {
				"intent": "Transfer tokens",
				"fields": [
					{"path": "@.0", "label": "To", "format": "address"},
					{"$ref": "#/definitions/amountField"},
					{"fieldGroup": {"label": "Details", "fields": [
						{"path": "@.1", "label": "Raw Amount", "visible": false}
					]}}
				]
			}
		}
	}
}`

func TestParseDescriptorContractContext(t *testing.T) {
	d, err := Parse(context.Background(), []byte(sampleDescriptor))
	require.NoError(t, err)
	assert.True(t, d.Context.IsContract)
	require.Len(t, d.Context.Deployments, 1)
	assert.Equal(t, uint64(1), d.Context.Deployments[0].ChainID)
	assert.Equal(t, "Tether USD", *d.Metadata.ContractName)
	assert.Equal(t, "Market", d.Metadata.Maps["orderTypes"].Entries["0"])
}

func TestParseDescriptorFieldTaggedUnion(t *testing.T) {
	d, err := Parse(context.Background(), []byte(sampleDescriptor))
	require.NoError(t, err)
	format := d.Display.Formats["transfer(address,uint256)"]
	require.Len(t, format.Fields, 3)

	assert.Equal(t, FieldKindSimple, format.Fields[0].Kind)
	assert.Equal(t, "@.0", format.Fields[0].Path)
	require.NotNil(t, format.Fields[0].Format)
	assert.Equal(t, FormatAddress, *format.Fields[0].Format)

	assert.Equal(t, FieldKindReference, format.Fields[1].Kind)
	assert.Equal(t, "#/definitions/amountField", format.Fields[1].Ref)

	assert.Equal(t, FieldKindGroup, format.Fields[2].Kind)
	assert.Equal(t, "Details", format.Fields[2].Group.Label)
	assert.Equal(t, VisibleKindBool, format.Fields[2].Group.Fields[0].Visible.Kind)
	assert.False(t, format.Fields[2].Group.Fields[0].Visible.Bool)
}

func TestParseDescriptorEip712Context(t *testing.T) {
	doc := `{
		"context": {"eip712": {"deployments": [], "domain": {"name": "Permit", "chainId": 1}}},
		"metadata": {},
		"display": {"formats": {}}
	}`
	d, err := Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	assert.False(t, d.Context.IsContract)
	require.NotNil(t, d.Context.Domain)
	assert.Equal(t, "Permit", *d.Context.Domain.Name)
}

func TestParseDescriptorMissingFormatsFails(t *testing.T) {
	doc := `{"context": {"contract": {"deployments": []}}, "metadata": {}, "display": {}}`
	_, err := Parse(context.Background(), []byte(doc))
	assert.Error(t, err)
}

func TestVisibleRuleDefaultsToAlways(t *testing.T) {
	doc := `{"path": "@.0", "label": "X"}`
	var f DisplayField
	require.NoError(t, f.UnmarshalJSON([]byte(doc)))
	assert.Equal(t, VisibleKindAlways, f.Visible.Kind)
}

func TestVisibleRuleCondition(t *testing.T) {
	doc := `{"path": "@.0", "label": "X", "visible": {"ifNotIn": [0], "mustBe": [1,2,3]}}`
	var f DisplayField
	require.NoError(t, f.UnmarshalJSON([]byte(doc)))
	assert.Equal(t, VisibleKindCondition, f.Visible.Kind)
	assert.Len(t, f.Visible.Condition.MustBe, 3)
}
