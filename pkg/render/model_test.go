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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryMarshalJSONItem(t *testing.T) {
	e := Entry{Kind: EntryKindItem, Item: Item{Label: "To", Value: "0x01"}}
	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"To","value":"0x01"}`, string(out))
}

func TestEntryMarshalJSONGroup(t *testing.T) {
	e := Entry{
		Kind:           EntryKindGroup,
		GroupLabel:     "Details",
		GroupIteration: "sequential",
		GroupItems:     []Item{{Label: "A", Value: "1"}, {Label: "B", Value: "2"}},
	}
	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"Details","iteration":"sequential","items":[{"label":"A","value":"1"},{"label":"B","value":"2"}]}`, string(out))
}

func TestDisplayModelMarshalJSONOmitsNilInterpolatedIntent(t *testing.T) {
	model := DisplayModel{Intent: "Transfer tokens", Entries: []Entry{}, Warnings: []string{}}
	out, err := json.Marshal(model)
	require.NoError(t, err)
	assert.JSONEq(t, `{"intent":"Transfer tokens","entries":[],"warnings":[]}`, string(out))
}
