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

	"github.com/kaleido-io/erc7730-clearsign/pkg/descriptor"
)

// EntryKind discriminates a DisplayModel entry (spec §3.6).
type EntryKind int

const (
	EntryKindItem EntryKind = iota
	EntryKindGroup
)

// Item is one labeled, formatted value.
type Item struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Entry is either a bare Item or a flattened Group of items (spec §3.6).
type Entry struct {
	Kind EntryKind

	// Item
	Item Item

	// Group
	GroupLabel     string
	GroupIteration descriptor.Iteration
	GroupItems     []Item
}

// MarshalJSON renders an Entry as the spec's external DisplayEntry shape:
// either a bare {label, value} item or a {label, iteration, items} group,
// never both.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Kind == EntryKindGroup {
		return json.Marshal(struct {
			Label     string               `json:"label"`
			Iteration descriptor.Iteration `json:"iteration,omitempty"`
			Items     []Item               `json:"items"`
		}{Label: e.GroupLabel, Iteration: e.GroupIteration, Items: e.GroupItems})
	}
	return json.Marshal(e.Item)
}

// DisplayModel is the output of a render: the descriptor's intent, its
// interpolated form (if the descriptor carried one), the field entries,
// and the append-only warnings accumulated while walking them (spec §3.6).
type DisplayModel struct {
	Intent             string   `json:"intent"`
	InterpolatedIntent *string  `json:"interpolatedIntent,omitempty"`
	Entries            []Entry  `json:"entries"`
	Warnings           []string `json:"warnings"`
}
