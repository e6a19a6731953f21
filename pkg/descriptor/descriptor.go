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

// Package descriptor models the ERC-7730 v2 clear-signing descriptor
// document in memory (spec §3.4, §4.C). Parsing tolerates unknown keys and
// defaults missing optional fields to empty.
package descriptor

import (
	"context"
	"encoding/json"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/erc7730-clearsign/internal/csmsgs"
)

// Descriptor is the in-memory form of a parsed ERC-7730 v2 document.
type Descriptor struct {
	Schema   *string  `json:"$schema,omitempty"`
	Context  Context  `json:"context"`
	Metadata Metadata `json:"metadata"`
	Display  Display  `json:"display"`
}

// Parse parses a descriptor JSON document. Required keys are `context`,
// `metadata`, and `display.formats` (spec §6); everything else defaults to
// empty when absent.
func Parse(ctx context.Context, data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, i18n.WrapError(ctx, err, csmsgs.MsgDescriptorParse, err.Error())
	}
	if d.Display.Formats == nil {
		return nil, i18n.NewError(ctx, csmsgs.MsgDescriptorParse, "display.formats is required")
	}
	return &d, nil
}
