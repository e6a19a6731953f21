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
	"encoding/json"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/erc7730-clearsign/internal/csmsgs"
	"github.com/kaleido-io/erc7730-clearsign/pkg/ethtypes"
)

// Display is the `display` section of a descriptor: reusable field
// definitions plus the per-signature/per-type formats (spec §3.4).
type Display struct {
	Definitions map[string]DisplayField `json:"definitions,omitempty"`
	Formats     map[string]DisplayFormat `json:"formats"`
}

// DisplayFormat is one entry of `display.formats`, keyed by function
// signature (calldata) or primary type name (EIP-712).
type DisplayFormat struct {
	Intent              *string       `json:"intent,omitempty"`
	InterpolatedIntent  *string       `json:"interpolatedIntent,omitempty"`
	Fields              []DisplayField `json:"fields,omitempty"`
	Excluded            []string      `json:"excluded,omitempty"`
}

// FieldKind discriminates the DisplayField tagged union (spec §3.5).
type FieldKind int

const (
	FieldKindReference FieldKind = iota
	FieldKindGroup
	FieldKindSimple
)

// Iteration controls how a field group's repeated members are displayed.
type Iteration string

const (
	IterationSequential Iteration = "sequential"
	IterationBundled    Iteration = "bundled"
)

// FieldGroup is the body of a Group-kind DisplayField.
type FieldGroup struct {
	Label     string         `json:"label"`
	Iteration Iteration      `json:"iteration,omitempty"`
	Fields    []DisplayField `json:"fields"`
}

// FieldFormat is the closed set of renderers a Simple field may request
// (spec §3.5). The zero value never appears on a populated field: absence
// of a format is represented by DisplayField.Format being nil.
type FieldFormat string

const (
	FormatTokenAmount  FieldFormat = "tokenAmount"
	FormatAmount       FieldFormat = "amount"
	FormatDate         FieldFormat = "date"
	FormatEnum         FieldFormat = "enum"
	FormatAddress      FieldFormat = "address"
	FormatAddressName  FieldFormat = "addressName"
	FormatNumber       FieldFormat = "number"
	FormatRaw          FieldFormat = "raw"
	FormatTokenTicker  FieldFormat = "tokenTicker"
	FormatChainID      FieldFormat = "chainId"
	FormatCalldata     FieldFormat = "calldata"
	FormatNftName      FieldFormat = "nftName"
	FormatDuration     FieldFormat = "duration"
	FormatUnit         FieldFormat = "unit"
)

// EncryptionParams is the short-circuit fallback-label contract (spec
// §4.G #1).
type EncryptionParams struct {
	FallbackLabel *string `json:"fallbackLabel,omitempty"`
}

// FormatParams carries the per-format knobs a Simple field may set.
type FormatParams struct {
	TokenPath             *string             `json:"tokenPath,omitempty"`
	NativeCurrencyAddress *string             `json:"nativeCurrencyAddress,omitempty"`
	ChainID               *ethtypes.HexUint64 `json:"chainId,omitempty"`
	ChainIDPath           *string             `json:"chainIdPath,omitempty"`
	EnumPath              *string             `json:"enumPath,omitempty"`
	MapReference          *string             `json:"mapReference,omitempty"`
	Encryption            *EncryptionParams   `json:"encryption,omitempty"`
}

// DisplayField is the tagged union over Reference/Group/Simple field shapes.
// Exactly the fields matching Kind are populated.
type DisplayField struct {
	Kind FieldKind

	// Reference
	Ref string

	// Group
	Group FieldGroup

	// Simple
	Path    string
	Label   string
	Format  *FieldFormat
	Params  *FormatParams
	Visible VisibleRule
}

type simpleFieldShape struct {
	Path    string        `json:"path"`
	Label   string        `json:"label"`
	Format  *FieldFormat  `json:"format,omitempty"`
	Params  *FormatParams `json:"params,omitempty"`
	Visible *VisibleRule  `json:"visible,omitempty"`
}

type referenceFieldShape struct {
	Ref string `json:"$ref"`
}

type groupFieldShape struct {
	FieldGroup FieldGroup `json:"fieldGroup"`
}

// UnmarshalJSON distinguishes the three DisplayField shapes by which keys
// are present, since Go (unlike serde) has no native untagged-enum support.
func (f *DisplayField) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return i18n.NewError(context.Background(), csmsgs.MsgDescriptorBadField, string(data), err.Error())
	}

	if _, ok := probe["$ref"]; ok {
		var ref referenceFieldShape
		if err := json.Unmarshal(data, &ref); err != nil {
			return i18n.NewError(context.Background(), csmsgs.MsgDescriptorBadField, string(data), err.Error())
		}
		f.Kind = FieldKindReference
		f.Ref = ref.Ref
		return nil
	}

	if _, ok := probe["fieldGroup"]; ok {
		var group groupFieldShape
		if err := json.Unmarshal(data, &group); err != nil {
			return i18n.NewError(context.Background(), csmsgs.MsgDescriptorBadField, string(data), err.Error())
		}
		f.Kind = FieldKindGroup
		f.Group = group.FieldGroup
		return nil
	}

	var simple simpleFieldShape
	if err := json.Unmarshal(data, &simple); err != nil {
		return i18n.NewError(context.Background(), csmsgs.MsgDescriptorBadField, string(data), err.Error())
	}
	f.Kind = FieldKindSimple
	f.Path = simple.Path
	f.Label = simple.Label
	f.Format = simple.Format
	f.Params = simple.Params
	if simple.Visible != nil {
		f.Visible = *simple.Visible
	} else {
		f.Visible = VisibleRule{Kind: VisibleKindAlways}
	}
	return nil
}

// VisibleKind discriminates the VisibleRule tagged union (spec §3.5).
type VisibleKind int

const (
	VisibleKindAlways VisibleKind = iota
	VisibleKindBool
	VisibleKindNamed
	VisibleKindCondition
)

// VisibleCondition is the Condition variant of VisibleRule.
type VisibleCondition struct {
	IfNotIn []interface{} `json:"ifNotIn,omitempty"`
	MustBe  []interface{} `json:"mustBe,omitempty"`
}

// VisibleRule is the tagged union controlling whether a field is displayed
// (spec §3.5, evaluated per §4.F).
type VisibleRule struct {
	Kind      VisibleKind
	Bool      bool
	Named     string
	Condition VisibleCondition
}

// UnmarshalJSON accepts a JSON boolean, the string "never" (or any other
// string), or a condition object; anything else defaults to Always.
func (v *VisibleRule) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		v.Kind = VisibleKindBool
		v.Bool = b
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.Kind = VisibleKindNamed
		v.Named = s
		return nil
	}
	var cond VisibleCondition
	if err := json.Unmarshal(data, &cond); err == nil {
		v.Kind = VisibleKindCondition
		v.Condition = cond
		return nil
	}
	v.Kind = VisibleKindAlways
	return nil
}
