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

// Package eip712 models an EIP-712 typed-data signing request as received
// by the render pipeline (spec §6). Only the plain JSON shape is kept here
// - struct-hash computation and signature verification are out of scope
// (spec §1 Non-goals).
package eip712

import "github.com/kaleido-io/erc7730-clearsign/pkg/ethtypes"

// TypeMember is one member of a named EIP-712 struct type.
type TypeMember struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Type is an ordered list of a named struct's members.
type Type []TypeMember

// TypeSet is the full `types` map of an EIP-712 signing request: struct
// type name to its member list. The render pipeline never needs to resolve
// these (path resolution for typed data walks the message JSON directly,
// spec §4.E), but a TypedData value carries them so it round-trips the
// full signing-request shape a caller receives.
type TypeSet map[string]Type

// Domain is the subset of an EIP-712 domain separator the render pipeline
// consults: chain ID (defaulting to 1 when absent, spec §6). ChainID accepts
// either a JSON number or a 0x-prefixed hex string, since wallets disagree on
// which the domain separator should carry.
type Domain struct {
	Name              *string             `json:"name,omitempty"`
	Version           *string             `json:"version,omitempty"`
	ChainID           *ethtypes.HexUint64 `json:"chainId,omitempty"`
	VerifyingContract *string             `json:"verifyingContract,omitempty"`
}

// EffectiveChainID returns the domain's chain ID, defaulting to 1 when
// absent (spec §6).
func (d Domain) EffectiveChainID() uint64 {
	if d.ChainID != nil {
		return d.ChainID.Uint64()
	}
	return 1
}

// TypedData is an EIP-712 signing request as received for clear signing.
// The core uses only PrimaryType, Domain.ChainID, and Message (spec §6).
type TypedData struct {
	Types       TypeSet                `json:"types"`
	PrimaryType string                 `json:"primaryType"`
	Domain      Domain                 `json:"domain"`
	Message     map[string]interface{} `json:"message"`
}
