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
)

// Deployment pairs a chain ID with the address of one deployment of the
// described contract or message type.
type Deployment struct {
	ChainID uint64 `json:"chainId"`
	Address string `json:"address"`
}

// Context is the tagged union distinguishing a calldata-clear-signing
// context from an EIP-712 typed-data context. IsContract records which
// discriminator key was present in the JSON; Domain is set only for the
// EIP-712 flavor.
type Context struct {
	IsContract  bool
	Deployments []Deployment

	// Eip712 only
	Domain *Eip712Domain
}

// Eip712Domain is the subset of an EIP-712 domain separator the render
// pipeline consults (spec §6): name, version, chain ID, verifying contract.
type Eip712Domain struct {
	Name              *string `json:"name,omitempty"`
	Version           *string `json:"version,omitempty"`
	ChainID           *uint64 `json:"chainId,omitempty"`
	VerifyingContract *string `json:"verifyingContract,omitempty"`
}

type rawContractContext struct {
	Contract *struct {
		Deployments []Deployment `json:"deployments"`
	} `json:"contract"`
}

type rawEip712Context struct {
	Eip712 *struct {
		Deployments []Deployment `json:"deployments"`
		Domain      *Eip712Domain `json:"domain,omitempty"`
	} `json:"eip712"`
}

// UnmarshalJSON distinguishes the two context flavors by the presence of a
// "contract" or "eip712" key, per spec §4.C.
func (c *Context) UnmarshalJSON(data []byte) error {
	var contractProbe rawContractContext
	if err := json.Unmarshal(data, &contractProbe); err == nil && contractProbe.Contract != nil {
		c.IsContract = true
		c.Deployments = contractProbe.Contract.Deployments
		return nil
	}
	var eip712Probe rawEip712Context
	if err := json.Unmarshal(data, &eip712Probe); err == nil && eip712Probe.Eip712 != nil {
		c.IsContract = false
		c.Deployments = eip712Probe.Eip712.Deployments
		c.Domain = eip712Probe.Eip712.Domain
		return nil
	}
	return i18n.NewError(context.Background(), csmsgs.MsgDescriptorParse, "context must contain exactly one of \"contract\" or \"eip712\"")
}
