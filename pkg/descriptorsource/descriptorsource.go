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

// Package descriptorsource defines the descriptor-acquisition capability
// (spec §6). Descriptor acquisition itself - filesystem, HTTP registries,
// embedded bundles - is out of the core's scope; the core only consumes an
// already-resolved Descriptor.
package descriptorsource

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/erc7730-clearsign/internal/csmsgs"
	"github.com/kaleido-io/erc7730-clearsign/pkg/descriptor"
)

// Resolved is a descriptor together with the chain/address it was resolved
// for, normalized to lowercase.
type Resolved struct {
	Descriptor *descriptor.Descriptor
	ChainID    uint64
	Address    string
}

// Source is the capability interface for looking up a descriptor by chain
// and contract address, either for calldata or typed-data clear signing.
// Implementations are free to back this with embedded files, a filesystem
// cache, or a network client; the core treats it as opaque (spec §6).
type Source interface {
	ResolveCalldata(ctx context.Context, chainID uint64, address string) (*Resolved, error)
	ResolveTyped(ctx context.Context, chainID uint64, address string) (*Resolved, error)
}

// StaticSource is an in-memory Source populated through AddCalldata and
// AddTyped, keyed by chain ID and lowercase address.
type StaticSource struct {
	calldata map[string]*descriptor.Descriptor
	typed    map[string]*descriptor.Descriptor
}

// NewStaticSource returns an empty StaticSource.
func NewStaticSource() *StaticSource {
	return &StaticSource{
		calldata: map[string]*descriptor.Descriptor{},
		typed:    map[string]*descriptor.Descriptor{},
	}
}

func key(chainID uint64, address string) string {
	return fmt.Sprintf("%d:%s", chainID, strings.ToLower(address))
}

// AddCalldata registers a descriptor for calldata resolution.
func (s *StaticSource) AddCalldata(chainID uint64, address string, d *descriptor.Descriptor) {
	s.calldata[key(chainID, address)] = d
}

// AddTyped registers a descriptor for typed-data resolution.
func (s *StaticSource) AddTyped(chainID uint64, address string, d *descriptor.Descriptor) {
	s.typed[key(chainID, address)] = d
}

// ResolveCalldata implements Source.
func (s *StaticSource) ResolveCalldata(ctx context.Context, chainID uint64, address string) (*Resolved, error) {
	d, ok := s.calldata[key(chainID, address)]
	if !ok {
		return nil, i18n.NewError(ctx, csmsgs.MsgResolveNotFound, chainID, address)
	}
	return &Resolved{Descriptor: d, ChainID: chainID, Address: strings.ToLower(address)}, nil
}

// ResolveTyped implements Source.
func (s *StaticSource) ResolveTyped(ctx context.Context, chainID uint64, address string) (*Resolved, error) {
	d, ok := s.typed[key(chainID, address)]
	if !ok {
		return nil, i18n.NewError(ctx, csmsgs.MsgResolveNotFound, chainID, address)
	}
	return &Resolved{Descriptor: d, ChainID: chainID, Address: strings.ToLower(address)}, nil
}
