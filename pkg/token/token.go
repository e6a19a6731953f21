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

// Package token defines the token-metadata lookup capability the render
// pipeline consults for TokenAmount/TokenTicker formatting (spec §6). The
// core never provisions token metadata itself; it is a read-only
// collaborator passed in by reference (spec §9's "capabilities, not
// globals").
package token

import (
	"fmt"
	"strings"
)

// Meta is what a TokenSource returns on a hit.
type Meta struct {
	Symbol   string
	Decimals uint8
	Name     string
}

// Key is a normalized CAIP-19-style lookup key,
// "eip155:<chain>/erc20:<lowercase-address>".
type Key string

// NewKey builds a normalized lookup key from a chain ID and address.
func NewKey(chainID uint64, address string) Key {
	return Key(fmt.Sprintf("eip155:%d/erc20:%s", chainID, strings.ToLower(address)))
}

// Source is the capability interface the format dispatcher (§4.G) consults
// for TokenAmount and TokenTicker formatting. A miss is a data condition,
// never an error (spec §5): callers signal it by returning ok=false.
type Source interface {
	Lookup(key Key) (Meta, bool)
}

// StaticSource is an in-memory Source populated through Insert, keyed by
// NewKey(chainID, address).
type StaticSource struct {
	tokens map[Key]Meta
}

// NewStaticSource returns an empty StaticSource.
func NewStaticSource() *StaticSource {
	return &StaticSource{tokens: map[Key]Meta{}}
}

// Insert adds or replaces a token's metadata.
func (s *StaticSource) Insert(chainID uint64, address string, meta Meta) {
	s.tokens[NewKey(chainID, address)] = meta
}

// Lookup implements Source.
func (s *StaticSource) Lookup(key Key) (Meta, bool) {
	m, ok := s.tokens[key]
	return m, ok
}

// EmptySource is a Source that never has a hit.
type EmptySource struct{}

// Lookup implements Source.
func (EmptySource) Lookup(Key) (Meta, bool) { return Meta{}, false }
