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

// Package addressbook resolves addresses to human-readable labels, merging
// a descriptor's deployment/contract-name entries with its explicit
// metadata.addressBook (spec §4.D). Lookups and keys are case-insensitive.
package addressbook

import (
	"strings"

	"github.com/kaleido-io/erc7730-clearsign/pkg/descriptor"
)

// AddressBook is a case-insensitive address to label lookup. Insert and
// Merge add entries in place.
type AddressBook struct {
	entries map[string]string
}

// Empty returns an AddressBook with no entries.
func Empty() *AddressBook {
	return &AddressBook{entries: map[string]string{}}
}

// FromDescriptor builds an address book from a descriptor's context
// deployments (labeled with the contract name, if present) and its
// metadata address book, which takes precedence on conflicting keys (spec
// §4.D).
func FromDescriptor(ctx descriptor.Context, meta descriptor.Metadata) *AddressBook {
	b := Empty()
	if meta.ContractName != nil {
		for _, d := range ctx.Deployments {
			b.Insert(d.Address, *meta.ContractName)
		}
	}
	for addr, label := range meta.AddressBook {
		b.Insert(addr, label)
	}
	return b
}

// Insert adds or overrides an entry, keyed case-insensitively.
func (b *AddressBook) Insert(address, label string) {
	b.entries[strings.ToLower(address)] = label
}

// Resolve looks up a label for an address, case-insensitively.
func (b *AddressBook) Resolve(address string) (string, bool) {
	label, ok := b.entries[strings.ToLower(address)]
	return label, ok
}

// Merge inserts every entry of other that is not already present in b
// (insert-if-absent; existing entries win). Used to layer a supplementary
// address source on top of a descriptor-native one without the former
// shadowing the latter.
func (b *AddressBook) Merge(other *AddressBook) {
	for addr, label := range other.entries {
		if _, exists := b.entries[addr]; !exists {
			b.entries[addr] = label
		}
	}
}
