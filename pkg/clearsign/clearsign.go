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

// Package clearsign is the top-level entry point for the decode-and-render
// pipeline: given a descriptor and either contract calldata or an EIP-712
// typed-data request, it produces the DisplayModel a wallet shows the person
// signing (spec §2, §5). The package is a synchronous pure computation - it
// performs no I/O itself; TokenSource and DescriptorSource collaborators are
// passed in by the caller, and the address book is built from the
// descriptor's own deployments and metadata.
package clearsign

import (
	"bytes"
	"context"
	"sort"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/kaleido-io/erc7730-clearsign/internal/csmsgs"
	"github.com/kaleido-io/erc7730-clearsign/pkg/abi"
	"github.com/kaleido-io/erc7730-clearsign/pkg/addressbook"
	"github.com/kaleido-io/erc7730-clearsign/pkg/descriptor"
	"github.com/kaleido-io/erc7730-clearsign/pkg/descriptorsource"
	"github.com/kaleido-io/erc7730-clearsign/pkg/eip712"
	"github.com/kaleido-io/erc7730-clearsign/pkg/render"
	"github.com/kaleido-io/erc7730-clearsign/pkg/token"
)

// DisplayModel is re-exported so callers need only import this package for
// the common calldata/typed-data entry points.
type DisplayModel = render.DisplayModel

// FormatCalldata is the main entry point for contract-call clear signing.
// It finds the format key whose signature selector matches the calldata,
// decodes the calldata against that signature, and renders the result.
func FormatCalldata(ctx context.Context, desc *descriptor.Descriptor, chainID uint64, to string, calldata []byte, tokenSource token.Source) (*DisplayModel, error) {
	if len(calldata) < 4 {
		return nil, i18n.NewError(ctx, csmsgs.MsgCalldataTooShort, 0, 4, len(calldata))
	}
	var selector [4]byte
	copy(selector[:], calldata[:4])

	sig, err := findMatchingSignature(ctx, desc, selector)
	if err != nil {
		return nil, err
	}

	log.L(ctx).Debugf("clearsign: decoding calldata to %s against signature %s", to, sig.Canonical)
	decoded, err := abi.DecodeCalldata(ctx, sig, calldata, 0)
	if err != nil {
		return nil, err
	}

	book := addressbook.FromDescriptor(desc.Context, desc.Metadata)
	return render.RenderCalldata(ctx, desc, decoded, chainID, tokenSource, book)
}

// FormatTypedData is the entry point for EIP-712 clear signing: the display
// format is selected directly by the request's primary type (spec §2
// typed-data path).
func FormatTypedData(ctx context.Context, desc *descriptor.Descriptor, data *eip712.TypedData, tokenSource token.Source) (*DisplayModel, error) {
	book := addressbook.FromDescriptor(desc.Context, desc.Metadata)
	return render.RenderTyped(ctx, desc, data, tokenSource, book)
}

// Format is the high-level convenience that resolves a descriptor for
// (chainID, to) before rendering the calldata (spec §6 DescriptorSource
// capability).
func Format(ctx context.Context, chainID uint64, to string, calldata []byte, source descriptorsource.Source, tokenSource token.Source) (*DisplayModel, error) {
	resolved, err := source.ResolveCalldata(ctx, chainID, to)
	if err != nil {
		return nil, err
	}
	return FormatCalldata(ctx, resolved.Descriptor, chainID, to, calldata, tokenSource)
}

// findMatchingSignature scans the descriptor's signature-shaped format keys
// for one whose derived selector matches, in sorted order so a selector
// collision between two keys resolves the same way every time (spec §9).
func findMatchingSignature(ctx context.Context, desc *descriptor.Descriptor, selector [4]byte) (*abi.FunctionSignature, error) {
	keys := make([]string, 0, len(desc.Display.Formats))
	for k := range desc.Display.Formats {
		if strings.Contains(k, "(") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		sig, err := abi.ParseSignature(ctx, k)
		if err != nil {
			continue
		}
		if bytes.Equal(sig.Selector[:], selector[:]) {
			return sig, nil
		}
	}
	return nil, i18n.NewError(ctx, csmsgs.MsgRenderNoFormat, abi.SelectorHex(selector), "")
}
