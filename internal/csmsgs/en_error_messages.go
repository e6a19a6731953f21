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

package csmsgs

import "github.com/hyperledger/firefly-common/pkg/i18n"

var ffe = i18n.FFE

//revive:disable
var (
	// signature / selector errors
	MsgInvalidSignature  = ffe("FF30001", "Invalid function signature: %s")
	MsgUnsupportedType   = ffe("FF30002", "Unsupported parameter type: %s")
	MsgSelectorMismatch  = ffe("FF30003", "Selector mismatch: expected=%s actual=%s")
	MsgDuplicateTypeName = ffe("FF30004", "Duplicate tuple component name '%s' in signature %s")

	// calldata decoding errors
	MsgCalldataTooShort  = ffe("FF30010", "Calldata too short at offset %d: expected at least %d bytes, got %d")
	MsgInvalidEncoding   = ffe("FF30011", "Invalid ABI encoding at offset %d: %s")
	MsgOffsetOutOfRange  = ffe("FF30012", "Dynamic offset %d out of range for calldata of length %d")
	MsgRecursionTooDeep  = ffe("FF30013", "Maximum decode recursion depth %d exceeded")
	MsgInvalidBoolValue  = ffe("FF30014", "Invalid boolean word at offset %d")
	MsgInvalidAddrValue  = ffe("FF30015", "Invalid address word at offset %d: non-zero bytes in padding")

	// descriptor errors
	MsgDescriptorParse     = ffe("FF30020", "Failed to parse descriptor: %s")
	MsgDescriptorBadField  = ffe("FF30022", "Invalid field definition '%s': %s")
	MsgDescriptorBadPath   = ffe("FF30023", "Invalid path expression '%s': %s")
	MsgDescriptorBadVisible = ffe("FF30024", "Invalid visibility rule for field '%s': %s")

	// resolver errors (descriptor / token acquisition)
	MsgResolveNotFound   = ffe("FF30030", "No descriptor found for chain %d address %s")
	MsgResolveParse      = ffe("FF30031", "Failed to parse resolved descriptor: %s")
	MsgResolveIO         = ffe("FF30032", "I/O error resolving descriptor: %s")
	MsgTokenRegistryLookup = ffe("FF30033", "Token registry lookup failed for %s: %s")

	// rendering errors
	MsgRenderPathUnresolved = ffe("FF30040", "Path '%s' did not resolve against the decoded value")
	MsgRenderBadFormat      = ffe("FF30041", "Cannot apply format '%s' to value at path '%s': %s")
	MsgRenderBadIntent      = ffe("FF30042", "Malformed intent template: %s")
	MsgRenderNoFormat       = ffe("FF30043", "No display format matches selector %s or primary type %s")
)
