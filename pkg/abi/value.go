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

package abi

import (
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"
)

// ArgumentValue is the decoded counterpart of ParamType - a tagged union
// over the same Kind set. Exactly one field is meaningful per Kind:
//   - Address: KindAddress
//   - Bytes: KindUint/KindInt (big-endian, <=32 bytes) / KindBytes / KindFixedBytes
//   - Bool: KindBool
//   - Str: KindString
//   - Items: KindArray/KindFixedArray/KindTuple
type ArgumentValue struct {
	Kind    Kind
	Address [20]byte
	Bytes   []byte
	Bool    bool
	Str     string
	Items   []ArgumentValue
}

// DecodedArgument is one positional argument of a decoded call: its
// declared type and the value decoded against it.
type DecodedArgument struct {
	Index int
	Type  ParamType
	Value ArgumentValue
}

// DecodedArguments is the full decoded call: function identity plus its
// positional arguments.
type DecodedArguments struct {
	FunctionName string
	Selector     [4]byte
	Args         []DecodedArgument
}

// BigInt interprets Bytes as a big-endian unsigned integer. Valid for
// KindUint and KindInt values; callers needing two's-complement signed
// interpretation should use SignedBigInt instead.
func (v ArgumentValue) BigInt() *big.Int {
	return new(big.Int).SetBytes(v.Bytes)
}

// SignedBigInt interprets Bytes as a two's-complement signed integer of the
// given bit width, for KindInt values.
func (v ArgumentValue) SignedBigInt(bits int) *big.Int {
	u := new(big.Int).SetBytes(v.Bytes)
	if bits > 0 {
		signBit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		if u.Cmp(signBit) >= 0 {
			modulus := new(big.Int).Lsh(big.NewInt(1), uint(bits))
			u.Sub(u, modulus)
		}
	}
	return u
}

// Raw renders the value's raw string form (spec §4.G): the representation
// used for map-reference lookups, the intent interpolator, and as the
// fallback when no format is given.
func (v ArgumentValue) Raw() string {
	switch v.Kind {
	case KindAddress:
		return "0x" + hex.EncodeToString(v.Address[:])
	case KindUint, KindInt:
		return v.BigInt().String()
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindBytes, KindFixedBytes:
		return "0x" + hex.EncodeToString(v.Bytes)
	case KindString:
		return v.Str
	case KindArray, KindFixedArray, KindTuple:
		parts := make([]string, len(v.Items))
		for i, it := range v.Items {
			parts[i] = it.Raw()
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return ""
	}
}

// AsDecimalString is a convenience used by the format dispatcher: the
// decimal string of a Uint/Int value, or the empty string for anything
// else.
func (v ArgumentValue) AsDecimalString() (string, bool) {
	switch v.Kind {
	case KindUint, KindInt:
		return v.BigInt().String(), true
	default:
		return "", false
	}
}

// lookupIndex resolves a numeric path segment against a container value
// (Array/FixedArray/Tuple), per the path-resolver rules in §4.E.
func (v ArgumentValue) lookupIndex(i int) (ArgumentValue, bool) {
	switch v.Kind {
	case KindArray, KindFixedArray, KindTuple:
		if i < 0 || i >= len(v.Items) {
			return ArgumentValue{}, false
		}
		return v.Items[i], true
	default:
		return ArgumentValue{}, false
	}
}

func parseDecimalIndex(segment string) (int, bool) {
	n, err := strconv.Atoi(segment)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
