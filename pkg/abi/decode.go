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
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/kaleido-io/erc7730-clearsign/internal/csmsgs"
)

// DefaultMaxDecodeDepth is the recursion guard applied when a caller does not
// override it via DecodeCalldata's depth parameter (spec §5, recommended 32).
const DefaultMaxDecodeDepth = 32

const wordSize = 32

// DecodeCalldata decodes ABI-encoded calldata against a parsed function
// signature. Offsets inside a dynamic tuple or array-of-dynamic are resolved
// relative to that tuple/array's own base, per full ABI semantics - not the
// flat "32 bytes per element from the calldata-wide head" shortcut.
func DecodeCalldata(ctx context.Context, sig *FunctionSignature, calldata []byte, maxDepth int) (*DecodedArguments, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDecodeDepth
	}
	if len(calldata) < 4 {
		return nil, i18n.NewError(ctx, csmsgs.MsgCalldataTooShort, 0, 4, len(calldata))
	}
	var selector [4]byte
	copy(selector[:], calldata[:4])
	if !bytes.Equal(selector[:], sig.Selector[:]) {
		return nil, i18n.NewError(ctx, csmsgs.MsgSelectorMismatch, SelectorHex(sig.Selector), SelectorHex(selector))
	}

	log.L(ctx).Tracef("abi: decoding %s against %d bytes of calldata", sig.Canonical, len(calldata))
	items, err := decodeSequence(ctx, calldata, 4, sig.Params, 0, maxDepth, sig.Name)
	if err != nil {
		return nil, err
	}
	args := make([]DecodedArgument, len(items))
	for i, v := range items {
		args[i] = DecodedArgument{Index: i, Type: sig.Params[i], Value: v}
	}
	return &DecodedArguments{
		FunctionName: sig.Name,
		Selector:     sig.Selector,
		Args:         args,
	}, nil
}

// decodeSequence decodes a list of types whose combined head starts at base
// (absolute offset into data). This is the shared shape for top-level call
// arguments, tuple members, and array elements - each establishes its own
// base for the dynamic-offset math of its members.
func decodeSequence(ctx context.Context, data []byte, base int, types []ParamType, depth, maxDepth int, breadcrumbs string) ([]ArgumentValue, error) {
	if depth > maxDepth {
		return nil, i18n.NewError(ctx, csmsgs.MsgRecursionTooDeep, maxDepth)
	}
	results := make([]ArgumentValue, len(types))
	cursor := 0
	for i, t := range types {
		wordOff := base + cursor*wordSize
		crumb := fmt.Sprintf("%s[%d]", breadcrumbs, i)
		if t.IsDynamic() {
			word, err := readWord(ctx, data, wordOff, crumb)
			if err != nil {
				return nil, err
			}
			offset, err := offsetFromWord(ctx, word, crumb)
			if err != nil {
				return nil, err
			}
			tailBase := base + offset
			val, err := decodeValue(ctx, data, tailBase, t, depth+1, maxDepth, crumb)
			if err != nil {
				return nil, err
			}
			results[i] = val
			cursor++
		} else {
			val, err := decodeValue(ctx, data, wordOff, t, depth+1, maxDepth, crumb)
			if err != nil {
				return nil, err
			}
			results[i] = val
			cursor += staticWordCount(t)
		}
	}
	return results, nil
}

// staticWordCount is the number of 32-byte words a static (non-dynamic) type
// occupies inline in its enclosing head.
func staticWordCount(t ParamType) int {
	switch t.Kind {
	case KindTuple:
		sum := 0
		for _, c := range t.Components {
			sum += staticWordCount(c)
		}
		return sum
	case KindFixedArray:
		return t.N * staticWordCount(*t.Elem)
	default:
		return 1
	}
}

func decodeValue(ctx context.Context, data []byte, offset int, t ParamType, depth, maxDepth int, breadcrumbs string) (ArgumentValue, error) {
	if depth > maxDepth {
		return ArgumentValue{}, i18n.NewError(ctx, csmsgs.MsgRecursionTooDeep, maxDepth)
	}
	switch t.Kind {
	case KindAddress:
		word, err := readWord(ctx, data, offset, breadcrumbs)
		if err != nil {
			return ArgumentValue{}, err
		}
		for _, b := range word[:12] {
			if b != 0 {
				return ArgumentValue{}, i18n.NewError(ctx, csmsgs.MsgInvalidAddrValue, offset)
			}
		}
		var addr [20]byte
		copy(addr[:], word[12:])
		return ArgumentValue{Kind: KindAddress, Address: addr}, nil

	case KindUint, KindInt:
		word, err := readWord(ctx, data, offset, breadcrumbs)
		if err != nil {
			return ArgumentValue{}, err
		}
		b := make([]byte, wordSize)
		copy(b, word[:])
		return ArgumentValue{Kind: t.Kind, Bytes: b}, nil

	case KindBool:
		word, err := readWord(ctx, data, offset, breadcrumbs)
		if err != nil {
			return ArgumentValue{}, err
		}
		return ArgumentValue{Kind: KindBool, Bool: word[wordSize-1] != 0}, nil

	case KindFixedBytes:
		word, err := readWord(ctx, data, offset, breadcrumbs)
		if err != nil {
			return ArgumentValue{}, err
		}
		b := make([]byte, t.N)
		copy(b, word[:t.N])
		return ArgumentValue{Kind: KindFixedBytes, Bytes: b}, nil

	case KindBytes:
		length, content, err := readLengthPrefixed(ctx, data, offset, breadcrumbs)
		if err != nil {
			return ArgumentValue{}, err
		}
		_ = length
		return ArgumentValue{Kind: KindBytes, Bytes: content}, nil

	case KindString:
		_, content, err := readLengthPrefixed(ctx, data, offset, breadcrumbs)
		if err != nil {
			return ArgumentValue{}, err
		}
		if !utf8.Valid(content) {
			return ArgumentValue{}, i18n.NewError(ctx, csmsgs.MsgInvalidEncoding, offset, "string is not valid UTF-8")
		}
		return ArgumentValue{Kind: KindString, Str: string(content)}, nil

	case KindArray:
		lengthWord, err := readWord(ctx, data, offset, breadcrumbs)
		if err != nil {
			return ArgumentValue{}, err
		}
		length, err := offsetFromWord(ctx, lengthWord, breadcrumbs)
		if err != nil {
			return ArgumentValue{}, err
		}
		elemBase := offset + wordSize
		elemTypes := make([]ParamType, length)
		for i := range elemTypes {
			elemTypes[i] = *t.Elem
		}
		items, err := decodeSequence(ctx, data, elemBase, elemTypes, depth, maxDepth, breadcrumbs)
		if err != nil {
			return ArgumentValue{}, err
		}
		return ArgumentValue{Kind: KindArray, Items: items}, nil

	case KindFixedArray:
		elemTypes := make([]ParamType, t.N)
		for i := range elemTypes {
			elemTypes[i] = *t.Elem
		}
		items, err := decodeSequence(ctx, data, offset, elemTypes, depth, maxDepth, breadcrumbs)
		if err != nil {
			return ArgumentValue{}, err
		}
		return ArgumentValue{Kind: KindFixedArray, Items: items}, nil

	case KindTuple:
		items, err := decodeSequence(ctx, data, offset, t.Components, depth, maxDepth, breadcrumbs)
		if err != nil {
			return ArgumentValue{}, err
		}
		return ArgumentValue{Kind: KindTuple, Items: items}, nil

	default:
		return ArgumentValue{}, i18n.NewError(ctx, csmsgs.MsgUnsupportedType, t.String())
	}
}

func readWord(ctx context.Context, data []byte, offset int, breadcrumbs string) ([]byte, error) {
	if offset < 0 || offset+wordSize > len(data) {
		return nil, i18n.NewError(ctx, csmsgs.MsgCalldataTooShort, offset, wordSize, len(data)-offset)
	}
	log.L(ctx).Tracef("abi: %s reading word at offset %d", breadcrumbs, offset)
	return data[offset : offset+wordSize], nil
}

func readLengthPrefixed(ctx context.Context, data []byte, offset int, breadcrumbs string) (int, []byte, error) {
	lengthWord, err := readWord(ctx, data, offset, breadcrumbs)
	if err != nil {
		return 0, nil, err
	}
	length, err := offsetFromWord(ctx, lengthWord, breadcrumbs)
	if err != nil {
		return 0, nil, err
	}
	start := offset + wordSize
	if start+length > len(data) || start+length < start {
		return 0, nil, i18n.NewError(ctx, csmsgs.MsgCalldataTooShort, start, length, len(data)-start)
	}
	content := make([]byte, length)
	copy(content, data[start:start+length])
	return length, content, nil
}

// offsetFromWord interprets a 32-byte word as an offset/length. The high 24
// bytes must be zero (spec §4.B); the low 8 bytes are read as a big-endian
// uint64.
func offsetFromWord(ctx context.Context, word []byte, breadcrumbs string) (int, error) {
	for _, b := range word[:24] {
		if b != 0 {
			return 0, i18n.NewError(ctx, csmsgs.MsgInvalidEncoding, 0, fmt.Sprintf("%s: offset word has non-zero high bytes", breadcrumbs))
		}
	}
	v := binary.BigEndian.Uint64(word[24:])
	if v > uint64(1<<40) {
		return 0, i18n.NewError(ctx, csmsgs.MsgOffsetOutOfRange, v, 1<<40)
	}
	return int(v), nil
}
