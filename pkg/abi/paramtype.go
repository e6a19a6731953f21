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
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/erc7730-clearsign/internal/csmsgs"
)

// Kind discriminates the closed set of ABI parameter shapes. There is no
// inheritance here - ParamType is a tagged union and every consumer switches
// on Kind.
type Kind int

const (
	KindAddress Kind = iota
	KindUint
	KindInt
	KindBool
	KindBytes
	KindFixedBytes
	KindString
	KindArray
	KindFixedArray
	KindTuple
)

// ParamType is a node in the recursive ABI parameter tree (signature %3.1).
// Only the fields relevant to Kind are populated:
//   - Bits: Uint/Int bit width
//   - N: FixedBytes byte length, or FixedArray element count
//   - Elem: Array/FixedArray element type
//   - Components: Tuple member types
//   - ComponentNames: Tuple member names, parallel to Components (may be empty strings)
type ParamType struct {
	Kind           Kind
	Bits           int
	N              int
	Elem           *ParamType
	Components     []ParamType
	ComponentNames []string
}

// IsDynamic reports whether a value of this type occupies a variable-length
// tail rather than a single 32-byte head word.
func (p ParamType) IsDynamic() bool {
	switch p.Kind {
	case KindBytes, KindString, KindArray:
		return true
	case KindFixedArray:
		return p.Elem != nil && p.Elem.IsDynamic()
	case KindTuple:
		for _, c := range p.Components {
			if c.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// String renders the canonical Solidity-style type string for this node.
func (p ParamType) String() string {
	switch p.Kind {
	case KindAddress:
		return "address"
	case KindUint:
		return "uint" + strconv.Itoa(p.Bits)
	case KindInt:
		return "int" + strconv.Itoa(p.Bits)
	case KindBool:
		return "bool"
	case KindBytes:
		return "bytes"
	case KindFixedBytes:
		return "bytes" + strconv.Itoa(p.N)
	case KindString:
		return "string"
	case KindArray:
		return p.Elem.String() + "[]"
	case KindFixedArray:
		return p.Elem.String() + "[" + strconv.Itoa(p.N) + "]"
	case KindTuple:
		parts := make([]string, len(p.Components))
		for i, c := range p.Components {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, ",") + ")"
	default:
		return "?"
	}
}

// parseParamType parses a single type string, recognizing array suffixes
// from the right and tuples as parenthesized, comma-separated component
// lists. Commas at nesting depth > 0 belong to a nested tuple, not to this
// level's separator.
func parseParamType(ctx context.Context, s string) (ParamType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ParamType{}, i18n.NewError(ctx, csmsgs.MsgInvalidSignature, "empty type")
	}

	// array suffix: find a trailing "[...]" whose '[' is not inside a
	// deeper tuple - since we only ever strip from the right and tuples
	// are already balanced, the last ']' always pairs with the last
	// unmatched '['.
	if strings.HasSuffix(s, "]") {
		depth := 0
		for i := len(s) - 1; i >= 0; i-- {
			switch s[i] {
			case ')':
				depth++
			case '(':
				depth--
			case '[':
				if depth == 0 {
					inner := s[:i]
					nStr := s[i+1 : len(s)-1]
					elemType, err := parseParamType(ctx, inner)
					if err != nil {
						return ParamType{}, err
					}
					if nStr == "" {
						return ParamType{Kind: KindArray, Elem: &elemType}, nil
					}
					n, convErr := strconv.Atoi(nStr)
					if convErr != nil || n < 0 {
						return ParamType{}, i18n.NewError(ctx, csmsgs.MsgInvalidSignature, fmt.Sprintf("bad array length in %q", s))
					}
					return ParamType{Kind: KindFixedArray, Elem: &elemType, N: n}, nil
				}
			}
		}
	}

	if strings.HasPrefix(s, "(") {
		if !strings.HasSuffix(s, ")") {
			return ParamType{}, i18n.NewError(ctx, csmsgs.MsgInvalidSignature, fmt.Sprintf("unbalanced tuple %q", s))
		}
		members, err := splitTopLevel(ctx, s[1:len(s)-1])
		if err != nil {
			return ParamType{}, err
		}
		components := make([]ParamType, len(members))
		for i, m := range members {
			ct, err := parseParamType(ctx, m)
			if err != nil {
				return ParamType{}, err
			}
			components[i] = ct
		}
		return ParamType{Kind: KindTuple, Components: components, ComponentNames: make([]string, len(components))}, nil
	}

	switch {
	case s == "address":
		return ParamType{Kind: KindAddress}, nil
	case s == "bool":
		return ParamType{Kind: KindBool}, nil
	case s == "string":
		return ParamType{Kind: KindString}, nil
	case s == "bytes":
		return ParamType{Kind: KindBytes}, nil
	case s == "uint":
		return ParamType{Kind: KindUint, Bits: 256}, nil
	case s == "int":
		return ParamType{Kind: KindInt, Bits: 256}, nil
	case strings.HasPrefix(s, "uint"):
		bits, err := parseWidth(ctx, s, "uint")
		if err != nil {
			return ParamType{}, err
		}
		return ParamType{Kind: KindUint, Bits: bits}, nil
	case strings.HasPrefix(s, "int"):
		bits, err := parseWidth(ctx, s, "int")
		if err != nil {
			return ParamType{}, err
		}
		return ParamType{Kind: KindInt, Bits: bits}, nil
	case strings.HasPrefix(s, "bytes"):
		n, err := strconv.Atoi(s[len("bytes"):])
		if err != nil || n <= 0 || n > 32 {
			return ParamType{}, i18n.NewError(ctx, csmsgs.MsgInvalidSignature, fmt.Sprintf("malformed fixed bytes type %q", s))
		}
		return ParamType{Kind: KindFixedBytes, N: n}, nil
	default:
		return ParamType{}, i18n.NewError(ctx, csmsgs.MsgUnsupportedType, s)
	}
}

func parseWidth(ctx context.Context, s, prefix string) (int, error) {
	bits, err := strconv.Atoi(s[len(prefix):])
	if err != nil || bits <= 0 || bits > 256 || bits%8 != 0 {
		return 0, i18n.NewError(ctx, csmsgs.MsgInvalidSignature, fmt.Sprintf("malformed integer width in %q", s))
	}
	return bits, nil
}

// splitTopLevel splits a comma-separated type list, ignoring commas nested
// inside parentheses or brackets.
func splitTopLevel(ctx context.Context, s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth < 0 {
				return nil, i18n.NewError(ctx, csmsgs.MsgInvalidSignature, fmt.Sprintf("unbalanced parentheses in %q", s))
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, i18n.NewError(ctx, csmsgs.MsgInvalidSignature, fmt.Sprintf("unbalanced parentheses in %q", s))
	}
	parts = append(parts, s[start:])
	return parts, nil
}
