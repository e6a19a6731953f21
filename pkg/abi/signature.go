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
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/erc7730-clearsign/internal/csmsgs"
	"golang.org/x/crypto/sha3"
)

// FunctionSignature is a parsed `name(type,type,...)` string: the parameter
// tree plus the canonical form and 4-byte selector derived from it.
type FunctionSignature struct {
	Name      string
	Params    []ParamType
	Canonical string
	Selector  [4]byte
}

// ParseSignature parses a function signature string of the shape
// `name(type,type,...)`. Whitespace anywhere in the input is ignored; the
// canonical form is rebuilt from the parsed tree, not copied from the input,
// so the selector never depends on incidental formatting.
func ParseSignature(ctx context.Context, s string) (*FunctionSignature, error) {
	trimmed := stripWhitespace(s)
	open := strings.IndexByte(trimmed, '(')
	if open <= 0 {
		return nil, i18n.NewError(ctx, csmsgs.MsgInvalidSignature, s)
	}
	if !strings.HasSuffix(trimmed, ")") {
		return nil, i18n.NewError(ctx, csmsgs.MsgInvalidSignature, s)
	}
	name := trimmed[:open]
	if !isValidIdentifier(name) {
		return nil, i18n.NewError(ctx, csmsgs.MsgInvalidSignature, s)
	}
	body := trimmed[open+1 : len(trimmed)-1]
	memberStrs, err := splitTopLevel(ctx, body)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, csmsgs.MsgInvalidSignature, s)
	}
	params := make([]ParamType, len(memberStrs))
	for i, m := range memberStrs {
		pt, err := parseParamType(ctx, m)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, csmsgs.MsgInvalidSignature, s)
		}
		params[i] = pt
	}

	canonical := buildCanonical(name, params)
	selector := Selector4(canonical)
	return &FunctionSignature{
		Name:      name,
		Params:    params,
		Canonical: canonical,
		Selector:  selector,
	}, nil
}

func buildCanonical(name string, params []ParamType) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

// Selector4 returns the first 4 bytes of keccak-256 of the canonical
// signature string.
func Selector4(canonical string) [4]byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(canonical))
	sum := hash.Sum(nil)
	var sel [4]byte
	copy(sel[:], sum[:4])
	return sel
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if !isAlpha && !isDigit {
			return false
		}
	}
	return true
}

// SelectorHex renders a selector as a "0x"-prefixed lowercase hex string,
// for error messages and selector comparisons against calldata.
func SelectorHex(sel [4]byte) string {
	return fmt.Sprintf("0x%x", sel[:])
}
