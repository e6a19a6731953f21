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

// Package render implements the format dispatcher, field walker, path
// resolver, visibility evaluator, and intent interpolator that turn a
// decoded call or typed-data message plus a descriptor into a DisplayModel
// (spec §4.E-§4.I).
package render

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kaleido-io/erc7730-clearsign/pkg/abi"
)

// Resolved is the common currency the path resolver hands to the format
// dispatcher, visibility evaluator, and intent interpolator, regardless of
// whether it came from decoded calldata arguments or a typed-data message
// (spec §4.E-§4.G apply identically to both once a path has resolved).
type Resolved struct {
	Present   bool
	IsAddress bool
	Raw       string
}

var hexAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Resolver resolves a field path against one decoded call or typed-data
// message (spec §4.E).
type Resolver interface {
	Resolve(path string) Resolved
}

// stripAnchor removes the optional leading "@." a path may carry.
func stripAnchor(path string) string {
	return strings.TrimPrefix(path, "@.")
}

// ArgsResolver resolves paths against decoded calldata arguments.
type ArgsResolver struct {
	Args *abi.DecodedArguments
}

var argsIndexPattern = regexp.MustCompile(`^args\[(\d+)\]$`)

// Resolve implements Resolver for the decoded-arguments path grammar
// (spec §4.E): the first segment is either a bare non-negative integer or
// `args[N]`, indexing the top-level arguments; every subsequent segment
// must be a bare non-negative integer indexing into the current
// Array/FixedArray/Tuple value. Any other shape, or an index out of range,
// resolves to an absent value.
func (r ArgsResolver) Resolve(path string) Resolved {
	path = stripAnchor(path)
	if path == "" {
		return Resolved{}
	}
	segments := strings.Split(path, ".")

	first := segments[0]
	var idx int
	if m := argsIndexPattern.FindStringSubmatch(first); m != nil {
		idx, _ = strconv.Atoi(m[1])
	} else if n, ok := parseNonNegativeInt(first); ok {
		idx = n
	} else {
		return Resolved{}
	}
	if r.Args == nil || idx < 0 || idx >= len(r.Args.Args) {
		return Resolved{}
	}
	current := r.Args.Args[idx].Value

	for _, seg := range segments[1:] {
		n, ok := parseNonNegativeInt(seg)
		if !ok {
			return Resolved{}
		}
		switch current.Kind {
		case abi.KindArray, abi.KindFixedArray, abi.KindTuple:
			if n < 0 || n >= len(current.Items) {
				return Resolved{}
			}
			current = current.Items[n]
		default:
			return Resolved{}
		}
	}
	return resolvedFromArgValue(current)
}

func resolvedFromArgValue(v abi.ArgumentValue) Resolved {
	return Resolved{
		Present:   true,
		IsAddress: v.Kind == abi.KindAddress,
		Raw:       v.Raw(),
	}
}

func parseNonNegativeInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// TypedResolver resolves paths against an EIP-712 typed-data message, a
// plain `map[string]interface{}` as produced by encoding/json.
type TypedResolver struct {
	Message map[string]interface{}
}

var typedSegmentPattern = regexp.MustCompile(`^([A-Za-z0-9_]+)(?:\[(\d+)\])?$`)

// Resolve implements Resolver for the typed-data path grammar (spec §4.E):
// dot-separated segments address JSON object keys; a segment of the form
// `key[N]` additionally descends into the N'th element of that key's
// array value. Any shape mismatch, missing key, or out-of-range index
// resolves to an absent value.
func (r TypedResolver) Resolve(path string) Resolved {
	path = stripAnchor(path)
	if path == "" {
		return Resolved{}
	}
	var current interface{} = r.Message
	for _, seg := range strings.Split(path, ".") {
		m := typedSegmentPattern.FindStringSubmatch(seg)
		if m == nil {
			return Resolved{}
		}
		obj, ok := current.(map[string]interface{})
		if !ok {
			return Resolved{}
		}
		val, ok := obj[m[1]]
		if !ok {
			return Resolved{}
		}
		current = val
		if m[2] != "" {
			idx, _ := strconv.Atoi(m[2])
			arr, ok := current.([]interface{})
			if !ok || idx < 0 || idx >= len(arr) {
				return Resolved{}
			}
			current = arr[idx]
		}
	}
	return resolvedFromJSONValue(current)
}

// resolvedFromJSONValue converts a JSON-decoded value (string, json.Number
// or float64, bool, []interface{}, map[string]interface{}, or nil) into the
// common Resolved currency. Its raw string form mirrors the original
// engine's json_value_to_string: strings pass through unquoted, numbers and
// booleans stringify directly, arrays render as their elements' raw forms
// bracketed and comma-separated, and objects render as their JSON text.
func resolvedFromJSONValue(v interface{}) Resolved {
	raw := jsonValueToString(v)
	return Resolved{
		Present:   true,
		IsAddress: hexAddressPattern.MatchString(raw),
		Raw:       raw,
	}
}
