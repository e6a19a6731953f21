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

package render

import (
	"context"
	"sort"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/kaleido-io/erc7730-clearsign/internal/csmsgs"
	"github.com/kaleido-io/erc7730-clearsign/pkg/abi"
	"github.com/kaleido-io/erc7730-clearsign/pkg/addressbook"
	"github.com/kaleido-io/erc7730-clearsign/pkg/descriptor"
	"github.com/kaleido-io/erc7730-clearsign/pkg/eip712"
	"github.com/kaleido-io/erc7730-clearsign/pkg/token"
)

// walker drives one descriptor field tree to a DisplayModel (spec §4.H).
type walker struct {
	definitions map[string]descriptor.DisplayField
	excluded    map[string]bool
	resolver    Resolver
	fmtCtx      *Context
}

// RenderCalldata selects the display format matching a decoded call's
// selector and renders it to a DisplayModel (spec §2 calldata path,
// §4.H).
func RenderCalldata(ctx context.Context, desc *descriptor.Descriptor, args *abi.DecodedArguments, chainID uint64, tokenSource token.Source, book *addressbook.AddressBook) (*DisplayModel, error) {
	format, err := selectCalldataFormat(ctx, desc, args)
	if err != nil {
		return nil, err
	}
	resolver := ArgsResolver{Args: args}
	return render(desc, format, resolver, chainID, tokenSource, book)
}

// RenderTyped selects the display format matching a typed-data request's
// primary type and renders it to a DisplayModel (spec §2 typed-data path,
// §4.H).
func RenderTyped(ctx context.Context, desc *descriptor.Descriptor, td *eip712.TypedData, tokenSource token.Source, book *addressbook.AddressBook) (*DisplayModel, error) {
	format, ok := desc.Display.Formats[td.PrimaryType]
	if !ok {
		return nil, i18n.NewError(ctx, csmsgs.MsgRenderNoFormat, "", td.PrimaryType)
	}
	resolver := TypedResolver{Message: td.Message}
	return render(desc, &format, resolver, td.Domain.EffectiveChainID(), tokenSource, book)
}

// selectCalldataFormat implements the §4.H format-selection rule: sorted
// signature-shaped keys are tried first against the calldata's selector
// (the lexicographic order makes a selector collision between two format
// keys deterministic, per the signature-matching design note in §9), then
// non-signature keys are tried as a function-name fallback.
func selectCalldataFormat(ctx context.Context, desc *descriptor.Descriptor, args *abi.DecodedArguments) (*descriptor.DisplayFormat, error) {
	keys := make([]string, 0, len(desc.Display.Formats))
	for k := range desc.Display.Formats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !strings.Contains(k, "(") {
			continue
		}
		sig, err := abi.ParseSignature(ctx, k)
		if err != nil {
			continue
		}
		if sig.Selector == args.Selector {
			f := desc.Display.Formats[k]
			return &f, nil
		}
	}
	for _, k := range keys {
		if strings.Contains(k, "(") {
			continue
		}
		if k == args.FunctionName {
			f := desc.Display.Formats[k]
			return &f, nil
		}
	}
	return nil, i18n.NewError(ctx, csmsgs.MsgRenderNoFormat, abi.SelectorHex(args.Selector), "")
}

func render(desc *descriptor.Descriptor, format *descriptor.DisplayFormat, resolver Resolver, chainID uint64, tokenSource token.Source, book *addressbook.AddressBook) (*DisplayModel, error) {
	warnings := []string{}
	w := &walker{
		definitions: desc.Display.Definitions,
		excluded:    toSet(format.Excluded),
		resolver:    resolver,
		fmtCtx: &Context{
			Metadata:    desc.Metadata,
			ChainID:     chainID,
			TokenSource: tokenSource,
			AddressBook: book,
			Resolver:    resolver,
			Warnings:    &warnings,
		},
	}

	model := &DisplayModel{}
	model.Entries = w.topLevel(format.Fields)

	if format.Intent != nil {
		model.Intent = *format.Intent
	}
	if format.InterpolatedIntent != nil {
		fieldSpecs := w.collectFieldFormats(format.Fields)
		interpolated := interpolateIntent(*format.InterpolatedIntent, resolver, w.fmtCtx, fieldSpecs)
		model.InterpolatedIntent = &interpolated
	}
	model.Warnings = *w.fmtCtx.Warnings
	return model, nil
}

func toSet(items []string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}

// topLevel walks a field list at entry granularity: a Group survives as one
// flattened Group entry (or is omitted if it ends up empty), a Simple field
// becomes one Item entry, and a Reference is resolved and recursed into
// (spec §4.H).
func (w *walker) topLevel(fields []descriptor.DisplayField) []Entry {
	var entries []Entry
	for _, f := range fields {
		switch f.Kind {
		case descriptor.FieldKindReference:
			resolved, ok := w.resolveRef(f.Ref)
			if !ok {
				continue
			}
			entries = append(entries, w.topLevel([]descriptor.DisplayField{resolved})...)
		case descriptor.FieldKindGroup:
			items := w.collectItems(f.Group.Fields)
			if len(items) == 0 {
				continue
			}
			entries = append(entries, Entry{
				Kind:           EntryKindGroup,
				GroupLabel:     f.Group.Label,
				GroupIteration: f.Group.Iteration,
				GroupItems:     items,
			})
		case descriptor.FieldKindSimple:
			if item, ok := w.renderSimple(f); ok {
				entries = append(entries, Entry{Kind: EntryKindItem, Item: item})
			}
		}
	}
	return entries
}

// collectItems walks a field list at item granularity, used inside a
// group: nested groups flatten directly into the enclosing item list
// (spec §3.6 - "groups are flat, one level").
func (w *walker) collectItems(fields []descriptor.DisplayField) []Item {
	var items []Item
	for _, f := range fields {
		switch f.Kind {
		case descriptor.FieldKindReference:
			resolved, ok := w.resolveRef(f.Ref)
			if !ok {
				continue
			}
			items = append(items, w.collectItems([]descriptor.DisplayField{resolved})...)
		case descriptor.FieldKindGroup:
			items = append(items, w.collectItems(f.Group.Fields)...)
		case descriptor.FieldKindSimple:
			if item, ok := w.renderSimple(f); ok {
				items = append(items, item)
			}
		}
	}
	return items
}

// collectFieldFormats flattens a field list (resolving references, descending
// into groups) into a path -> format/params lookup, so intent interpolation
// can render a placeholder through the same formatter its display field
// uses (spec §4.I).
func (w *walker) collectFieldFormats(fields []descriptor.DisplayField) map[string]fieldFormatSpec {
	out := map[string]fieldFormatSpec{}
	w.addFieldFormats(fields, out)
	return out
}

func (w *walker) addFieldFormats(fields []descriptor.DisplayField, out map[string]fieldFormatSpec) {
	for _, f := range fields {
		switch f.Kind {
		case descriptor.FieldKindReference:
			name := strings.TrimPrefix(f.Ref, "#/definitions/")
			if resolved, ok := w.definitions[name]; ok {
				w.addFieldFormats([]descriptor.DisplayField{resolved}, out)
			}
		case descriptor.FieldKindGroup:
			w.addFieldFormats(f.Group.Fields, out)
		case descriptor.FieldKindSimple:
			out[f.Path] = fieldFormatSpec{Format: f.Format, Params: f.Params}
		}
	}
}

func (w *walker) resolveRef(ref string) (descriptor.DisplayField, bool) {
	name := strings.TrimPrefix(ref, "#/definitions/")
	field, ok := w.definitions[name]
	if !ok {
		w.fmtCtx.warn("reference %q did not resolve to a definition", ref)
		return descriptor.DisplayField{}, false
	}
	return field, true
}

// renderSimple resolves, checks visibility, and formats one Simple field
// (spec §4.H). A path excluded by the format's `excluded` list is dropped
// silently; an unresolved, visible path becomes the literal "<unresolved>"
// plus a warning.
func (w *walker) renderSimple(f descriptor.DisplayField) (Item, bool) {
	if w.excluded[f.Path] {
		return Item{}, false
	}
	resolved := w.resolver.Resolve(f.Path)
	if !evaluateVisible(f.Visible, resolved) {
		return Item{}, false
	}
	if !resolved.Present {
		w.fmtCtx.warn("path %q did not resolve", f.Path)
		return Item{Label: f.Label, Value: "<unresolved>"}, true
	}
	value := w.fmtCtx.Format(resolved, f.Format, f.Params, f.Path)
	return Item{Label: f.Label, Value: value}, true
}
