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
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/kaleido-io/erc7730-clearsign/pkg/addressbook"
	"github.com/kaleido-io/erc7730-clearsign/pkg/descriptor"
	"github.com/kaleido-io/erc7730-clearsign/pkg/ethtypes"
	"github.com/kaleido-io/erc7730-clearsign/pkg/token"
)

// chainNames is the known-chain table for the ChainId format (spec §4.G).
var chainNames = map[uint64]string{
	1:       "Ethereum",
	10:      "Optimism",
	56:      "BNB Chain",
	100:     "Gnosis",
	137:     "Polygon",
	250:     "Fantom",
	324:     "zkSync Era",
	8453:    "Base",
	42161:   "Arbitrum One",
	42170:   "Arbitrum Nova",
	43114:   "Avalanche",
	59144:   "Linea",
	534352:  "Scroll",
	7777777: "Zora",
}

// nativeCurrencies is the chain -> native-asset table TokenAmount falls back
// to when params.native_currency_address matches the resolved token path
// (spec §4.G); decimals is always 18 for a chain's native asset.
var nativeCurrencies = map[uint64]string{
	1:       "ETH",
	10:      "ETH",
	56:      "BNB",
	100:     "xDAI",
	137:     "MATIC",
	250:     "FTM",
	324:     "ETH",
	8453:    "ETH",
	42161:   "ETH",
	42170:   "ETH",
	43114:   "AVAX",
	59144:   "ETH",
	534352:  "ETH",
	7777777: "ETH",
}

// Context carries everything the format dispatcher needs beyond the
// resolved value itself: the descriptor's metadata (for enums/maps), the
// request's default chain ID, the token and address-label collaborators,
// the resolver for the surrounding render (used to evaluate chain_id_path
// against the same root), and the append-only warnings list (spec §4.G,
// §5).
type Context struct {
	Metadata    descriptor.Metadata
	ChainID     uint64
	TokenSource token.Source
	AddressBook *addressbook.AddressBook
	Resolver    Resolver
	Warnings    *[]string
}

func (c *Context) warn(format string, args ...interface{}) {
	*c.Warnings = append(*c.Warnings, fmt.Sprintf(format, args...))
}

// Format renders a resolved value per the §4.G dispatch rules: the
// short-circuit contracts (encryption fallback, map reference), the raw
// string fallback when format is absent, and finally the per-format
// renderers.
func (c *Context) Format(value Resolved, format *descriptor.FieldFormat, params *descriptor.FormatParams, path string) string {
	if params != nil && params.Encryption != nil && params.Encryption.FallbackLabel != nil {
		return *params.Encryption.FallbackLabel
	}
	if params != nil && params.MapReference != nil {
		if m, ok := c.Metadata.Maps[*params.MapReference]; ok {
			if label, ok := m.Entries[value.Raw]; ok {
				return label
			}
		}
	}
	if format == nil {
		return value.Raw
	}

	switch *format {
	case descriptor.FormatAddress:
		return c.formatAddress(value)
	case descriptor.FormatAddressName:
		return c.formatAddressName(value)
	case descriptor.FormatNumber, descriptor.FormatAmount:
		return c.formatNumber(value)
	case descriptor.FormatRaw:
		return value.Raw
	case descriptor.FormatTokenAmount:
		return c.formatTokenAmount(value, params, path)
	case descriptor.FormatTokenTicker:
		return c.formatTokenTicker(value, path)
	case descriptor.FormatChainID:
		return c.formatChainID(value)
	case descriptor.FormatDate:
		return c.formatDate(value)
	case descriptor.FormatEnum:
		return c.formatEnum(value, params)
	case descriptor.FormatCalldata, descriptor.FormatNftName, descriptor.FormatDuration, descriptor.FormatUnit:
		c.warn("format %q is not implemented, rendering raw value at %q", *format, path)
		return value.Raw
	default:
		c.warn("unrecognized format %q at %q, rendering raw value", *format, path)
		return value.Raw
	}
}

func (c *Context) formatAddress(value Resolved) string {
	if !value.IsAddress {
		return value.Raw
	}
	return checksum(value.Raw)
}

func (c *Context) formatAddressName(value Resolved) string {
	if !value.IsAddress {
		return value.Raw
	}
	if c.AddressBook != nil {
		if label, ok := c.AddressBook.Resolve(value.Raw); ok {
			return label
		}
	}
	return checksum(value.Raw)
}

func checksum(addrHex string) string {
	a, err := ethtypes.NewAddressWithChecksum(addrHex)
	if err != nil {
		return addrHex
	}
	return a.String()
}

// formatNumber renders the decimal form of the resolved value. The raw
// string form of a Uint/Int argument, or a typed-data number, is already
// its decimal representation, so Number/Amount is the raw string form
// unchanged (spec §4.G).
func (c *Context) formatNumber(value Resolved) string {
	return value.Raw
}

func (c *Context) formatEnum(value Resolved, params *descriptor.FormatParams) string {
	if params != nil && params.EnumPath != nil {
		if table, ok := c.Metadata.Enums[*params.EnumPath]; ok {
			if label, ok := table[value.Raw]; ok {
				return label
			}
		}
	}
	return value.Raw
}

func (c *Context) formatChainID(value Resolved) string {
	n, ok := new(big.Int).SetString(value.Raw, 10)
	if !ok {
		return value.Raw
	}
	id := n.Uint64()
	if name, ok := chainNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Chain %d", id)
}

func (c *Context) formatDate(value Resolved) string {
	ts, ok := new(big.Int).SetString(value.Raw, 10)
	if !ok {
		c.warn("date value %q is not a valid timestamp", value.Raw)
		return value.Raw
	}
	return time.Unix(ts.Int64(), 0).UTC().Format("2006-01-02 15:04:05 UTC")
}

func (c *Context) formatTokenTicker(value Resolved, path string) string {
	if !value.IsAddress {
		return value.Raw
	}
	meta, ok := c.lookupToken(value.Raw, nil)
	if !ok {
		c.warn("no token metadata for %q at %q", value.Raw, path)
		return value.Raw
	}
	return meta.Symbol
}

func (c *Context) formatTokenAmount(value Resolved, params *descriptor.FormatParams, path string) string {
	amount, ok := new(big.Int).SetString(value.Raw, 10)
	if !ok {
		return value.Raw
	}

	var tokenAddr string
	if params != nil && params.TokenPath != nil {
		if c.Resolver != nil {
			resolved := c.Resolver.Resolve(*params.TokenPath)
			if resolved.IsAddress {
				tokenAddr = resolved.Raw
			}
		}
	}
	if tokenAddr == "" {
		c.warn("tokenAmount at %q has no resolvable token address, rendering bare amount", path)
		return amount.String()
	}

	meta, ok := c.lookupToken(tokenAddr, params)
	if !ok {
		c.warn("no token metadata for %q at %q", tokenAddr, path)
		return amount.String()
	}
	return formatWithDecimals(amount, meta.Decimals) + " " + meta.Symbol
}

// lookupToken consults the token source for tokenAddr at the effective
// chain ID, falling back to the native-currency table when
// params.native_currency_address matches tokenAddr (spec §4.G).
func (c *Context) lookupToken(tokenAddr string, params *descriptor.FormatParams) (token.Meta, bool) {
	chainID := c.effectiveChainID(params)
	if params != nil && params.NativeCurrencyAddress != nil && strings.EqualFold(*params.NativeCurrencyAddress, tokenAddr) {
		if symbol, ok := nativeCurrencies[chainID]; ok {
			return token.Meta{Symbol: symbol, Decimals: 18}, true
		}
	}
	if c.TokenSource == nil {
		return token.Meta{}, false
	}
	return c.TokenSource.Lookup(token.NewKey(chainID, tokenAddr))
}

// effectiveChainID resolves params.chain_id, then params.chain_id_path
// against the surrounding render's root, then the request's default chain
// ID (spec §4.G).
func (c *Context) effectiveChainID(params *descriptor.FormatParams) uint64 {
	if params != nil {
		if params.ChainID != nil {
			return params.ChainID.Uint64()
		}
		if params.ChainIDPath != nil && c.Resolver != nil {
			resolved := c.Resolver.Resolve(*params.ChainIDPath)
			if resolved.Present {
				if n, ok := new(big.Int).SetString(resolved.Raw, 10); ok {
					return n.Uint64()
				}
			}
		}
	}
	return c.ChainID
}

// formatWithDecimals renders an unsigned amount with a decimal point placed
// decimals digits from the right, trimming trailing fractional zeros (spec
// §4.G). An amount whose integer part is zero always keeps one fractional
// digit (e.g. "0.0", never bare "0"); any other whole-multiple amount drops
// the point entirely once its fraction trims to nothing.
func formatWithDecimals(amount *big.Int, decimals uint8) string {
	s := amount.String()
	d := int(decimals)
	if d == 0 {
		return s
	}

	if len(s) <= d {
		zeros := d - len(s)
		result := "0." + strings.Repeat("0", zeros) + s
		trimmed := strings.TrimRight(result, "0")
		if strings.HasSuffix(trimmed, ".") {
			return trimmed + "0"
		}
		return trimmed
	}

	split := len(s) - d
	intPart, fracPart := s[:split], s[split:]
	trimmed := strings.TrimRight(fracPart, "0")
	if trimmed == "" {
		return intPart
	}
	return intPart + "." + trimmed
}
