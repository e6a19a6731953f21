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
	"strings"

	"github.com/kaleido-io/erc7730-clearsign/pkg/descriptor"
)

// fieldFormatSpec carries the format/params a display field attached to a
// path, so a ${path} intent placeholder can render the same way the field
// itself does rather than falling back to the raw decoded value.
type fieldFormatSpec struct {
	Format *descriptor.FieldFormat
	Params *descriptor.FormatParams
}

// interpolateIntent substitutes every `${path}` placeholder in template with
// the path resolved against resolver. When a display field for that exact
// path is present in fields, the placeholder renders through the same
// formatter the field uses (so a date path reads as a date, a token amount
// reads with its symbol, and so on); otherwise it falls back to the raw
// string form. An unresolved path becomes the literal "<?>" (spec §4.I).
// Scanning is left-to-right; a malformed `${` with no matching `}`
// terminates processing and everything from that point is dropped.
func interpolateIntent(template string, resolver Resolver, fmtCtx *Context, fields map[string]fieldFormatSpec) string {
	var out strings.Builder
	rest := template
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			out.WriteString(rest)
			return out.String()
		}
		out.WriteString(rest[:start])
		afterOpen := rest[start+2:]
		end := strings.Index(afterOpen, "}")
		if end < 0 {
			return out.String()
		}
		path := afterOpen[:end]
		resolved := resolver.Resolve(path)
		spec, hasSpec := fields[path]
		switch {
		case !resolved.Present:
			out.WriteString("<?>")
		case hasSpec:
			out.WriteString(fmtCtx.Format(resolved, spec.Format, spec.Params, path))
		default:
			out.WriteString(resolved.Raw)
		}
		rest = afterOpen[end+1:]
	}
}
