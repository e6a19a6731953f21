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
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// jsonValueToString renders an arbitrary JSON-decoded value as the raw
// string form used for map-reference lookups, visibility comparisons, and
// intent interpolation of typed-data fields. Strings and json.Number pass
// through as-is; a float64 stringifies without a superfluous ".0" where it
// represents an integer; arrays render as their elements' raw forms,
// bracketed and comma-separated; everything else falls back to its JSON
// encoding.
func jsonValueToString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case json.Number:
		return t.String()
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = jsonValueToString(item)
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
