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

import "github.com/kaleido-io/erc7730-clearsign/pkg/descriptor"

// evaluateVisible decides whether a field should be displayed (spec §4.F).
// The resolved value, when absent, always yields visible: a Condition rule
// can only hide a field whose value it was actually able to inspect.
func evaluateVisible(rule descriptor.VisibleRule, value Resolved) bool {
	switch rule.Kind {
	case descriptor.VisibleKindBool:
		return rule.Bool
	case descriptor.VisibleKindNamed:
		return rule.Named != "never"
	case descriptor.VisibleKindCondition:
		if !value.Present {
			return true
		}
		for _, forbidden := range rule.Condition.IfNotIn {
			if jsonValueToString(forbidden) == value.Raw {
				return false
			}
		}
		if len(rule.Condition.MustBe) > 0 {
			matched := false
			for _, allowed := range rule.Condition.MustBe {
				if jsonValueToString(allowed) == value.Raw {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
		return true
	default:
		return true
	}
}
