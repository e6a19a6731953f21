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

package csmsgs

import "github.com/hyperledger/firefly-common/pkg/i18n"

var ffc = i18n.FFC

//revive:disable
var (
	ConfigRenderMaxDepth        = ffc("config.render.maxDepth", "Maximum recursion depth when walking nested tuples/arrays and resolving paths", "number")
	ConfigRenderDefaultChainID  = ffc("config.render.defaultChainId", "Chain ID to assume when a render request does not specify one", "number")
)
