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

// Package csconfig declares the render pipeline's configuration keys.
package csconfig

import (
	"github.com/hyperledger/firefly-common/pkg/config"
	"github.com/spf13/viper"
)

var ffc = config.AddRootKey

var (
	// RenderMaxDepth is the recursion cap for nested tuples/arrays (spec §5,
	// recommended 32). The key is registered with its default only; the
	// decoder does not read it and applies abi.DefaultMaxDecodeDepth.
	RenderMaxDepth = ffc("render.maxDepth")
	// RenderDefaultChainID is the chain ID for a render request that does
	// not specify one. The key is registered with its default only; the CLI
	// takes the chain ID from its --chain-id flag.
	RenderDefaultChainID = ffc("render.defaultChainId")
)

func setDefaults() {
	viper.SetDefault(string(RenderMaxDepth), 32)
	viper.SetDefault(string(RenderDefaultChainID), 1)
}

// Reset restores config to its defaults, re-registering root keys. Tests
// call this between cases so viper state from one does not leak into the
// next.
func Reset() {
	config.RootConfigReset(setDefaults)
}
