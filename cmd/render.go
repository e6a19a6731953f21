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

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kaleido-io/erc7730-clearsign/pkg/clearsign"
	"github.com/kaleido-io/erc7730-clearsign/pkg/descriptor"
	"github.com/kaleido-io/erc7730-clearsign/pkg/eip712"
	"github.com/kaleido-io/erc7730-clearsign/pkg/ethtypes"
	"github.com/kaleido-io/erc7730-clearsign/pkg/token"
	"github.com/spf13/cobra"
)

var (
	descriptorFile string
	calldataHex    string
	chainID        uint64
	toAddress      string
	messageFile    string
)

func renderCalldataCommand() *cobra.Command {
	renderCalldataCmd := &cobra.Command{
		Use:   "render-calldata",
		Short: "Render contract calldata against a descriptor into a clear-signing display model",
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := loadDescriptor(descriptorFile)
			if err != nil {
				return err
			}
			calldata, err := decodeHex(calldataHex)
			if err != nil {
				return err
			}
			model, err := clearsign.FormatCalldata(newContext(), desc, chainID, toAddress, calldata, token.EmptySource{})
			if err != nil {
				return err
			}
			return printModel(model)
		},
	}
	renderCalldataCmd.Flags().StringVarP(&descriptorFile, "descriptor", "d", "", "descriptor JSON file")
	renderCalldataCmd.Flags().StringVarP(&calldataHex, "calldata", "c", "", "calldata, as a 0x-prefixed hex string")
	renderCalldataCmd.Flags().Uint64VarP(&chainID, "chain-id", "n", 1, "chain ID the call targets")
	renderCalldataCmd.Flags().StringVarP(&toAddress, "to", "t", "", "contract address the call targets")
	_ = renderCalldataCmd.MarkFlagRequired("descriptor")
	_ = renderCalldataCmd.MarkFlagRequired("calldata")
	_ = renderCalldataCmd.MarkFlagRequired("to")
	return renderCalldataCmd
}

func renderTypedDataCommand() *cobra.Command {
	renderTypedDataCmd := &cobra.Command{
		Use:   "render-typed-data",
		Short: "Render an EIP-712 signing request against a descriptor into a clear-signing display model",
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := loadDescriptor(descriptorFile)
			if err != nil {
				return err
			}
			data, err := loadTypedData(messageFile)
			if err != nil {
				return err
			}
			model, err := clearsign.FormatTypedData(newContext(), desc, data, token.EmptySource{})
			if err != nil {
				return err
			}
			return printModel(model)
		},
	}
	renderTypedDataCmd.Flags().StringVarP(&descriptorFile, "descriptor", "d", "", "descriptor JSON file")
	renderTypedDataCmd.Flags().StringVarP(&messageFile, "message", "m", "", "EIP-712 signing request JSON file")
	_ = renderTypedDataCmd.MarkFlagRequired("descriptor")
	_ = renderTypedDataCmd.MarkFlagRequired("message")
	return renderTypedDataCmd
}

func loadDescriptor(path string) (*descriptor.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return descriptor.Parse(newContext(), data)
}

func loadTypedData(path string) (*eip712.TypedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var td eip712.TypedData
	if err := json.Unmarshal(data, &td); err != nil {
		return nil, err
	}
	return &td, nil
}

// decodeHex parses a 0x-prefixed or bare hex string the same way a
// HexBytes0xPrefix field would if it arrived over JSON.
func decodeHex(s string) ([]byte, error) {
	var hb ethtypes.HexBytes0xPrefix
	quoted, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	if err := hb.UnmarshalJSON(quoted); err != nil {
		return nil, err
	}
	return hb, nil
}

func printModel(model interface{}) error {
	out, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
