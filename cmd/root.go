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
	"context"
	"fmt"
	"os"

	"github.com/hyperledger/firefly-common/pkg/config"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/kaleido-io/erc7730-clearsign/internal/csconfig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "erc7730render",
	Short: "Decode contract calldata or EIP-712 typed data into a clear-signing display model",
	Long:  ``,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file")
	rootCmd.AddCommand(renderCalldataCommand())
	rootCmd.AddCommand(renderTypedDataCommand())
}

// Execute runs the CLI; it is the single entry point main calls.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig() error {
	csconfig.Reset()
	if cfgFile == "" {
		return nil
	}
	return config.ReadConfig("erc7730render", cfgFile)
}

func newContext() context.Context {
	ctx := log.WithLogger(context.Background(), logrus.WithField("pid", fmt.Sprintf("%d", os.Getpid())))
	config.SetupLogging(ctx)
	return ctx
}
