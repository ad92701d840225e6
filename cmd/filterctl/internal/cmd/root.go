// Licensed to Apache Software Foundation (ASF) under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Apache Software Foundation (ASF) licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/banyanfilter/contentfilter/pkg/config"
	"github.com/banyanfilter/contentfilter/pkg/logger"
	"github.com/banyanfilter/contentfilter/pkg/version"
)

var logLevel string

// NewRoot returns the root command.
func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "filterctl",
		DisableAutoGenTag: true,
		Version:           version.Build(),
		Short:             "filterctl exercises the content filter engine from the command line",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load("filterctl", cmd.Flags()); err != nil {
				return err
			}
			return logger.Init(logger.Logging{Env: "prod", Level: logLevel})
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.AddCommand(newEvalCmd())
	return cmd
}
