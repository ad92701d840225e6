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
	"fmt"
	"os"
	"reflect"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/banyanfilter/contentfilter"
	"github.com/banyanfilter/contentfilter/cmd/filterctl/internal/payload"
	"github.com/banyanfilter/contentfilter/introspect"
	"github.com/banyanfilter/contentfilter/serialize"
)

func newEvalCmd() *cobra.Command {
	var expr string
	var params []string
	var payloadPath string

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a filter expression against a JSON-encoded Envelope payload",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runEval(expr, params, payloadPath)
		},
	}
	cmd.Flags().StringVar(&expr, "expr", "", "filter expression, e.g. \"priority > %0\"")
	cmd.Flags().StringArrayVar(&params, "param", nil, "parameter value for %N, repeatable in index order")
	cmd.Flags().StringVar(&payloadPath, "payload", "", "path to a JSON file holding the Envelope payload")
	_ = cmd.MarkFlagRequired("expr")
	_ = cmd.MarkFlagRequired("payload")
	return cmd
}

func runEval(expr string, params []string, payloadPath string) error {
	desc, err := introspect.NewStructDescriptor(reflect.TypeOf(payload.Envelope{}))
	if err != nil {
		return errors.Wrap(err, "building envelope descriptor")
	}

	data, err := os.ReadFile(payloadPath)
	if err != nil {
		return errors.Wrap(err, "reading payload file")
	}

	h := contentfilter.Create(desc)
	defer h.Destroy()
	h.SetSerializer(serialize.NewStructSerializer(reflect.TypeOf(payload.Envelope{})))

	if !h.Set(expr, params) {
		return errors.Errorf("expression %q failed to parse or bind", expr)
	}

	accepted := h.Evaluate(data, true)
	if accepted {
		fmt.Println("ACCEPT")
	} else {
		fmt.Println("REJECT")
	}
	return nil
}
