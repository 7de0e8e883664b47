/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"dirpx.dev/errview"
	"dirpx.dev/errview/apis"
	"dirpx.dev/errview/kind"
	"dirpx.dev/errview/resolver"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// policyRow is one kind of the resolved policy.
type policyRow struct {
	Kind   string `json:"kind" yaml:"kind"`
	Code   string `json:"code" yaml:"code"`
	Status int    `json:"status" yaml:"status"`
	View   string `json:"view" yaml:"view"`
	GRPC   string `json:"grpc" yaml:"grpc"`
	Source string `json:"source" yaml:"source"` // "default" or "config"
}

func newTableCmd(o *rootOptions) *cobra.Command {
	var (
		format  string
		explain bool
	)
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the resolved exception policy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			opts, err := cfg.Exceptions.Options()
			if err != nil {
				return err
			}
			res, err := resolver.New(opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := writePolicy(out, format, policyRows(res)); err != nil {
				return err
			}
			if explain {
				for _, k := range kind.All() {
					fmt.Fprintf(out, "\n%s\n", res.Explain(errview.E(k, "sample "+k.String())))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "table", "output format: table, json or yaml")
	cmd.Flags().BoolVar(&explain, "explain", false, "also explain how a sample error of each kind resolves")
	return cmd
}

func policyRows(res apis.Resolver) []policyRow {
	kinds := kind.All()
	rows := make([]policyRow, 0, len(kinds))
	for _, k := range kinds {
		r := res.ResponseFor(k)
		c := res.CodeFor(k)
		src := "default"
		if c != resolver.DefaultCode(k) || r != resolver.DefaultResponse(k) {
			src = "config"
		}
		rows = append(rows, policyRow{
			Kind:   k.String(),
			Code:   c.String(),
			Status: r.Status,
			View:   r.View,
			GRPC:   r.GRPC.String(),
			Source: src,
		})
	}
	return rows
}

func writePolicy(w io.Writer, format string, rows []policyRow) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KIND\tCODE\tSTATUS\tVIEW\tGRPC\tSOURCE")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n", r.Kind, r.Code, r.Status, r.View, r.GRPC, r.Source)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
