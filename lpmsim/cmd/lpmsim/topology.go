// Copyright 2026 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scionproto/lpmsim/private/app/command"
	"github.com/scionproto/lpmsim/private/topology"
)

func newTopology(pather command.Pather) *cobra.Command {
	var flags struct {
		topology string
		format   string
	}
	cmd := &cobra.Command{
		Use:   "topology [flags]",
		Short: "Display the simulated topology",
		Example: fmt.Sprintf(`  %[1]s topology > topo.toml
  %[1]s topology --format yaml > topo.yaml`, pather.CommandPath()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			topo, err := loadTopology(flags.topology)
			if err != nil {
				return err
			}
			return topology.Encode(cmd.OutOrStdout(), topo, topology.Format(flags.format))
		},
	}
	registerTopologyFlag(cmd.Flags(), &flags.topology)
	cmd.Flags().StringVar(&flags.format, "format", string(topology.FormatTOML),
		"Output format (toml|yaml)")
	return cmd
}
