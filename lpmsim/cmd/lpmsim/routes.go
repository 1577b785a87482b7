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

	"github.com/scionproto/lpmsim/pkg/routing"
	"github.com/scionproto/lpmsim/private/app/command"
)

func newRoutes(pather command.Pather) *cobra.Command {
	var flags struct {
		topology string
		node     string
	}
	cmd := &cobra.Command{
		Use:   "routes [flags]",
		Short: "Display the routing tables of the simulated nodes",
		Example: fmt.Sprintf(`  %[1]s routes
  %[1]s routes --node n1
  %[1]s routes --topology topo.yaml`, pather.CommandPath()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := loadNetwork(flags.topology)
			if err != nil {
				return err
			}
			if flags.node == "" {
				network.WriteTables(cmd.OutOrStdout())
				return nil
			}
			node, err := network.Node(flags.node)
			if err != nil {
				return err
			}
			routing.WriteTable(cmd.OutOrStdout(), routing.Dump(node.Table()))
			return nil
		},
	}
	registerTopologyFlag(cmd.Flags(), &flags.topology)
	cmd.Flags().StringVar(&flags.node, "node", "", "Only show the table of this node")
	return cmd
}
