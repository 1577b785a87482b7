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

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/private/app/command"
)

func newLookup(pather command.Pather) *cobra.Command {
	var flags struct {
		topology string
		node     string
	}
	cmd := &cobra.Command{
		Use:     "lookup --node <node> <address>",
		Short:   "Display the forwarding decision of a node for an address",
		Example: fmt.Sprintf("  %[1]s lookup --node n0 192.168.3.2", pather.CommandPath()),
		Long: `'lookup' resolves the address in the routing table of the node.

The longest prefix containing the address wins. For directly connected
networks the next hop is the address itself.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := addr.ParseAddr(args[0])
			if err != nil {
				return err
			}
			network, err := loadNetwork(flags.topology)
			if err != nil {
				return err
			}
			decision, err := network.Resolve(flags.node, dest)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), decision)
			return err
		},
	}
	registerTopologyFlag(cmd.Flags(), &flags.topology)
	cmd.Flags().StringVar(&flags.node, "node", "", "Node to resolve the address at (required)")
	_ = cmd.MarkFlagRequired("node")
	return cmd
}
