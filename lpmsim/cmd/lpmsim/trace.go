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
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/private/app/command"
	"github.com/scionproto/lpmsim/private/sim"
)

// tracePort is the destination port of trace packets.
const tracePort = 33434

func newTrace(pather command.Pather) *cobra.Command {
	var flags struct {
		topology string
		from     string
		src      addr.Addr
		hopLimit int
		noColor  bool
	}
	cmd := &cobra.Command{
		Use:   "trace --from <node> <address>",
		Short: "Send a packet through the simulated network and display its path",
		Example: fmt.Sprintf(`  %[1]s trace --from n0 192.168.3.2
  %[1]s trace --from n5 --src 172.16.1.2 10.1.1.2`, pather.CommandPath()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := addr.ParseAddr(args[0])
			if err != nil {
				return err
			}
			var events []sim.PacketEvent
			network, err := loadNetwork(flags.topology,
				sim.WithHopLimit(flags.hopLimit),
				sim.WithObserver(sim.ObserverFunc(func(ev sim.PacketEvent) {
					events = append(events, ev)
				})),
			)
			if err != nil {
				return err
			}
			node, err := network.Node(flags.from)
			if err != nil {
				return err
			}
			src := flags.src
			if src.IsUnspecified() {
				if src, err = node.SourceAddr(dest); err != nil {
					return err
				}
			}
			pkt, err := sim.NewUDPPacket(src, dest, tracePort, tracePort, nil)
			if err != nil {
				return err
			}
			if _, err := network.Send(cmd.Context(), flags.from, pkt); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return writeTrace(out, src, dest, events, !flags.noColor && isTerminal(out))
		},
	}
	registerTopologyFlag(cmd.Flags(), &flags.topology)
	cmd.Flags().StringVar(&flags.from, "from", "", "Node the packet is sent from (required)")
	cmd.Flags().Var(&flags.src, "src",
		"Source address, the address of the outgoing interface if unset")
	cmd.Flags().IntVar(&flags.hopLimit, "hop-limit", sim.DefaultHopLimit,
		"Number of hops after which the packet is dropped")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func writeTrace(w io.Writer, src, dest addr.Addr, events []sim.PacketEvent,
	colored bool) error {

	noColor := color.New()
	noColor.DisableColor()
	node, forwarded, delivered, dropped := noColor, noColor, noColor, noColor
	if colored {
		node = color.New(color.FgHiCyan)
		delivered = color.New(color.FgGreen)
		dropped = color.New(color.FgRed)
		for _, c := range []*color.Color{node, delivered, dropped} {
			c.EnableColor()
		}
	}

	if _, err := fmt.Fprintf(w, "%s -> %s\n", src, dest); err != nil {
		return err
	}
	for _, ev := range events {
		var result string
		switch {
		case ev.Delivered:
			result = delivered.Sprint("delivered")
		case ev.Decision.Forwarded():
			result = forwarded.Sprint(ev.Decision)
		default:
			result = dropped.Sprint(ev.Decision)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", node.Sprint(ev.Node), result); err != nil {
			return err
		}
	}
	return nil
}
