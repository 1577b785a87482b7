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

package sim

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/pkg/log"
	"github.com/scionproto/lpmsim/pkg/private/serrors"
	"github.com/scionproto/lpmsim/pkg/routing"
	"github.com/scionproto/lpmsim/private/topology"
)

// firstEphemeralPort is the first port handed out to echo clients.
const firstEphemeralPort = 49153

// Network is a set of simulated nodes connected by point-to-point links.
type Network struct {
	topo     *topology.Topology
	nodes    map[string]*Node
	order    []string
	opts     options
	observer PacketObserver
	nextPort atomic.Uint32
}

// Delivery describes the fate of a packet handed to Send.
type Delivery struct {
	// Node is the node that delivered or dropped the packet.
	Node string
	// Path lists the nodes the packet visited, starting with the sender.
	Path []string
	// Delivered is set if the packet reached the destination.
	Delivered bool
	// Decision is the drop decision of the last node. It is empty for
	// delivered packets.
	Decision routing.ForwardDecision
}

// Hops returns the number of links the packet traversed.
func (d Delivery) Hops() int {
	return max(len(d.Path)-1, 0)
}

// New builds the network described by topo. Every node gets a connected route
// per interface and the static routes configured for it.
func New(topo *topology.Topology, opts ...Option) (*Network, error) {
	if topo == nil {
		return nil, serrors.New("topology must not be nil")
	}
	if err := topo.Validate(); err != nil {
		return nil, serrors.Wrap("invalid topology", err)
	}
	o := applyOptions(opts)
	n := &Network{
		topo:  topo,
		nodes: make(map[string]*Node, len(topo.Nodes)),
		opts:  o,
	}
	n.nextPort.Store(firstEphemeralPort - 1)

	var observers Observers
	if o.metrics != nil {
		observers = append(observers, o.metrics)
	}
	observers = append(observers, o.observers...)
	if o.features.TablesOnDelivery {
		observers = append(observers, TableLogObserver{Network: n, Logger: o.logger})
	}
	n.observer = observers

	for _, tn := range topo.Nodes {
		node, err := n.buildNode(tn.Name)
		if err != nil {
			return nil, serrors.Wrap("building node", err, "node", tn.Name)
		}
		n.nodes[tn.Name] = node
		n.order = append(n.order, tn.Name)
	}
	return n, nil
}

func (n *Network) buildNode(name string) (*Node, error) {
	ifaces, err := n.topo.Interfaces(name)
	if err != nil {
		return nil, err
	}
	var tableOpts []routing.TableOption
	if n.opts.metrics != nil {
		tableOpts = append(tableOpts, routing.WithMetrics(n.opts.metrics.Routing, name))
	}
	table := routing.NewTable(tableOpts...)
	var lookup routing.Lookuper = table
	if n.opts.features.CachedLookups {
		if lookup, err = routing.NewCachingResolver(table, n.opts.cacheSize); err != nil {
			return nil, err
		}
	}
	node := newNode(name, ifaces, table, lookup)
	for _, iface := range ifaces {
		if err := n.installRoutes(node, iface.Index); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// installRoutes adds the connected route of the interface and all configured
// static routes through it.
func (n *Network) installRoutes(node *Node, index uint32) error {
	iface, ok := node.iface(index)
	if !ok {
		return serrors.New("no such interface", "node", node.name, "interface", index)
	}
	node.table.AddRoute(routing.Route{
		Dest:      iface.Subnet,
		Interface: iface.Index,
	})
	for _, r := range n.topo.Routes {
		if r.Node != node.name || r.Interface != index {
			continue
		}
		dest, err := r.Dest()
		if err != nil {
			return err
		}
		gw, err := addr.ParseAddr(r.Gateway)
		if err != nil {
			return err
		}
		err = node.table.AddNetworkRoute(dest.Network(), dest.Len(), gw, r.Interface, r.Metric)
		if err != nil {
			return err
		}
	}
	return nil
}

// Nodes returns all nodes in topology order.
func (n *Network) Nodes() []*Node {
	nodes := make([]*Node, 0, len(n.order))
	for _, name := range n.order {
		nodes = append(nodes, n.nodes[name])
	}
	return nodes
}

// Node returns the node with the given name.
func (n *Network) Node(name string) (*Node, error) {
	node, ok := n.nodes[name]
	if !ok {
		return nil, serrors.Join(topology.ErrUnknownNode, nil, "node", name)
	}
	return node, nil
}

// Resolve returns the forwarding decision of node for dest.
func (n *Network) Resolve(node string, dest addr.Addr) (routing.ForwardDecision, error) {
	nd, err := n.Node(node)
	if err != nil {
		return routing.ForwardDecision{}, err
	}
	return nd.Forward(dest), nil
}

// WriteTables writes the routing tables of all nodes to w.
func (n *Network) WriteTables(w io.Writer) {
	for _, node := range n.Nodes() {
		fmt.Fprintf(w, "Node: %s\n", node.name)
		routing.WriteTable(w, routing.Dump(node.table))
	}
}

// SetInterfaceDown takes the interface down. Its connected route and all
// routes through it are removed from the table of the node.
func (n *Network) SetInterfaceDown(node string, index uint32) error {
	nd, err := n.Node(node)
	if err != nil {
		return err
	}
	if _, ok := nd.iface(index); !ok {
		return serrors.New("no such interface", "node", node, "interface", index)
	}
	before := routing.Dump(nd.table)
	nd.setDown(index, true)
	removed := nd.table.RemoveInterface(index)
	n.opts.logger.Info("Interface down", "node", node, "interface", index, "removed", removed)
	n.logDiff(nd, before)
	return nil
}

// SetInterfaceUp brings the interface up and reinstalls its connected route
// and the configured static routes through it.
func (n *Network) SetInterfaceUp(node string, index uint32) error {
	nd, err := n.Node(node)
	if err != nil {
		return err
	}
	before := routing.Dump(nd.table)
	if err := n.installRoutes(nd, index); err != nil {
		return err
	}
	nd.setDown(index, false)
	n.opts.logger.Info("Interface up", "node", node, "interface", index)
	n.logDiff(nd, before)
	return nil
}

func (n *Network) logDiff(nd *Node, before []routing.RouteRecord) {
	if !n.opts.features.TableDiffs {
		return
	}
	if diff := routing.Diff(before, routing.Dump(nd.table)); diff != "" {
		n.opts.logger.Info("Routing table changed", "node", nd.name, "diff", "\n"+diff)
	}
}

// Send injects pkt at node from and forwards it hop by hop until it is
// delivered or dropped. Observers are notified synchronously at every node. A
// delivered packet is passed to the handler listening on its destination port.
//
// Dropped packets are not an error; the returned Delivery carries the drop
// decision. Errors are returned for malformed packets, unknown nodes and a
// done context.
func (n *Network) Send(ctx context.Context, from string, pkt *Packet) (Delivery, error) {
	cur, err := n.Node(from)
	if err != nil {
		return Delivery{}, err
	}
	hdr, err := pkt.Decode()
	if err != nil {
		return Delivery{}, err
	}
	logger := log.FromCtx(ctx)
	path := []string{cur.name}
	for hop := 0; ; hop++ {
		if err := ctx.Err(); err != nil {
			return Delivery{}, err
		}
		if cur.owns(hdr.Dst) {
			n.observer.OnPacket(PacketEvent{
				Node:      cur.name,
				Header:    hdr,
				Hop:       hop,
				Delivered: true,
			})
			if h, ok := cur.handler(hdr.DstPort); ok {
				h(ctx, hdr)
			} else {
				logger.Debug("No handler for port", "node", cur.name, "port", hdr.DstPort)
			}
			return Delivery{Node: cur.name, Path: path, Delivered: true}, nil
		}
		var (
			decision routing.ForwardDecision
			egress   topology.Interface
		)
		if hop >= n.opts.hopLimit {
			decision = routing.Drop(routing.HopLimitExceeded)
		} else {
			decision, egress = cur.forward(hdr.Dst)
		}
		n.observer.OnPacket(PacketEvent{
			Node:     cur.name,
			Header:   hdr,
			Hop:      hop,
			Decision: decision,
		})
		if !decision.Forwarded() {
			return Delivery{Node: cur.name, Path: path, Decision: decision}, nil
		}
		cur = n.nodes[egress.Peer]
		path = append(path, cur.name)
	}
}

// allocPort returns an unused ephemeral port.
func (n *Network) allocPort() uint16 {
	return uint16(n.nextPort.Add(1))
}
