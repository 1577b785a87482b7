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
	"slices"
	"sync"

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/pkg/private/serrors"
	"github.com/scionproto/lpmsim/pkg/routing"
	"github.com/scionproto/lpmsim/private/topology"
)

// Handler processes a packet delivered to a port of a node.
type Handler func(ctx context.Context, hdr Header)

// Node is a simulated host with a static routing table.
type Node struct {
	name   string
	table  *routing.Table
	lookup routing.Lookuper
	ifaces []topology.Interface

	mtx      sync.RWMutex
	down     map[uint32]bool
	handlers map[uint16]Handler
}

func newNode(name string, ifaces []topology.Interface, table *routing.Table,
	lookup routing.Lookuper) *Node {

	return &Node{
		name:     name,
		table:    table,
		lookup:   lookup,
		ifaces:   ifaces,
		down:     make(map[uint32]bool),
		handlers: make(map[uint16]Handler),
	}
}

// Name returns the name of the node.
func (n *Node) Name() string {
	return n.name
}

// Table returns the routing table of the node.
func (n *Node) Table() *routing.Table {
	return n.table
}

// Interfaces returns the interfaces of the node ordered by index.
func (n *Node) Interfaces() []topology.Interface {
	return slices.Clone(n.ifaces)
}

// Addrs returns the addresses assigned to the interfaces of the node.
func (n *Node) Addrs() []addr.Addr {
	addrs := make([]addr.Addr, 0, len(n.ifaces))
	for _, iface := range n.ifaces {
		addrs = append(addrs, iface.Addr)
	}
	return addrs
}

// IsUp reports whether the interface with the given index exists and is up.
func (n *Node) IsUp(index uint32) bool {
	if _, ok := n.iface(index); !ok {
		return false
	}
	n.mtx.RLock()
	defer n.mtx.RUnlock()
	return !n.down[index]
}

// Resolve returns the forwarding decision of the routing table for dest
// without considering the interface state.
func (n *Node) Resolve(dest addr.Addr) routing.ForwardDecision {
	return routing.Resolve(n.lookup, dest)
}

// Forward returns the forwarding decision for dest. In addition to Resolve it
// drops packets whose outgoing interface is down and packets whose next hop is
// not attached to the outgoing interface.
func (n *Node) Forward(dest addr.Addr) routing.ForwardDecision {
	d, _ := n.forward(dest)
	return d
}

func (n *Node) forward(dest addr.Addr) (routing.ForwardDecision, topology.Interface) {
	d := n.Resolve(dest)
	if !d.Forwarded() {
		return d, topology.Interface{}
	}
	iface, ok := n.iface(d.Route.Interface)
	if !ok || !n.IsUp(iface.Index) {
		return routing.Drop(routing.InterfaceDown), topology.Interface{}
	}
	if d.NextHop != iface.PeerAddr {
		return routing.Drop(routing.NextHopUnreachable), topology.Interface{}
	}
	return d, iface
}

// SourceAddr selects the source address for packets sent to dest. It is the
// address of the outgoing interface.
func (n *Node) SourceAddr(dest addr.Addr) (addr.Addr, error) {
	if n.owns(dest) {
		return dest, nil
	}
	d, iface := n.forward(dest)
	if !d.Forwarded() {
		return 0, serrors.New("no source address", "node", n.name, "dest", dest,
			"reason", d.Reason.String())
	}
	return iface.Addr, nil
}

// Listen registers h for packets delivered to port.
func (n *Node) Listen(port uint16, h Handler) error {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	if _, ok := n.handlers[port]; ok {
		return serrors.New("port in use", "node", n.name, "port", port)
	}
	n.handlers[port] = h
	return nil
}

// Close removes the handler of port.
func (n *Node) Close(port uint16) {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	delete(n.handlers, port)
}

func (n *Node) handler(port uint16) (Handler, bool) {
	n.mtx.RLock()
	defer n.mtx.RUnlock()
	h, ok := n.handlers[port]
	return h, ok
}

func (n *Node) owns(a addr.Addr) bool {
	for _, iface := range n.ifaces {
		if iface.Addr == a {
			return true
		}
	}
	return false
}

func (n *Node) iface(index uint32) (topology.Interface, bool) {
	if index == 0 || int(index) > len(n.ifaces) {
		return topology.Interface{}, false
	}
	return n.ifaces[index-1], true
}

func (n *Node) setDown(index uint32, down bool) {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	n.down[index] = down
}
