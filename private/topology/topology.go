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

// Package topology describes simulated networks: nodes, the point-to-point
// links between them, the static routes installed on each node and the echo
// applications that generate traffic.
//
// Addresses are assigned per link: the first endpoint of a link gets the
// first host address of the link subnet, the second endpoint the second one.
// Interface indexes are assigned per node in link order starting at 1, index 0
// is reserved for the loopback interface.
package topology

import (
	"errors"

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/pkg/private/serrors"
	"github.com/scionproto/lpmsim/pkg/private/util"
)

// ErrUnknownNode indicates a reference to a node that is not part of the
// topology.
var ErrUnknownNode = errors.New("unknown node")

// Topology is a simulated network.
type Topology struct {
	Nodes  []Node        `toml:"nodes" yaml:"nodes"`
	Links  []Link        `toml:"links" yaml:"links"`
	Routes []StaticRoute `toml:"routes,omitempty" yaml:"routes,omitempty"`
	Apps   []EchoApp     `toml:"apps,omitempty" yaml:"apps,omitempty"`
}

// Node is a simulated host or router.
type Node struct {
	Name string `toml:"name" yaml:"name"`
}

// Link is a point-to-point link between the nodes A and B.
type Link struct {
	A string `toml:"a" yaml:"a"`
	B string `toml:"b" yaml:"b"`
	// Subnet is the prefix the endpoint addresses are taken from, in CIDR
	// notation.
	Subnet string `toml:"subnet" yaml:"subnet"`
}

// Addrs returns the subnet of the link and the addresses of both endpoints.
func (l Link) Addrs() (addr.Prefix, addr.Addr, addr.Addr, error) {
	p, err := addr.ParsePrefix(l.Subnet)
	if err != nil {
		return addr.Prefix{}, 0, 0, err
	}
	if p.Len() > addr.Width-2 {
		return addr.Prefix{}, 0, 0, serrors.New("link subnet too small", "subnet", l.Subnet)
	}
	return p, p.Network() + 1, p.Network() + 2, nil
}

// StaticRoute is a route installed on Node at setup time.
type StaticRoute struct {
	Node string `toml:"node" yaml:"node"`
	// Network is the destination network address, it may have host bits set.
	Network string `toml:"network" yaml:"network"`
	// Mask is the dotted decimal netmask of the destination.
	Mask    string `toml:"mask" yaml:"mask"`
	Gateway string `toml:"gateway" yaml:"gateway"`
	// Interface is the index of the outgoing interface on Node.
	Interface uint32 `toml:"interface" yaml:"interface"`
	Metric    uint32 `toml:"metric,omitempty" yaml:"metric,omitempty"`
}

// Dest returns the destination prefix of the route.
func (r StaticRoute) Dest() (addr.Prefix, error) {
	network, err := addr.ParseAddr(r.Network)
	if err != nil {
		return addr.Prefix{}, err
	}
	return addr.PrefixFromMask(network, r.Mask)
}

// EchoApp is a UDP echo server on Server and a client on Client that sends
// MaxPackets packets to Remote.
type EchoApp struct {
	Server string `toml:"server" yaml:"server"`
	Client string `toml:"client" yaml:"client"`
	// Remote is the address of the server the client sends to.
	Remote     string       `toml:"remote" yaml:"remote"`
	Port       uint16       `toml:"port" yaml:"port"`
	MaxPackets uint32       `toml:"max_packets" yaml:"max_packets"`
	Interval   util.DurWrap `toml:"interval" yaml:"interval"`
	PacketSize uint32       `toml:"packet_size" yaml:"packet_size"`
}

// Interface is a network interface of a node.
type Interface struct {
	Index  uint32
	Addr   addr.Addr
	Subnet addr.Prefix
	// Peer is the name of the node at the other end of the link.
	Peer     string
	PeerAddr addr.Addr
}

// Interfaces returns the interfaces of node ordered by index.
func (t *Topology) Interfaces(node string) ([]Interface, error) {
	if !t.hasNode(node) {
		return nil, serrors.Join(ErrUnknownNode, nil, "node", node)
	}
	var ifaces []Interface
	for _, l := range t.Links {
		subnet, a, b, err := l.Addrs()
		if err != nil {
			return nil, err
		}
		switch node {
		case l.A:
			ifaces = append(ifaces, Interface{
				Index: uint32(len(ifaces) + 1), Addr: a, Subnet: subnet, Peer: l.B, PeerAddr: b,
			})
		case l.B:
			ifaces = append(ifaces, Interface{
				Index: uint32(len(ifaces) + 1), Addr: b, Subnet: subnet, Peer: l.A, PeerAddr: a,
			})
		}
	}
	return ifaces, nil
}

// Owner returns the node that a is assigned to.
func (t *Topology) Owner(a addr.Addr) (string, bool) {
	for _, l := range t.Links {
		_, x, y, err := l.Addrs()
		if err != nil {
			continue
		}
		switch a {
		case x:
			return l.A, true
		case y:
			return l.B, true
		}
	}
	return "", false
}

func (t *Topology) hasNode(name string) bool {
	for _, n := range t.Nodes {
		if n.Name == name {
			return true
		}
	}
	return false
}

// Validate checks that the topology is consistent.
func (t *Topology) Validate() error {
	if len(t.Nodes) == 0 {
		return serrors.New("topology has no nodes")
	}
	names := make(map[string]struct{}, len(t.Nodes))
	for _, n := range t.Nodes {
		if n.Name == "" {
			return serrors.New("node without name")
		}
		if _, ok := names[n.Name]; ok {
			return serrors.New("duplicate node", "node", n.Name)
		}
		names[n.Name] = struct{}{}
	}
	subnets := make(map[addr.Prefix]struct{}, len(t.Links))
	for i, l := range t.Links {
		for _, n := range []string{l.A, l.B} {
			if !t.hasNode(n) {
				return serrors.Join(ErrUnknownNode, nil, "node", n, "link", i)
			}
		}
		if l.A == l.B {
			return serrors.New("link loops back to its node", "node", l.A, "link", i)
		}
		subnet, _, _, err := l.Addrs()
		if err != nil {
			return serrors.Wrap("invalid link", err, "link", i)
		}
		for other := range subnets {
			if other.Overlaps(subnet) {
				return serrors.New("overlapping link subnets", "subnet", subnet,
					"other", other)
			}
		}
		subnets[subnet] = struct{}{}
	}
	for i, r := range t.Routes {
		if err := t.validateRoute(r); err != nil {
			return serrors.Wrap("invalid route", err, "route", i)
		}
	}
	for i, app := range t.Apps {
		if err := t.validateApp(app); err != nil {
			return serrors.Wrap("invalid application", err, "app", i)
		}
	}
	return nil
}

func (t *Topology) validateRoute(r StaticRoute) error {
	ifaces, err := t.Interfaces(r.Node)
	if err != nil {
		return err
	}
	if _, err := r.Dest(); err != nil {
		return err
	}
	if _, err := addr.ParseAddr(r.Gateway); err != nil {
		return err
	}
	if r.Interface == 0 || int(r.Interface) > len(ifaces) {
		return serrors.New("no such interface", "node", r.Node, "interface", r.Interface)
	}
	return nil
}

func (t *Topology) validateApp(app EchoApp) error {
	for _, n := range []string{app.Server, app.Client} {
		if !t.hasNode(n) {
			return serrors.Join(ErrUnknownNode, nil, "node", n)
		}
	}
	remote, err := addr.ParseAddr(app.Remote)
	if err != nil {
		return err
	}
	if owner, ok := t.Owner(remote); !ok || owner != app.Server {
		return serrors.New("remote is not an address of the server",
			"remote", app.Remote, "server", app.Server)
	}
	if app.Port == 0 {
		return serrors.New("port must be set")
	}
	if app.MaxPackets == 0 {
		return serrors.New("max_packets must be positive")
	}
	return nil
}
