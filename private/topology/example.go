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

package topology

import (
	"time"

	"github.com/scionproto/lpmsim/pkg/private/util"
)

const mask24 = "255.255.255.0"

// LongestPrefixExample returns the six node example network:
//
//	n0 -- n1 -- n2 -- n3
//	      |     |
//	      n4    n5
//
// Every node has static routes towards all remote link subnets. Echo clients
// on n0 and n5 talk to servers on n3 and n4.
func LongestPrefixExample() *Topology {
	route := func(node, network, gateway string, iface uint32) StaticRoute {
		return StaticRoute{
			Node:      node,
			Network:   network,
			Mask:      mask24,
			Gateway:   gateway,
			Interface: iface,
		}
	}
	return &Topology{
		Nodes: []Node{
			{Name: "n0"}, {Name: "n1"}, {Name: "n2"}, {Name: "n3"}, {Name: "n4"}, {Name: "n5"},
		},
		Links: []Link{
			{A: "n0", B: "n1", Subnet: "192.168.1.0/24"},
			{A: "n1", B: "n2", Subnet: "192.168.2.0/24"},
			{A: "n2", B: "n3", Subnet: "192.168.3.0/24"},
			{A: "n1", B: "n4", Subnet: "10.1.1.0/24"},
			{A: "n2", B: "n5", Subnet: "172.16.1.0/24"},
		},
		Routes: []StaticRoute{
			route("n0", "192.168.2.0", "192.168.1.2", 1),
			route("n0", "192.168.3.0", "192.168.1.2", 1),
			route("n0", "10.1.1.0", "192.168.1.2", 1),
			route("n0", "172.16.1.0", "192.168.1.2", 1),

			route("n1", "192.168.3.0", "192.168.2.2", 2),
			route("n1", "172.16.1.0", "192.168.2.2", 2),

			route("n2", "192.168.1.0", "192.168.2.1", 1),
			route("n2", "10.1.1.0", "192.168.2.1", 1),

			route("n3", "192.168.1.0", "192.168.3.1", 1),
			route("n3", "10.1.1.0", "192.168.3.1", 1),
			route("n3", "172.16.1.0", "192.168.3.1", 1),

			route("n4", "192.168.2.0", "10.1.1.1", 1),
			route("n4", "192.168.3.0", "10.1.1.1", 1),
			route("n4", "172.16.1.0", "10.1.1.1", 1),

			route("n5", "192.168.1.0", "172.16.1.1", 1),
			route("n5", "10.1.1.0", "172.16.1.1", 1),
			route("n5", "192.168.3.0", "172.16.1.1", 1),
		},
		Apps: []EchoApp{
			{
				Server:     "n3",
				Client:     "n0",
				Remote:     "192.168.3.2",
				Port:       9,
				MaxPackets: 5,
				Interval:   util.DurWrap{Duration: time.Second},
				PacketSize: 1024,
			},
			{
				Server:     "n4",
				Client:     "n5",
				Remote:     "10.1.1.2",
				Port:       10,
				MaxPackets: 5,
				Interval:   util.DurWrap{Duration: time.Second},
				PacketSize: 1024,
			},
		},
	}
}
