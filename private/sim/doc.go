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

/*
Package sim forwards IPv4/UDP packets across a topology of nodes that each
own a static routing table.

New builds one Node per topology node. Bringing an interface up installs the
connected route of its link subnet with the unspecified next hop 0.0.0.0,
after which the static routes of the topology are installed. At every hop,
Network.Send decodes the destination from the IPv4 header, resolves it against
the routing table of the current node and notifies the PacketObserver of the
decision before the packet moves on. A packet is delivered once it reaches a
node that owns the destination address.

TTL is not modelled. Instead, a hop limit stops packets that circle in a
forwarding loop.

Observers are called synchronously on the goroutine that sends the packet.
Since echo applications run concurrently, observers must be safe for
concurrent use.
*/
package sim
