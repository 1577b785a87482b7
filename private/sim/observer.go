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
	"bytes"

	"github.com/scionproto/lpmsim/pkg/log"
	"github.com/scionproto/lpmsim/pkg/routing"
)

// PacketEvent describes what a node did with a packet.
type PacketEvent struct {
	// Node is the name of the node that handled the packet.
	Node   string
	Header Header
	// Hop is the number of nodes the packet traversed before reaching Node.
	Hop int
	// Delivered is set if Node owns the destination address. Decision is
	// empty in that case.
	Delivered bool
	Decision  routing.ForwardDecision
}

// PacketObserver is notified about every packet event. Implementations must be
// safe for concurrent use.
type PacketObserver interface {
	OnPacket(ev PacketEvent)
}

// ObserverFunc adapts a function to the PacketObserver interface.
type ObserverFunc func(ev PacketEvent)

func (f ObserverFunc) OnPacket(ev PacketEvent) {
	f(ev)
}

// Observers fans out events to all contained observers in order.
type Observers []PacketObserver

func (o Observers) OnPacket(ev PacketEvent) {
	for _, observer := range o {
		observer.OnPacket(ev)
	}
}

// LogObserver logs every packet event at debug level, drops at info level.
type LogObserver struct {
	Logger log.Logger
}

func (o LogObserver) OnPacket(ev PacketEvent) {
	logger := o.Logger
	if logger == nil {
		logger = log.Root()
	}
	ctx := []any{
		"node", ev.Node,
		"src", ev.Header.Src,
		"dst", ev.Header.Dst,
		"port", ev.Header.DstPort,
		"hop", ev.Hop,
	}
	switch {
	case ev.Delivered:
		logger.Debug("Packet delivered", ctx...)
	case ev.Decision.Forwarded():
		logger.Debug("Packet forwarded", append(ctx, "decision", ev.Decision)...)
	default:
		logger.Info("Packet dropped", append(ctx, "reason", ev.Decision.Reason.String())...)
	}
}

// TableLogObserver logs the routing tables of all nodes whenever a packet is
// delivered.
type TableLogObserver struct {
	Network *Network
	Logger  log.Logger
}

func (o TableLogObserver) OnPacket(ev PacketEvent) {
	if !ev.Delivered {
		return
	}
	logger := o.Logger
	if logger == nil {
		logger = log.Root()
	}
	var buf bytes.Buffer
	o.Network.WriteTables(&buf)
	logger.Info("Packet received", "node", ev.Node, "src", ev.Header.Src,
		"port", ev.Header.DstPort, "tables", "\n"+buf.String())
}
