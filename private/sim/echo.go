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
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/pkg/log"
	"github.com/scionproto/lpmsim/pkg/private/serrors"
	"github.com/scionproto/lpmsim/private/topology"
)

// EchoServer returns every packet it receives to the sender.
type EchoServer struct {
	Network *Network
	Node    string
	Port    uint16

	received atomic.Uint32
}

// Start registers the server on its node.
func (s *EchoServer) Start() error {
	node, err := s.Network.Node(s.Node)
	if err != nil {
		return err
	}
	return node.Listen(s.Port, s.handle)
}

// Stop unregisters the server.
func (s *EchoServer) Stop() {
	if node, err := s.Network.Node(s.Node); err == nil {
		node.Close(s.Port)
	}
}

// Received returns the number of packets the server received.
func (s *EchoServer) Received() uint32 {
	return s.received.Load()
}

func (s *EchoServer) handle(ctx context.Context, hdr Header) {
	s.received.Add(1)
	logger := log.FromCtx(ctx)
	logger.Debug("Echo request", "node", s.Node, "from", hdr.Src, "port", hdr.SrcPort,
		"size", len(hdr.Payload))
	reply, err := NewUDPPacket(hdr.Dst, hdr.Src, hdr.DstPort, hdr.SrcPort, hdr.Payload)
	if err != nil {
		logger.Error("Creating echo reply", "err", err)
		return
	}
	if _, err := s.Network.Send(ctx, s.Node, reply); err != nil {
		logger.Error("Sending echo reply", "err", err)
	}
}

// EchoClient sends MaxPackets packets of PacketSize bytes to Remote, one every
// Interval, and counts the replies.
type EchoClient struct {
	Network    *Network
	Node       string
	Remote     addr.Addr
	Port       uint16
	MaxPackets uint32
	Interval   time.Duration
	PacketSize uint32
}

// EchoResult summarizes the run of an echo client.
type EchoResult struct {
	Client string
	Server string
	Remote addr.Addr
	Port   uint16
	// Sent counts the requests that left the client node.
	Sent     uint32
	Received uint32
}

// Run sends all packets and returns once the last one was handled or ctx is
// done. Packets are forwarded synchronously, so every reply is counted when
// Run returns.
func (c *EchoClient) Run(ctx context.Context) (EchoResult, error) {
	res := EchoResult{Client: c.Node, Remote: c.Remote, Port: c.Port}
	node, err := c.Network.Node(c.Node)
	if err != nil {
		return res, err
	}
	var received atomic.Uint32
	port := c.Network.allocPort()
	err = node.Listen(port, func(context.Context, Header) {
		received.Add(1)
	})
	if err != nil {
		return res, err
	}
	defer node.Close(port)

	payload := make([]byte, c.PacketSize)
	for i := uint32(0); i < c.MaxPackets; i++ {
		if i > 0 && c.Interval > 0 {
			if err := sleep(ctx, c.Interval); err != nil {
				res.Received = received.Load()
				return res, err
			}
		}
		src, err := node.SourceAddr(c.Remote)
		if err != nil {
			// Without a route the packet cannot leave the node.
			log.FromCtx(ctx).Info("Echo request not sent", "node", c.Node, "err", err)
			continue
		}
		pkt, err := NewUDPPacket(src, c.Remote, port, c.Port, payload)
		if err != nil {
			return res, err
		}
		res.Sent++
		if _, err := c.Network.Send(ctx, c.Node, pkt); err != nil {
			res.Received = received.Load()
			return res, err
		}
	}
	res.Received = received.Load()
	return res, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RunApps starts the echo servers of the topology and runs all echo clients
// concurrently. The results are in the order of the topology applications.
func (n *Network) RunApps(ctx context.Context) ([]EchoResult, error) {
	apps := n.topo.Apps
	type serverKey struct {
		node string
		port uint16
	}
	servers := make(map[serverKey]*EchoServer, len(apps))
	defer func() {
		for _, s := range servers {
			s.Stop()
		}
	}()
	for _, app := range apps {
		key := serverKey{node: app.Server, port: app.Port}
		if _, ok := servers[key]; ok {
			continue
		}
		s := &EchoServer{Network: n, Node: app.Server, Port: app.Port}
		if err := s.Start(); err != nil {
			return nil, serrors.Wrap("starting echo server", err, "node", app.Server)
		}
		servers[key] = s
	}

	results := make([]EchoResult, len(apps))
	g, gctx := errgroup.WithContext(ctx)
	for i, app := range apps {
		client, err := n.echoClient(app)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			defer log.HandlePanic()
			res, err := client.Run(gctx)
			res.Server = app.Server
			results[i] = res
			if err != nil {
				return serrors.Wrap("running echo client", err, "node", app.Client)
			}
			n.opts.logger.Info("Echo client done", "client", app.Client,
				"remote", app.Remote, "sent", res.Sent, "received", res.Received)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (n *Network) echoClient(app topology.EchoApp) (*EchoClient, error) {
	remote, err := addr.ParseAddr(app.Remote)
	if err != nil {
		return nil, err
	}
	return &EchoClient{
		Network:    n,
		Node:       app.Client,
		Remote:     remote,
		Port:       app.Port,
		MaxPackets: app.MaxPackets,
		Interval:   app.Interval.Duration,
		PacketSize: app.PacketSize,
	}, nil
}
