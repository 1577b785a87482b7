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

package sim_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/pkg/private/util"
	"github.com/scionproto/lpmsim/private/sim"
	"github.com/scionproto/lpmsim/private/topology"
)

func fastExample(interval time.Duration) *topology.Topology {
	topo := topology.LongestPrefixExample()
	for i := range topo.Apps {
		topo.Apps[i].Interval = util.DurWrap{Duration: interval}
	}
	return topo
}

func TestRunApps(t *testing.T) {
	var delivered atomic.Int32
	n, err := sim.New(fastExample(time.Millisecond),
		sim.WithObserver(sim.ObserverFunc(func(ev sim.PacketEvent) {
			if ev.Delivered {
				delivered.Add(1)
			}
		})),
	)
	require.NoError(t, err)

	results, err := n.RunApps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []sim.EchoResult{
		{
			Client: "n0", Server: "n3", Remote: addr.MustParseAddr("192.168.3.2"), Port: 9,
			Sent: 5, Received: 5,
		},
		{
			Client: "n5", Server: "n4", Remote: addr.MustParseAddr("10.1.1.2"), Port: 10,
			Sent: 5, Received: 5,
		},
	}, results)
	// Requests and replies.
	assert.Equal(t, int32(20), delivered.Load())

	// Servers are stopped, the ports can be reused.
	n3, err := n.Node("n3")
	require.NoError(t, err)
	require.NoError(t, n3.Listen(9, func(context.Context, sim.Header) {}))
	n3.Close(9)
}

func TestRunAppsUnreachableServer(t *testing.T) {
	n, err := sim.New(fastExample(0))
	require.NoError(t, err)
	require.NoError(t, n.SetInterfaceDown("n2", 2))

	results, err := n.RunApps(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	// Requests leave n0 but are dropped at n2.
	assert.Equal(t, uint32(5), results[0].Sent)
	assert.Equal(t, uint32(0), results[0].Received)
	assert.Equal(t, uint32(5), results[1].Received)
}

func TestRunAppsCanceled(t *testing.T) {
	n, err := sim.New(fastExample(time.Hour))
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	results, err := n.RunApps(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, uint32(1), res.Sent)
		assert.Equal(t, uint32(1), res.Received)
	}
}

func TestEchoClientWithoutRoute(t *testing.T) {
	n, err := sim.New(topology.LongestPrefixExample())
	require.NoError(t, err)
	client := sim.EchoClient{
		Network:    n,
		Node:       "n4",
		Remote:     addr.MustParseAddr("8.8.8.8"),
		Port:       9,
		MaxPackets: 3,
		PacketSize: 16,
	}
	res, err := client.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(0), res.Sent)
	assert.Equal(t, uint32(0), res.Received)
}

func TestEchoServer(t *testing.T) {
	n, err := sim.New(topology.LongestPrefixExample())
	require.NoError(t, err)
	server := &sim.EchoServer{Network: n, Node: "n3", Port: 9}
	require.NoError(t, server.Start())
	defer server.Stop()
	assert.Error(t, (&sim.EchoServer{Network: n, Node: "n3", Port: 9}).Start())

	var reply sim.Header
	n0, err := n.Node("n0")
	require.NoError(t, err)
	require.NoError(t, n0.Listen(40000, func(_ context.Context, hdr sim.Header) {
		reply = hdr
	}))
	defer n0.Close(40000)

	src, err := n0.SourceAddr(addr.MustParseAddr("192.168.3.2"))
	require.NoError(t, err)
	assert.Equal(t, addr.MustParseAddr("192.168.1.1"), src)
	pkt, err := sim.NewUDPPacket(src, addr.MustParseAddr("192.168.3.2"), 40000, 9,
		[]byte("hello"))
	require.NoError(t, err)
	_, err = n.Send(context.Background(), "n0", pkt)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), server.Received())
	assert.Equal(t, sim.Header{
		Src:     addr.MustParseAddr("192.168.3.2"),
		Dst:     addr.MustParseAddr("192.168.1.1"),
		SrcPort: 9,
		DstPort: 40000,
		Payload: []byte("hello"),
	}, reply)
}
