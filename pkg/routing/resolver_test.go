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

package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/pkg/routing"
)

func TestResolve(t *testing.T) {
	table := routing.NewTable()
	gw := addr.MustParseAddr("192.168.1.2")
	require.NoError(t, table.AddNetworkRoute(addr.MustParseAddr("192.168.1.0"), 24, 0, 1, 0))
	require.NoError(t, table.AddNetworkRoute(addr.MustParseAddr("192.168.3.0"), 24, gw, 1, 0))

	testCases := map[string]struct {
		dest    string
		want    routing.Action
		nextHop string
		reason  routing.DropReason
	}{
		"via gateway": {
			dest:    "192.168.3.2",
			want:    routing.ActionForward,
			nextHop: "192.168.1.2",
		},
		"connected": {
			dest:    "192.168.1.2",
			want:    routing.ActionForward,
			nextHop: "192.168.1.2",
		},
		"no route": {
			dest:   "10.1.1.2",
			want:   routing.ActionDrop,
			reason: routing.NoRoute,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			d := routing.Resolve(table, addr.MustParseAddr(tc.dest))
			assert.Equal(t, tc.want, d.Action)
			if tc.want == routing.ActionDrop {
				assert.False(t, d.Forwarded())
				assert.Equal(t, tc.reason, d.Reason)
				return
			}
			assert.True(t, d.Forwarded())
			assert.Equal(t, addr.MustParseAddr(tc.nextHop), d.NextHop)
			assert.Equal(t, uint32(1), d.Route.Interface)
		})
	}
}

func TestDecisionString(t *testing.T) {
	r := routing.Route{
		Dest:      addr.MustParsePrefix("10.1.1.0/24"),
		NextHop:   addr.MustParseAddr("172.16.1.1"),
		Interface: 1,
	}
	assert.Equal(t, "forward to 172.16.1.1 (10.1.1.0/24 via 172.16.1.1 if 1 metric 0)",
		routing.Forward(r).String())
	assert.Equal(t, "drop (no_route)", routing.Drop(routing.NoRoute).String())
	assert.Equal(t, "drop (hop_limit_exceeded)",
		routing.Drop(routing.HopLimitExceeded).String())
}

func TestDecisionMarshalLogObject(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	r := routing.Route{
		Dest:    addr.MustParsePrefix("10.1.1.0/24"),
		NextHop: addr.MustParseAddr("172.16.1.1"),
	}
	require.NoError(t, routing.Forward(r).MarshalLogObject(enc))
	assert.Equal(t, "forward", enc.Fields["action"])
	assert.Equal(t, "172.16.1.1", enc.Fields["next_hop"])
	assert.Equal(t, "10.1.1.0/24", enc.Fields["route"].(map[string]any)["dest"])

	enc = zapcore.NewMapObjectEncoder()
	require.NoError(t, routing.Drop(routing.InterfaceDown).MarshalLogObject(enc))
	assert.Equal(t, map[string]any{"action": "drop", "reason": "interface_down"}, enc.Fields)
}
