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

package topology_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/private/topology"
)

func TestLoad(t *testing.T) {
	testCases := map[string]struct {
		file string
	}{
		"toml": {file: "testdata/longest_prefix.toml"},
		"yaml": {file: "testdata/longest_prefix.yaml"},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			topo, err := topology.Load(tc.file)
			require.NoError(t, err)
			if diff := cmp.Diff(topology.LongestPrefixExample(), topo); diff != "" {
				t.Fatalf("topology mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := topology.Load("testdata/longest_prefix.json")
	assert.Error(t, err)
	_, err = topology.Load("testdata/missing.toml")
	assert.Error(t, err)
	_, err = topology.Decode([]byte("[[nodes]]\nname = \"n0\"\ncolor = \"red\"\n"),
		topology.FormatTOML)
	assert.Error(t, err)
	_, err = topology.Decode([]byte("nodes:\n  - name: n0\n    color: red\n"),
		topology.FormatYAML)
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []topology.Format{topology.FormatTOML, topology.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, topology.Encode(&buf, topology.LongestPrefixExample(), format))
			topo, err := topology.Decode(buf.Bytes(), format)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(topology.LongestPrefixExample(), topo))
		})
	}
}

func TestInterfaces(t *testing.T) {
	topo := topology.LongestPrefixExample()
	ifaces, err := topo.Interfaces("n1")
	require.NoError(t, err)
	want := []topology.Interface{
		{
			Index:    1,
			Addr:     addr.MustParseAddr("192.168.1.2"),
			Subnet:   addr.MustParsePrefix("192.168.1.0/24"),
			Peer:     "n0",
			PeerAddr: addr.MustParseAddr("192.168.1.1"),
		},
		{
			Index:    2,
			Addr:     addr.MustParseAddr("192.168.2.1"),
			Subnet:   addr.MustParsePrefix("192.168.2.0/24"),
			Peer:     "n2",
			PeerAddr: addr.MustParseAddr("192.168.2.2"),
		},
		{
			Index:    3,
			Addr:     addr.MustParseAddr("10.1.1.1"),
			Subnet:   addr.MustParsePrefix("10.1.1.0/24"),
			Peer:     "n4",
			PeerAddr: addr.MustParseAddr("10.1.1.2"),
		},
	}
	assert.Equal(t, want, ifaces)

	_, err = topo.Interfaces("n9")
	assert.ErrorIs(t, err, topology.ErrUnknownNode)
}

func TestOwner(t *testing.T) {
	topo := topology.LongestPrefixExample()
	owner, ok := topo.Owner(addr.MustParseAddr("192.168.3.2"))
	assert.True(t, ok)
	assert.Equal(t, "n3", owner)
	owner, ok = topo.Owner(addr.MustParseAddr("172.16.1.1"))
	assert.True(t, ok)
	assert.Equal(t, "n2", owner)
	_, ok = topo.Owner(addr.MustParseAddr("172.16.1.3"))
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	testCases := map[string]struct {
		modify    func(*topology.Topology)
		assertErr assert.ErrorAssertionFunc
	}{
		"example": {
			modify:    func(*topology.Topology) {},
			assertErr: assert.NoError,
		},
		"no nodes": {
			modify:    func(topo *topology.Topology) { *topo = topology.Topology{} },
			assertErr: assert.Error,
		},
		"duplicate node": {
			modify: func(topo *topology.Topology) {
				topo.Nodes = append(topo.Nodes, topology.Node{Name: "n0"})
			},
			assertErr: assert.Error,
		},
		"link to unknown node": {
			modify: func(topo *topology.Topology) {
				topo.Links[0].B = "n9"
			},
			assertErr: func(t assert.TestingT, err error, i ...any) bool {
				return assert.ErrorIs(t, err, topology.ErrUnknownNode, i...)
			},
		},
		"self link": {
			modify:    func(topo *topology.Topology) { topo.Links[0].B = "n0" },
			assertErr: assert.Error,
		},
		"overlapping subnets": {
			modify: func(topo *topology.Topology) {
				topo.Links[1].Subnet = "192.168.0.0/16"
			},
			assertErr: assert.Error,
		},
		"subnet too small": {
			modify:    func(topo *topology.Topology) { topo.Links[0].Subnet = "192.168.1.0/31" },
			assertErr: assert.Error,
		},
		"non-contiguous mask": {
			modify:    func(topo *topology.Topology) { topo.Routes[0].Mask = "255.0.255.0" },
			assertErr: assert.Error,
		},
		"bad gateway": {
			modify:    func(topo *topology.Topology) { topo.Routes[0].Gateway = "gw" },
			assertErr: assert.Error,
		},
		"missing interface": {
			modify:    func(topo *topology.Topology) { topo.Routes[0].Interface = 2 },
			assertErr: assert.Error,
		},
		"route on unknown node": {
			modify: func(topo *topology.Topology) { topo.Routes[0].Node = "n9" },
			assertErr: func(t assert.TestingT, err error, i ...any) bool {
				return assert.ErrorIs(t, err, topology.ErrUnknownNode, i...)
			},
		},
		"remote not on server": {
			modify:    func(topo *topology.Topology) { topo.Apps[0].Remote = "192.168.3.1" },
			assertErr: assert.Error,
		},
		"no port": {
			modify:    func(topo *topology.Topology) { topo.Apps[0].Port = 0 },
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			topo := topology.LongestPrefixExample()
			tc.modify(topo)
			tc.assertErr(t, topo.Validate())
		})
	}
}

func TestStaticRouteDest(t *testing.T) {
	r := topology.StaticRoute{Network: "192.168.3.9", Mask: "255.255.255.0"}
	p, err := r.Dest()
	require.NoError(t, err)
	assert.Equal(t, addr.MustParsePrefix("192.168.3.0/24"), p)
}
