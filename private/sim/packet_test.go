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
	"testing"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/private/sim"
)

func TestPacketDecode(t *testing.T) {
	src := addr.MustParseAddr("192.168.1.1")
	dst := addr.MustParseAddr("192.168.3.2")
	payload := []byte("ping")

	pkt, err := sim.NewUDPPacket(src, dst, 49153, 9, payload)
	require.NoError(t, err)
	hdr, err := pkt.Decode()
	require.NoError(t, err)
	assert.Equal(t, sim.Header{
		Src:     src,
		Dst:     dst,
		SrcPort: 49153,
		DstPort: 9,
		Payload: payload,
	}, hdr)

	decoded := gopacket.NewPacket(pkt.Raw, layers.LayerTypeIPv4, gopacket.Default)
	require.Nil(t, decoded.ErrorLayer())
	ip := decoded.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
	assert.Equal(t, uint16(len(pkt.Raw)), ip.Length)
	assert.Equal(t, uint8(64), ip.TTL)
}

func TestPacketDecodeErrors(t *testing.T) {
	tcp := func(t *testing.T) []byte {
		ip := layers.IPv4{
			Version:  4,
			IHL:      5,
			TTL:      64,
			SrcIP:    []byte{10, 0, 0, 1},
			DstIP:    []byte{10, 0, 0, 2},
			Protocol: layers.IPProtocolTCP,
		}
		sb := gopacket.NewSerializeBuffer()
		opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
		require.NoError(t, gopacket.SerializeLayers(sb, opts, &ip, gopacket.Payload("x")))
		return sb.Bytes()
	}
	testCases := map[string]struct {
		raw func(t *testing.T) []byte
	}{
		"empty": {
			raw: func(*testing.T) []byte { return nil },
		},
		"truncated": {
			raw: func(*testing.T) []byte { return []byte{0x45, 0x00, 0x00} },
		},
		"not udp": {
			raw: tcp,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			pkt := &sim.Packet{Raw: tc.raw(t)}
			_, err := pkt.Decode()
			assert.Error(t, err)
		})
	}
}
