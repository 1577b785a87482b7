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
	"net/netip"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/pkg/private/serrors"
)

const defaultTTL = 64

var seropts = gopacket.SerializeOptions{
	FixLengths:       true,
	ComputeChecksums: true,
}

// Packet is a serialized IPv4 datagram carrying UDP.
type Packet struct {
	Raw []byte
}

// Header holds the decoded addressing information of a packet.
type Header struct {
	Src     addr.Addr
	Dst     addr.Addr
	SrcPort uint16
	DstPort uint16
	Payload []byte
}

// NewUDPPacket serializes a UDP datagram.
func NewUDPPacket(src, dst addr.Addr, srcPort, dstPort uint16, payload []byte) (*Packet, error) {
	srcIP, dstIP := src.As4(), dst.As4()
	ip := layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      defaultTTL,
		SrcIP:    srcIP[:],
		DstIP:    dstIP[:],
		Protocol: layers.IPProtocolUDP,
	}
	udp := layers.UDP{
		SrcPort: layers.UDPPort(srcPort),
		DstPort: layers.UDPPort(dstPort),
	}
	if err := udp.SetNetworkLayerForChecksum(&ip); err != nil {
		return nil, serrors.Wrap("setting network layer", err)
	}
	sb := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(sb, seropts, &ip, &udp, gopacket.Payload(payload)); err != nil {
		return nil, serrors.Wrap("serializing packet", err)
	}
	return &Packet{Raw: append([]byte(nil), sb.Bytes()...)}, nil
}

// Decode parses the IPv4 and UDP headers of the packet.
func (p *Packet) Decode() (Header, error) {
	var ip layers.IPv4
	if err := ip.DecodeFromBytes(p.Raw, gopacket.NilDecodeFeedback); err != nil {
		return Header{}, serrors.Wrap("decoding IPv4 header", err)
	}
	if ip.Protocol != layers.IPProtocolUDP {
		return Header{}, serrors.New("unsupported protocol", "protocol", ip.Protocol)
	}
	var udp layers.UDP
	if err := udp.DecodeFromBytes(ip.Payload, gopacket.NilDecodeFeedback); err != nil {
		return Header{}, serrors.Wrap("decoding UDP header", err)
	}
	src, err := addr.AddrFromNetIP(netipAddr(ip.SrcIP))
	if err != nil {
		return Header{}, err
	}
	dst, err := addr.AddrFromNetIP(netipAddr(ip.DstIP))
	if err != nil {
		return Header{}, err
	}
	return Header{
		Src:     src,
		Dst:     dst,
		SrcPort: uint16(udp.SrcPort),
		DstPort: uint16(udp.DstPort),
		Payload: udp.Payload,
	}, nil
}

func netipAddr(ip []byte) netip.Addr {
	a, _ := netip.AddrFromSlice(ip)
	return a
}
