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

package addr

import (
	"encoding/binary"
	"errors"
	"net/netip"

	"github.com/scionproto/lpmsim/pkg/private/serrors"
)

// Width is the number of bits in an address.
const Width = 32

var (
	// ErrInvalidPrefixLength indicates a prefix length larger than Width.
	ErrInvalidPrefixLength = errors.New("invalid prefix length")
	// ErrNonContiguousMask indicates a dotted netmask with holes in it.
	ErrNonContiguousMask = errors.New("non-contiguous mask")
)

// Addr is an IPv4 address.
type Addr uint32

// AddrFrom4 returns the address of the given bytes in network byte order.
func AddrFrom4(b [4]byte) Addr {
	return Addr(binary.BigEndian.Uint32(b[:]))
}

// AddrFromNetIP converts ip to an Addr. IPv4-mapped IPv6 addresses are
// accepted, any other IPv6 address is rejected.
func AddrFromNetIP(ip netip.Addr) (Addr, error) {
	ip = ip.Unmap()
	if !ip.Is4() {
		return 0, serrors.New("not an IPv4 address", "addr", ip)
	}
	return AddrFrom4(ip.As4()), nil
}

// ParseAddr parses s in dotted decimal notation.
func ParseAddr(s string) (Addr, error) {
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return 0, serrors.Wrap("parsing address", err, "addr", s)
	}
	return AddrFromNetIP(ip)
}

// MustParseAddr calls ParseAddr(s) and panics on error.
// It is intended for use in tests with hard-coded strings.
func MustParseAddr(s string) Addr {
	a, err := ParseAddr(s)
	if err != nil {
		panic(err)
	}
	return a
}

// As4 returns the address in network byte order.
func (a Addr) As4() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(a))
	return b
}

// NetIP returns the address as a netip.Addr.
func (a Addr) NetIP() netip.Addr {
	return netip.AddrFrom4(a.As4())
}

// IsUnspecified reports whether a is 0.0.0.0. A route with an unspecified
// next hop refers to a directly connected network.
func (a Addr) IsUnspecified() bool {
	return a == 0
}

func (a Addr) String() string {
	return a.NetIP().String()
}

// Set implements pflag.Value.
func (a *Addr) Set(s string) error {
	v, err := ParseAddr(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Type implements pflag.Value.
func (a *Addr) Type() string {
	return "ipv4"
}

// Mask zeroes out all bits of a beyond the first length bits.
func Mask(a Addr, length uint8) (Addr, error) {
	if length > Width {
		return 0, serrors.Join(ErrInvalidPrefixLength, nil, "length", length)
	}
	return a & maskOf(length), nil
}

// maskOf returns the netmask with the first length bits set. length must not
// exceed Width.
func maskOf(length uint8) Addr {
	// Shifting by Width yields zero, which is the mask of the default route.
	return Addr(^uint32(0) << (Width - uint32(length)))
}
