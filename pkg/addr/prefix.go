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
	"fmt"
	"math/bits"
	"net/netip"
	"strconv"
	"strings"

	"go4.org/netipx"

	"github.com/scionproto/lpmsim/pkg/private/serrors"
)

// DefaultPrefix is 0.0.0.0/0, it contains every address.
var DefaultPrefix = Prefix{}

// Prefix is a canonical IPv4 network prefix. The zero value is DefaultPrefix.
type Prefix struct {
	network Addr
	length  uint8
}

// Canonicalize masks network to length bits and returns the resulting prefix.
// Canonicalize is idempotent.
func Canonicalize(network Addr, length uint8) (Prefix, error) {
	n, err := Mask(network, length)
	if err != nil {
		return Prefix{}, err
	}
	return Prefix{network: n, length: length}, nil
}

// MustPrefix calls Canonicalize and panics on error.
func MustPrefix(network Addr, length uint8) Prefix {
	p, err := Canonicalize(network, length)
	if err != nil {
		panic(err)
	}
	return p
}

// HostPrefix returns the /32 prefix of a.
func HostPrefix(a Addr) Prefix {
	return Prefix{network: a, length: Width}
}

// ParsePrefix parses a prefix in CIDR notation, e.g. "10.1.0.0/16". Host bits
// that are set in the network part are cleared.
func ParsePrefix(s string) (Prefix, error) {
	ip, l, ok := strings.Cut(s, "/")
	if !ok {
		return Prefix{}, serrors.New("missing prefix length", "prefix", s)
	}
	network, err := ParseAddr(ip)
	if err != nil {
		return Prefix{}, err
	}
	length, err := strconv.ParseUint(l, 10, 8)
	if err != nil {
		return Prefix{}, serrors.Join(ErrInvalidPrefixLength, err, "prefix", s)
	}
	return Canonicalize(network, uint8(length))
}

// MustParsePrefix calls ParsePrefix(s) and panics on error.
// It is intended for use in tests with hard-coded strings.
func MustParsePrefix(s string) Prefix {
	p, err := ParsePrefix(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PrefixFromMask builds a prefix from a network and a dotted decimal netmask,
// e.g. "255.255.255.0".
func PrefixFromMask(network Addr, mask string) (Prefix, error) {
	m, err := ParseAddr(mask)
	if err != nil {
		return Prefix{}, serrors.Wrap("parsing mask", err)
	}
	length := uint8(bits.LeadingZeros32(^uint32(m)))
	if maskOf(length) != m {
		return Prefix{}, serrors.Join(ErrNonContiguousMask, nil, "mask", mask)
	}
	return Canonicalize(network, length)
}

// PrefixFromNetIP converts p to a canonical Prefix.
func PrefixFromNetIP(p netip.Prefix) (Prefix, error) {
	if !p.IsValid() {
		return Prefix{}, serrors.New("invalid prefix", "prefix", p)
	}
	a, err := AddrFromNetIP(p.Addr())
	if err != nil {
		return Prefix{}, err
	}
	return Canonicalize(a, uint8(p.Bits()))
}

// Network returns the network address of the prefix.
func (p Prefix) Network() Addr {
	return p.network
}

// Len returns the prefix length.
func (p Prefix) Len() uint8 {
	return p.length
}

// Mask returns the prefix length in dotted netmask form.
func (p Prefix) Mask() Addr {
	return maskOf(p.length)
}

// Contains reports whether a is covered by the prefix.
func (p Prefix) Contains(a Addr) bool {
	return a&maskOf(p.length) == p.network
}

// Overlaps reports whether the two prefixes share at least one address.
func (p Prefix) Overlaps(o Prefix) bool {
	if p.length <= o.length {
		return p.Contains(o.network)
	}
	return o.Contains(p.network)
}

// NetIP returns the prefix as a netip.Prefix.
func (p Prefix) NetIP() netip.Prefix {
	return netip.PrefixFrom(p.network.NetIP(), int(p.length))
}

// Range returns the first and the last address covered by the prefix.
func (p Prefix) Range() (Addr, Addr) {
	r := netipx.RangeOfPrefix(p.NetIP())
	// Both ends of an IPv4 range are IPv4 addresses.
	first, _ := AddrFromNetIP(r.From())
	last, _ := AddrFromNetIP(r.To())
	return first, last
}

func (p Prefix) String() string {
	return fmt.Sprintf("%s/%d", p.network, p.length)
}
