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

package routing

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/scionproto/lpmsim/pkg/addr"
)

// Route is a static route.
type Route struct {
	// Dest is the destination prefix.
	Dest addr.Prefix
	// NextHop is the gateway packets are forwarded to. The unspecified address
	// 0.0.0.0 marks a directly connected network.
	NextHop addr.Addr
	// Interface is the index of the outgoing interface. It is not considered
	// during route selection.
	Interface uint32
	// Metric is the route cost, lower is preferred.
	Metric uint32
}

// IsConnected reports whether the route points to a directly connected
// network.
func (r Route) IsConnected() bool {
	return r.NextHop.IsUnspecified()
}

func (r Route) String() string {
	return fmt.Sprintf("%s via %s if %d metric %d", r.Dest, r.NextHop, r.Interface, r.Metric)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (r Route) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("dest", r.Dest.String())
	enc.AddString("next_hop", r.NextHop.String())
	enc.AddUint32("interface", r.Interface)
	enc.AddUint32("metric", r.Metric)
	return nil
}

// entry is a route together with its insertion sequence number.
type entry struct {
	Route
	seq uint64
}

// better reports whether a is preferred over b when both match the same
// destination: the longer prefix wins, then the lower metric, then the more
// recently installed route.
func better(a, b entry) bool {
	if a.Dest.Len() != b.Dest.Len() {
		return a.Dest.Len() > b.Dest.Len()
	}
	if a.Metric != b.Metric {
		return a.Metric < b.Metric
	}
	return a.seq > b.seq
}

// LinearLookup scans routes in order and returns the preferred route that
// contains dest. The position in the slice is the insertion order, later
// entries count as more recently installed. Unlike a Table, routes may
// contain several entries for the same prefix.
func LinearLookup(routes []Route, dest addr.Addr) (Route, bool) {
	var best entry
	found := false
	for i, r := range routes {
		if !r.Dest.Contains(dest) {
			continue
		}
		e := entry{Route: r, seq: uint64(i)}
		if !found || better(e, best) {
			best, found = e, true
		}
	}
	return best.Route, found
}
