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
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/pkg/private/prom"
)

// TableOption configures a Table.
type TableOption func(*Table)

// WithMetrics reports table activity to m. The name is used as the table
// label of all metrics.
func WithMetrics(m *Metrics, name string) TableOption {
	return func(t *Table) {
		if m == nil {
			return
		}
		t.hits = m.Lookups.WithLabelValues(name, prom.Hit)
		t.misses = m.Lookups.WithLabelValues(name, prom.Miss)
		t.size = m.Routes.WithLabelValues(name)
	}
}

// Table is a static routing table with longest prefix match lookups. It is safe
// for concurrent use. Mutations are serialized, lookups run in parallel.
//
// A Table holds at most one route per prefix; adding a route for a prefix that
// is already present replaces the previous route.
type Table struct {
	mtx        sync.RWMutex
	index      trie
	routes     map[addr.Prefix]*entry
	seq        uint64
	generation uint64

	hits   prometheus.Counter
	misses prometheus.Counter
	size   prometheus.Gauge
}

// NewTable creates an empty table.
func NewTable(opts ...TableOption) *Table {
	t := &Table{
		routes: make(map[addr.Prefix]*entry),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddRoute inserts r. An existing route for the same prefix is replaced.
func (t *Table) AddRoute(r Route) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	t.seq++
	e := &entry{Route: r, seq: t.seq}
	t.routes[r.Dest] = e
	t.index.insert(e)
	t.changed()
}

// Add inserts a route for dest via nextHop with the given metric.
func (t *Table) Add(dest addr.Prefix, nextHop addr.Addr, metric uint32) {
	t.AddRoute(Route{Dest: dest, NextHop: nextHop, Metric: metric})
}

// AddNetworkRoute inserts a route towards network/length. The network may have
// host bits set, they are cleared. An invalid length is rejected and the table
// is left untouched.
func (t *Table) AddNetworkRoute(network addr.Addr, length uint8, nextHop addr.Addr,
	iface, metric uint32) error {

	dest, err := addr.Canonicalize(network, length)
	if err != nil {
		return err
	}
	t.AddRoute(Route{Dest: dest, NextHop: nextHop, Interface: iface, Metric: metric})
	return nil
}

// AddHostRoute inserts a /32 route towards host.
func (t *Table) AddHostRoute(host, nextHop addr.Addr, iface, metric uint32) {
	t.AddRoute(Route{
		Dest:      addr.HostPrefix(host),
		NextHop:   nextHop,
		Interface: iface,
		Metric:    metric,
	})
}

// SetDefaultRoute installs the 0.0.0.0/0 route.
func (t *Table) SetDefaultRoute(nextHop addr.Addr, iface, metric uint32) {
	t.AddRoute(Route{
		Dest:      addr.DefaultPrefix,
		NextHop:   nextHop,
		Interface: iface,
		Metric:    metric,
	})
}

// RemoveRoute removes the route for dest. It returns false if there is none.
func (t *Table) RemoveRoute(dest addr.Prefix) bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if _, ok := t.routes[dest]; !ok {
		return false
	}
	t.removeLocked(dest)
	t.changed()
	return true
}

// RemoveNextHop removes all routes via nextHop and returns how many were
// removed.
func (t *Table) RemoveNextHop(nextHop addr.Addr) int {
	return t.removeIf(func(r Route) bool { return r.NextHop == nextHop })
}

// RemoveInterface removes all routes through the interface with the given
// index and returns how many were removed.
func (t *Table) RemoveInterface(iface uint32) int {
	return t.removeIf(func(r Route) bool { return r.Interface == iface })
}

func (t *Table) removeIf(match func(Route) bool) int {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	var doomed []addr.Prefix
	for p, e := range t.routes {
		if match(e.Route) {
			doomed = append(doomed, p)
		}
	}
	for _, p := range doomed {
		t.removeLocked(p)
	}
	if len(doomed) > 0 {
		t.changed()
	}
	return len(doomed)
}

func (t *Table) removeLocked(p addr.Prefix) {
	delete(t.routes, p)
	t.index.remove(p)
}

// changed must be called with the write lock held after every mutation.
func (t *Table) changed() {
	t.generation++
	if t.size != nil {
		t.size.Set(float64(len(t.routes)))
	}
}

// Lookup returns the route with the longest prefix containing dest. The second
// return value is false if no route matches.
func (t *Table) Lookup(dest addr.Addr) (Route, bool) {
	r, ok, _ := t.lookup(dest)
	return r, ok
}

// lookup also returns the generation the result was computed in.
func (t *Table) lookup(dest addr.Addr) (Route, bool, uint64) {
	t.mtx.RLock()
	e := t.index.longest(dest)
	gen := t.generation
	t.mtx.RUnlock()

	if e == nil {
		inc(t.misses)
		return Route{}, false, gen
	}
	inc(t.hits)
	return e.Route, true, gen
}

// Get returns the route installed for exactly dest.
func (t *Table) Get(dest addr.Prefix) (Route, bool) {
	t.mtx.RLock()
	defer t.mtx.RUnlock()

	e, ok := t.routes[dest]
	if !ok {
		return Route{}, false
	}
	return e.Route, true
}

// Len returns the number of routes.
func (t *Table) Len() int {
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	return len(t.routes)
}

// Routes returns a copy of all routes in no particular order.
func (t *Table) Routes() []Route {
	t.mtx.RLock()
	defer t.mtx.RUnlock()

	routes := make([]Route, 0, len(t.routes))
	for _, e := range t.routes {
		routes = append(routes, e.Route)
	}
	return routes
}

// Generation returns a counter that is incremented on every mutation.
func (t *Table) Generation() uint64 {
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	return t.generation
}

func inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}
