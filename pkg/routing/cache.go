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

	"github.com/hashicorp/golang-lru/arc/v2"

	"github.com/scionproto/lpmsim/pkg/addr"
	"github.com/scionproto/lpmsim/pkg/private/serrors"
)

type lookupResult struct {
	route Route
	found bool
}

// CachingResolver caches lookup results of a table per destination. The cache
// is flushed whenever the table changes, so results are never stale.
type CachingResolver struct {
	table *Table

	mtx        sync.Mutex
	cache      *arc.ARCCache[addr.Addr, lookupResult]
	generation uint64
	hits       uint64
	misses     uint64
}

// NewCachingResolver creates a resolver caching up to size destinations.
func NewCachingResolver(table *Table, size int) (*CachingResolver, error) {
	if table == nil {
		return nil, serrors.New("table must not be nil")
	}
	cache, err := arc.NewARC[addr.Addr, lookupResult](size)
	if err != nil {
		return nil, serrors.Wrap("creating cache", err, "size", size)
	}
	return &CachingResolver{
		table:      table,
		cache:      cache,
		generation: table.Generation(),
	}, nil
}

// Lookup returns the same result as Lookup on the underlying table.
func (c *CachingResolver) Lookup(dest addr.Addr) (Route, bool) {
	gen := c.table.Generation()

	c.mtx.Lock()
	defer c.mtx.Unlock()
	if gen != c.generation {
		c.cache.Purge()
		c.generation = gen
	}
	if res, ok := c.cache.Get(dest); ok {
		c.hits++
		return res.route, res.found
	}
	c.misses++
	r, found, lookupGen := c.table.lookup(dest)
	// Only cache results of the generation the cache currently reflects.
	if lookupGen == c.generation {
		c.cache.Add(dest, lookupResult{route: r, found: found})
	}
	return r, found
}

// Stats returns the number of cache hits and misses.
func (c *CachingResolver) Stats() (hits, misses uint64) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.hits, c.misses
}
