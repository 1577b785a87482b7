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
	"github.com/scionproto/lpmsim/pkg/log"
	"github.com/scionproto/lpmsim/private/app/feature"
)

const (
	// DefaultHopLimit is the number of hops after which a packet is dropped.
	DefaultHopLimit = 64
	// DefaultCacheSize is the lookup cache size per node.
	DefaultCacheSize = 256
)

// Option configures a Network.
type Option func(*options)

type options struct {
	observers []PacketObserver
	hopLimit  int
	cacheSize int
	metrics   *Metrics
	features  feature.Set
	logger    log.Logger
}

// WithObserver adds an observer of packet events. It can be passed several
// times.
func WithObserver(o PacketObserver) Option {
	return func(opts *options) {
		opts.observers = append(opts.observers, o)
	}
}

// WithHopLimit sets the hop limit. Values smaller than 1 select
// DefaultHopLimit.
func WithHopLimit(limit int) Option {
	return func(opts *options) {
		opts.hopLimit = limit
	}
}

// WithCacheSize sets the lookup cache size used with the cached_lookups
// feature.
func WithCacheSize(size int) Option {
	return func(opts *options) {
		opts.cacheSize = size
	}
}

// WithMetrics reports packet and routing table metrics to m.
func WithMetrics(m *Metrics) Option {
	return func(opts *options) {
		opts.metrics = m
	}
}

// WithFeatures enables optional behavior.
func WithFeatures(f feature.Set) Option {
	return func(opts *options) {
		opts.features = f
	}
}

// WithLogger sets the logger. By default the root logger is used.
func WithLogger(logger log.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func applyOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.hopLimit < 1 {
		o.hopLimit = DefaultHopLimit
	}
	if o.cacheSize < 1 {
		o.cacheSize = DefaultCacheSize
	}
	if o.logger == nil {
		o.logger = log.Root()
	}
	return o
}
