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

// Package metrics provides a prometheus collector factory. Components accept
// a Factory so that tests can register into a private registry instead of the
// process-wide default one.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Factory.
type Option func(*Options)

// Options configures the metrics Factory, construct it using ApplyOptions.
type Options struct {
	registry prometheus.Registerer
}

// WithRegistry sets the registry the collectors are registered with.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(o *Options) {
		o.registry = registry
	}
}

// ApplyOptions applies all options.
func ApplyOptions(options ...Option) Options {
	opts := Options{}
	for _, option := range options {
		option(&opts)
	}
	return opts
}

// Auto creates a Factory that uses the configured registry. If no explicit
// registry is set the default registerer is used.
func (o Options) Auto() Factory {
	reg := o.registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return Factory{reg: reg}
}

// Factory registers collectors on creation.
type Factory struct {
	reg prometheus.Registerer
}

// NewFactory is a shorthand for ApplyOptions(opts...).Auto().
func NewFactory(opts ...Option) Factory {
	return ApplyOptions(opts...).Auto()
}

func (f Factory) register(c prometheus.Collector) {
	reg := f.reg
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(c)
}

func (f Factory) NewCounterVec(
	opts prometheus.CounterOpts,
	labelNames []string,
) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labelNames)
	f.register(c)
	return c
}

func (f Factory) NewGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	f.register(g)
	return g
}

func (f Factory) NewGaugeVec(opts prometheus.GaugeOpts, labelNames []string) *prometheus.GaugeVec {
	g := prometheus.NewGaugeVec(opts, labelNames)
	f.register(g)
	return g
}

func (f Factory) NewHistogramVec(
	opts prometheus.HistogramOpts,
	labelNames []string,
) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labelNames)
	f.register(h)
	return h
}
