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

// Package config contains the configuration of the lpmsim application.
package config

import (
	"io"
	"time"

	"github.com/scionproto/lpmsim/pkg/log"
	"github.com/scionproto/lpmsim/pkg/private/serrors"
	"github.com/scionproto/lpmsim/pkg/private/util"
	"github.com/scionproto/lpmsim/private/app/feature"
	"github.com/scionproto/lpmsim/private/config"
	"github.com/scionproto/lpmsim/private/env"
	"github.com/scionproto/lpmsim/private/sim"
)

// Defaults.
const (
	DefaultHopLimit      = sim.DefaultHopLimit
	DefaultCacheSize     = sim.DefaultCacheSize
	DefaultProbeInterval = time.Second
	DefaultProbeCount    = 1
)

var _ config.Config = (*Config)(nil)

type Config struct {
	Logging    log.Config  `toml:"log,omitempty"`
	Metrics    env.Metrics `toml:"metrics,omitempty"`
	Simulation Simulation  `toml:"simulation,omitempty"`
}

func (cfg *Config) InitDefaults() {
	config.InitAll(
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.Simulation,
	)
}

func (cfg *Config) Validate() error {
	return config.ValidateAll(
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.Simulation,
	)
}

func (cfg *Config) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteSample(dst, path, config.CtxMap{config.ID: "lpmsim"},
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.Simulation,
	)
}

// Simulation configures the simulated network and how it is exercised.
type Simulation struct {
	// TopologyFile is the TOML or YAML topology to simulate. If empty, the
	// builtin longest prefix example is used.
	TopologyFile string `toml:"topology_file,omitempty"`
	// HopLimit is the number of hops after which packets are dropped.
	HopLimit int `toml:"hop_limit,omitempty"`
	// CacheSize is the per node lookup cache size of the cached_lookups
	// feature.
	CacheSize int `toml:"cache_size,omitempty"`
	// ProbeCount is the number of rounds the echo applications are run.
	ProbeCount int `toml:"probe_count,omitempty"`
	// ProbeInterval is the pause between two rounds.
	ProbeInterval util.DurWrap `toml:"probe_interval,omitempty"`
	// Features lists the enabled simulator features.
	Features []string `toml:"features,omitempty"`
}

func (cfg *Simulation) InitDefaults() {
	if cfg.HopLimit == 0 {
		cfg.HopLimit = DefaultHopLimit
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.ProbeCount == 0 {
		cfg.ProbeCount = DefaultProbeCount
	}
	if cfg.ProbeInterval.Duration == 0 {
		cfg.ProbeInterval.Duration = DefaultProbeInterval
	}
}

func (cfg *Simulation) Validate() error {
	if cfg.HopLimit < 1 {
		return serrors.New("hop_limit must be positive", "hop_limit", cfg.HopLimit)
	}
	if cfg.CacheSize < 1 {
		return serrors.New("cache_size must be positive", "cache_size", cfg.CacheSize)
	}
	if cfg.ProbeCount < 1 {
		return serrors.New("probe_count must be positive", "probe_count", cfg.ProbeCount)
	}
	if cfg.ProbeInterval.Duration < 0 {
		return serrors.New("probe_interval must not be negative",
			"probe_interval", cfg.ProbeInterval)
	}
	if _, err := feature.ParseSet(cfg.Features); err != nil {
		return err
	}
	return nil
}

// FeatureSet returns the enabled features. The configuration must be valid.
func (cfg *Simulation) FeatureSet() feature.Set {
	set, _ := feature.ParseSet(cfg.Features)
	return set
}

func (cfg *Simulation) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteString(dst, simulationSample)
}

func (cfg *Simulation) ConfigName() string {
	return "simulation"
}
