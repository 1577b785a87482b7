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

package config_test

import (
	"bytes"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/lpmsim/lpmsim/config"
	"github.com/scionproto/lpmsim/pkg/log"
	"github.com/scionproto/lpmsim/pkg/private/util"
	"github.com/scionproto/lpmsim/private/app/feature"
)

func TestConfigSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg config.Config
	cfg.Sample(&sample, nil, nil)

	err := toml.NewDecoder(bytes.NewReader(sample.Bytes())).DisallowUnknownFields().Decode(&cfg)
	require.NoError(t, err)
	cfg.InitDefaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, log.DefaultConsoleLevel, cfg.Logging.Console.Level)
	assert.Empty(t, cfg.Metrics.Prometheus)
	assert.Empty(t, cfg.Simulation.TopologyFile)
	assert.Equal(t, config.DefaultHopLimit, cfg.Simulation.HopLimit)
	assert.Equal(t, config.DefaultCacheSize, cfg.Simulation.CacheSize)
	assert.Equal(t, config.DefaultProbeCount, cfg.Simulation.ProbeCount)
	assert.Equal(t, config.DefaultProbeInterval, cfg.Simulation.ProbeInterval.Duration)
	assert.Empty(t, cfg.Simulation.Features)
}

func TestSimulationDecode(t *testing.T) {
	raw := `
[simulation]
topology_file = "topo.yaml"
hop_limit = 8
probe_count = 3
probe_interval = "250ms"
features = ["table_diffs", "cached_lookups"]
`
	var cfg config.Config
	err := toml.NewDecoder(bytes.NewReader([]byte(raw))).DisallowUnknownFields().Decode(&cfg)
	require.NoError(t, err)
	cfg.InitDefaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "topo.yaml", cfg.Simulation.TopologyFile)
	assert.Equal(t, 8, cfg.Simulation.HopLimit)
	assert.Equal(t, config.DefaultCacheSize, cfg.Simulation.CacheSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulation.ProbeInterval.Duration)
	assert.Equal(t, feature.Set{CachedLookups: true, TableDiffs: true},
		cfg.Simulation.FeatureSet())
}

func TestSimulationValidate(t *testing.T) {
	testCases := map[string]struct {
		modify    func(cfg *config.Simulation)
		assertErr assert.ErrorAssertionFunc
	}{
		"defaults": {
			modify:    func(*config.Simulation) {},
			assertErr: assert.NoError,
		},
		"negative hop limit": {
			modify:    func(cfg *config.Simulation) { cfg.HopLimit = -1 },
			assertErr: assert.Error,
		},
		"negative cache size": {
			modify:    func(cfg *config.Simulation) { cfg.CacheSize = -4 },
			assertErr: assert.Error,
		},
		"negative probe count": {
			modify:    func(cfg *config.Simulation) { cfg.ProbeCount = -1 },
			assertErr: assert.Error,
		},
		"negative probe interval": {
			modify: func(cfg *config.Simulation) {
				cfg.ProbeInterval = util.DurWrap{Duration: -time.Second}
			},
			assertErr: assert.Error,
		},
		"unknown feature": {
			modify:    func(cfg *config.Simulation) { cfg.Features = []string{"teleport"} },
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var cfg config.Simulation
			cfg.InitDefaults()
			tc.modify(&cfg)
			tc.assertErr(t, cfg.Validate())
		})
	}
}
