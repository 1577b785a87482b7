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

package env_test

import (
	"bytes"
	"context"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scionproto/lpmsim/private/env"
)

func TestMetricsSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg env.Metrics
	cfg.Sample(&sample, nil, nil)
	err := toml.NewDecoder(bytes.NewReader(sample.Bytes())).DisallowUnknownFields().
		Decode(&cfg)
	require.NoError(t, err)
	assert.Empty(t, cfg.Prometheus)
	assert.NoError(t, cfg.Validate())
}

func TestMetricsValidate(t *testing.T) {
	testCases := map[string]struct {
		addr      string
		assertErr assert.ErrorAssertionFunc
	}{
		"disabled":  {addr: "", assertErr: assert.NoError},
		"port only": {addr: ":30442", assertErr: assert.NoError},
		"host port": {addr: "127.0.0.1:30442", assertErr: assert.NoError},
		"no port":   {addr: "127.0.0.1", assertErr: assert.Error},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := env.Metrics{Prometheus: tc.addr}
			tc.assertErr(t, cfg.Validate())
		})
	}
}

func TestServePrometheusStopsOnCancel(t *testing.T) {
	cfg := env.Metrics{}
	assert.NoError(t, cfg.ServePrometheus(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg = env.Metrics{Prometheus: "127.0.0.1:0"}
	assert.NoError(t, cfg.ServePrometheus(ctx))
}
